package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// foldRune maps a rune to its lowercase base letter: diacritics are stripped
// and đ becomes d. Runes that do not decompose pass through unchanged.
func foldRune(r rune) rune {
	r = unicode.ToLower(r)
	if r == 'đ' {
		return 'd'
	}
	for _, d := range norm.NFD.String(string(r)) {
		if !unicode.Is(unicode.Mn, d) {
			return d
		}
	}
	return r
}

// Folded pairs the lowercased source text with its diacritic-free form and a
// byte-offset map between the two. Matching runs on the ASCII-safe folded
// text; extracted spans are recovered from the source so names and locations
// keep their diacritics.
type Folded struct {
	Orig string // lowercased source
	Text string // folded form
	offs []int  // offs[i] = byte offset in Orig for byte i of Text; len(Text)+1 entries
}

func NewFolded(s string) *Folded {
	lower := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lower))
	offs := make([]int, 0, len(lower)+1)

	for i, r := range lower {
		fr := foldRune(r)
		for n := 0; n < utf8.RuneLen(fr); n++ {
			offs = append(offs, i)
		}
		b.WriteRune(fr)
	}
	offs = append(offs, len(lower))

	return &Folded{
		Orig: lower,
		Text: b.String(),
		offs: offs,
	}
}

// OrigSpan returns the source text behind folded byte range [start, end).
func (f *Folded) OrigSpan(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(f.Text) {
		end = len(f.Text)
	}
	if start >= end {
		return ""
	}
	return f.Orig[f.offs[start]:f.offs[end]]
}

// Fold returns the lowercased, diacritic-free form of s.
func Fold(s string) string {
	return NewFolded(s).Text
}
