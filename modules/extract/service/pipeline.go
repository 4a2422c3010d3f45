package service

import (
	"regexp"
	"strings"
	"time"
)

// Extraction is the structured reading of one Vietnamese sentence.
type Extraction struct {
	Name            string
	Start           time.Time
	End             *time.Time
	Location        *string
	ReminderMinutes int
	Category        string
	Outcome         ResolveOutcome
}

// timePatterns covers every surface form the resolver understands, so the
// union of matches delimits the span handed to ResolveTimeRange and the
// bytes masked out before name/location extraction.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}\s*(?:h|gio)\s*kem\s*\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}\s*(?:h|gio)?\s*ruoi\b`),
	regexp.MustCompile(`\b\d{1,2}:\d{1,2}\b`),
	regexp.MustCompile(`\b\d{1,2}\s*h\s*\d{0,2}\b`),
	regexp.MustCompile(`\b\d{1,2}\s*gio(?:\s*\d{1,2}\s*phut)?\b`),
	regexp.MustCompile(`ngay\s*\d{1,2}\s*thang\s*\d{1,2}`),
	regexp.MustCompile(`\b(?:trong|sau)\s*\d{1,3}\s*(?:phut|gio|ngay|tuan)\b`),
	regexp.MustCompile(`\b\d{1,3}\s*(?:phut|gio|ngay|tuan)\s*nua\b`),
	regexp.MustCompile(`\bhom nay\b|\bngay mai\b|\bmai\b|\bngay mot\b|\bmai mot\b|\bmot\b|\bngay kia\b`),
	regexp.MustCompile(`\bcuoi tuan\b`),
	regexp.MustCompile(`\b(?:thu|t)\s*\d(?:\s*tuan sau)?\b`),
	regexp.MustCompile(`\bcn(?:\s*tuan sau)?\b`),
	regexp.MustCompile(`\bsang\b|\btrua\b|\bchieu\b|\btoi\b|\bdem\b`),
	regexp.MustCompile(`(?:mui\s*gio\s*(?:utc|gmt)?|\b(?:utc|gmt))\s*[+\-]?\d{1,2}(?::?\d{2})?\b`),
	regexp.MustCompile(`\btu\b|\bden\b|\bluc\b|\bvao\b`),
}

var (
	reLocation  = regexp.MustCompile(`\b(?:o|tai)\s+([a-z0-9][a-z0-9 ./\-]{0,49})`)
	reSpaces    = regexp.MustCompile(`\s+`)
	fillerWords = regexp.MustCompile(`\b(?:luc|vao|ngay|gio|phut|tieng|sau|truoc|nua|nhac|bao)\b`)
)

// Extractor turns free-form Vietnamese text into event fields. All regex
// matching runs on diacritic-folded ASCII so RE2 word boundaries behave;
// extracted names and locations are recovered from the original bytes.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the sentence against the reference instant "now".
// Outcome is ResolveNotFound when no time expression resolves; the caller
// decides how to surface that.
func (x *Extractor) Extract(raw string, now time.Time) Extraction {
	f := NewFolded(strings.TrimSpace(raw))
	mask := make([]bool, len(f.Text))

	reminder := 0
	if mins, span, ok := ExtractReminder(f.Text); ok {
		reminder = mins
		markSpan(mask, span[0], span[1])
	}

	// Reminder bytes must not feed the resolver ("trước 15 phút" is not a
	// duration), so time matching runs on the masked text.
	masked := applyMask(f.Text, mask)

	lo, hi := -1, -1
	for _, re := range timePatterns {
		for _, m := range re.FindAllStringIndex(masked, -1) {
			if isPronounToi(f, m[0], m[1]) {
				continue
			}
			markSpan(mask, m[0], m[1])
			if lo < 0 || m[0] < lo {
				lo = m[0]
			}
			if m[1] > hi {
				hi = m[1]
			}
		}
	}

	out := Extraction{ReminderMinutes: reminder, Outcome: ResolveNotFound}
	if lo >= 0 {
		start := lo - 5
		if start < 0 {
			start = 0
		}
		end := hi + 5
		if end > len(masked) {
			end = len(masked)
		}
		rng, outcome := ResolveTimeRange(masked[start:end], now)
		out.Outcome = outcome
		if outcome == ResolveOK {
			out.Start = rng.Start
			out.End = rng.End
		}
	}

	cleaned := applyMask(f.Text, mask)

	if m := reLocation.FindStringSubmatchIndex(cleaned); m != nil {
		loc := tidy(f.OrigSpan(m[2], m[3]))
		if loc != "" {
			out.Location = &loc
		}
		markSpan(mask, m[0], m[1])
	}

	out.Name = x.extractName(f, mask)
	out.Category = Classify(out.Name, f.Text)
	return out
}

// extractName joins the surviving byte runs, recovers their diacritics and
// drops leftover filler words.
func (x *Extractor) extractName(f *Folded, mask []bool) string {
	var parts []string
	i := 0
	for i < len(mask) {
		if mask[i] {
			i++
			continue
		}
		j := i
		for j < len(mask) && !mask[j] {
			j++
		}
		// blank out filler words, keep the byte layout so folded
		// offsets still line up with the original text
		seg := fillerWords.ReplaceAllStringFunc(f.Text[i:j], func(w string) string {
			return strings.Repeat(" ", len(w))
		})
		lo := i + leadingSpaces(seg)
		hi := i + len(seg) - trailingSpaces(seg)
		if lo < hi {
			parts = append(parts, f.OrigSpan(lo, hi))
		}
		i = j
	}
	return tidy(strings.Join(parts, " "))
}

// isPronounToi rejects a folded "toi" match whose original text is the
// pronoun "tôi" rather than the evening word "tối".
func isPronounToi(f *Folded, lo, hi int) bool {
	if f.Text[lo:hi] != "toi" {
		return false
	}
	return f.OrigSpan(lo, hi) == "tôi"
}

func markSpan(mask []bool, lo, hi int) {
	for i := lo; i < hi && i < len(mask); i++ {
		mask[i] = true
	}
}

func applyMask(text string, mask []bool) string {
	b := []byte(text)
	for i := range b {
		if mask[i] {
			b[i] = ' '
		}
	}
	return string(b)
}

func tidy(s string) string {
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,.;:!?-")
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

func trailingSpaces(s string) int {
	return len(s) - len(strings.TrimRight(s, " "))
}
