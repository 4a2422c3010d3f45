package service

import "strings"

// Event categories, keyed by keyword hits on the folded text.
const (
	CategoryMeeting  = "meeting"
	CategoryMeal     = "meal"
	CategoryStudy    = "study"
	CategoryHealth   = "health"
	CategoryBirthday = "birthday"
	CategoryTravel   = "travel"
	CategoryUnknown  = "unknown"
)

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{CategoryBirthday, []string{"sinh nhat", "thoi noi", "ky niem"}},
	{CategoryHealth, []string{"kham", "bac si", "benh vien", "nha khoa", "tiem"}},
	{CategoryStudy, []string{"hoc", "thi", "on tap", "lop", "bai tap", "seminar"}},
	{CategoryMeeting, []string{"hop", "gap", "phong van", "trao doi", "meeting"}},
	{CategoryMeal, []string{"an", "com", "cafe", "ca phe", "nhau", "tiec", "bua"}},
	{CategoryTravel, []string{"bay", "chuyen bay", "tau", "xe", "du lich", "ve que"}},
}

// Classify picks a category from the event name first, then the whole folded
// sentence. Short keywords match on word boundaries to avoid substring hits
// ("an" inside "quan").
func Classify(name, foldedText string) string {
	for _, source := range []string{Fold(name), foldedText} {
		padded := " " + source + " "
		for _, ck := range categoryKeywords {
			for _, w := range ck.words {
				if strings.Contains(padded, " "+w+" ") || strings.Contains(padded, " "+w+",") {
					return ck.category
				}
			}
		}
	}
	return CategoryUnknown
}
