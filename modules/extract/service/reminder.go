package service

import (
	"regexp"
	"strconv"
	"time"
)

// Reminder phrase forms, matched on folded text:
//
//	"nhắc trước 15 phút", "nhắc tôi trước 1 tiếng", "nhắc trước 10p",
//	"báo trước 30 phút", "trước 2 giờ nhắc", "nhắc tôi 15p trước"
//
// Units accept the short spellings p/h/hr alongside phút/giờ/tiếng.
var reminderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:nhac|bao)\s*(?:toi|minh|tui)?\s*(?:truoc|trc)?\s*(\d{1,3})\s*(phut|tieng|gio|hr|p|h)\b(?:\s*(?:truoc|trc))?`),
	regexp.MustCompile(`\b(?:truoc|trc)\s*(\d{1,3})\s*(phut|tieng|gio|hr|p|h)\s*(?:nhac|bao)\b`),
	regexp.MustCompile(`\b(\d{1,3})\s*(phut|tieng|gio|hr|p|h)\s*(?:truoc|trc)\s*(?:nhac|bao)\b`),
}

// A reminder verb without a number ("nhắc tôi") still has to leave the event
// name; it contributes no offset.
var reminderPresence = regexp.MustCompile(`\b(?:nhac(?:\s*nho)?|bao(?:\s*thuc)?)\s*(?:toi|minh|tui)?(?:\s*(?:truoc|trc))?\b`)

// ExtractReminder finds a reminder offset in the folded text. It returns the
// offset in minutes and the matched span (folded byte offsets) for removal,
// or found=false when the text carries no reminder phrase. A bare reminder
// verb yields minutes 0 with the span still reported.
func ExtractReminder(folded string) (minutes int, span [2]int, found bool) {
	for _, re := range reminderPatterns {
		m := re.FindStringSubmatchIndex(folded)
		if m == nil {
			continue
		}
		val, _ := strconv.Atoi(folded[m[2]:m[3]])
		switch folded[m[4]:m[5]] {
		case "phut", "p":
		default:
			val *= 60
		}
		return val, [2]int{m[0], m[1]}, true
	}
	if m := reminderPresence.FindStringIndex(folded); m != nil {
		return 0, [2]int{m[0], m[1]}, true
	}
	return 0, [2]int{}, false
}

// ReminderAt computes the absolute reminder instant for a start time.
func ReminderAt(start time.Time, minutes int) time.Time {
	return start.Add(-time.Duration(minutes) * time.Minute)
}
