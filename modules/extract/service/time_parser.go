package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ResolveOutcome classifies a resolution attempt. Malformed or ambiguous
// input is a normal outcome, never a panic.
type ResolveOutcome int

const (
	ResolveOK ResolveOutcome = iota
	ResolveNotFound
	ResolveAlreadyPast
)

// ResolvedRange is an absolute start instant plus an optional end.
type ResolvedRange struct {
	Start time.Time
	End   *time.Time
}

// dayUnit records which construct fixed the calendar day, driving the
// forward-roll policy when the resolved instant is already past.
type dayUnit int

const (
	unitBare     dayUnit = iota // no day word: roll forward one day
	unitToday                   // "hôm nay": past is rejected, not rolled
	unitRelative                // "mai"/"mốt": +2 days at most, roll one day
	unitWeek                    // weekday: roll one week
	unitWeekend                 // "cuối tuần": like unitWeek, but carries a default clock
	unitDate                    // "ngày D tháng M": roll one year
	unitDuration                // "sau N phút/giờ/...": always forward of now
)

var (
	reRuoi     = regexp.MustCompile(`\b(\d{1,2})\s*(?:h|gio)?\s*ruoi\b`)
	reKem      = regexp.MustCompile(`\b(\d{1,2})\s*(?:h|gio)\s*kem\s*(\d{1,2})\b`)
	reColon    = regexp.MustCompile(`\b(\d{1,2}):(\d{1,2})\b`)
	reHourH    = regexp.MustCompile(`\b(\d{1,2})\s*h\s*(\d{1,2})?\b`)
	reHourGio  = regexp.MustCompile(`\b(\d{1,2})\s*gio(?:\s*(\d{1,2})\s*phut)?\b`)
	reDate     = regexp.MustCompile(`ngay\s*(\d{1,2})\s*thang\s*(\d{1,2})`)
	reDur      = regexp.MustCompile(`\b(?:trong|sau)\s*(\d{1,3})\s*(phut|gio|ngay|tuan)\b`)
	reDurNua   = regexp.MustCompile(`\b(\d{1,3})\s*(phut|gio|ngay|tuan)\s*nua\b`)
	reToday    = regexp.MustCompile(`\bhom nay\b`)
	reTomorrow = regexp.MustCompile(`\b(ngay mai|mai)\b`)
	reDayAfter = regexp.MustCompile(`\b(ngay mot|mai mot|mot|ngay kia)\b`)
	reWeekend  = regexp.MustCompile(`\bcuoi tuan\b`)
	reWeekday  = regexp.MustCompile(`\b(?:thu|t)\s*(\d)(\s*tuan sau)?\b`)
	reSunday   = regexp.MustCompile(`\bcn(\s*tuan sau)?\b`)
	reTimezone = regexp.MustCompile(`(?:mui\s*gio\s*(?:utc|gmt)?|\b(?:utc|gmt))\s*([+\-]?\d{1,2})(?::?(\d{2}))?\b`)
	reRange    = regexp.MustCompile(`\bden\b|-|\x{2013}|\x{2014}|\x{2015}|\x{2212}`)
	reLeadTu   = regexp.MustCompile(`\btu\b`)

	rePeriodSang  = regexp.MustCompile(`\bsang\b`)
	rePeriodTrua  = regexp.MustCompile(`\btrua\b`)
	rePeriodChieu = regexp.MustCompile(`\bchieu\b`)
	rePeriodToi   = regexp.MustCompile(`\btoi\b|\bdem\b`)
)

type periodFlags struct {
	sang, trua, chieu, toi bool
}

func detectPeriods(s string) periodFlags {
	return periodFlags{
		sang:  rePeriodSang.MatchString(s),
		trua:  rePeriodTrua.MatchString(s),
		chieu: rePeriodChieu.MatchString(s),
		toi:   rePeriodToi.MatchString(s),
	}
}

// adjustHourByPeriod converts a 12-hour style hour to 24-hour when an
// afternoon/evening period is present: "10h tối" becomes 22:00.
func adjustHourByPeriod(hh int, flags periodFlags) int {
	if (flags.toi || flags.chieu || flags.trua) && hh >= 1 && hh <= 11 {
		return hh + 12
	}
	return hh
}

// parseClock extracts an explicit clock time from the segment. Forms, in
// priority order: "10 rưỡi" (half past), "10 giờ kém 15" (quarter to),
// "17:30", "17h30"/"17h", "17 giờ 30 phút".
func parseClock(segment string) (hh, mm int, ok bool) {
	if m := reRuoi.FindStringSubmatch(segment); m != nil {
		hh, _ = strconv.Atoi(m[1])
		return hh, 30, true
	}
	if m := reKem.FindStringSubmatch(segment); m != nil {
		base, _ := strconv.Atoi(m[1])
		minus, _ := strconv.Atoi(m[2])
		if minus > 0 {
			return base - 1, 60 - minus, true
		}
		return base, 0, true
	}
	if m := reColon.FindStringSubmatch(segment); m != nil {
		hh, _ = strconv.Atoi(m[1])
		mm, _ = strconv.Atoi(m[2])
		return hh, mm, true
	}
	if m := reHourH.FindStringSubmatch(segment); m != nil {
		hh, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			mm, _ = strconv.Atoi(m[2])
		}
		return hh, mm, true
	}
	if m := reHourGio.FindStringSubmatch(segment); m != nil {
		hh, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			mm, _ = strconv.Atoi(m[2])
		}
		return hh, mm, true
	}
	return 0, 0, false
}

// parseTimezone extracts a fixed-offset zone hint ("UTC+7", "múi giờ +07:00").
func parseTimezone(s string) (*time.Location, string) {
	m := reTimezone.FindStringSubmatchIndex(s)
	if m == nil {
		return nil, s
	}
	hours, _ := strconv.Atoi(strings.TrimPrefix(s[m[2]:m[3]], "+"))
	minutes := 0
	if m[4] >= 0 {
		minutes, _ = strconv.Atoi(s[m[4]:m[5]])
	}
	offset := hours * 3600
	if hours >= 0 {
		offset += minutes * 60
	} else {
		offset -= minutes * 60
	}
	name := "UTC" + s[m[2]:m[3]]
	return time.FixedZone(name, offset), s[:m[0]] + " " + s[m[1]:]
}

// parseDay fixes the calendar day. Precedence: explicit date, duration,
// relative words, falling back to the reference day. The boolean reports a
// hard failure (invalid calendar date or weekday out of range).
func parseDay(now time.Time, s string) (day time.Time, unit dayUnit, rest string, ok bool) {
	// ngày D tháng M, current year
	if m := reDate.FindStringSubmatchIndex(s); m != nil {
		d, _ := strconv.Atoi(s[m[2]:m[3]])
		mo, _ := strconv.Atoi(s[m[4]:m[5]])
		if mo < 1 || mo > 12 || d < 1 {
			return time.Time{}, 0, s, false
		}
		dt := time.Date(now.Year(), time.Month(mo), d, now.Hour(), now.Minute(), 0, 0, now.Location())
		if int(dt.Month()) != mo || dt.Day() != d {
			// rolled over: the day does not exist in that month
			return time.Time{}, 0, s, false
		}
		return dt, unitDate, s[:m[0]] + " " + s[m[1]:], true
	}

	// trong/sau N <unit>, N <unit> nữa
	for _, re := range []*regexp.Regexp{reDur, reDurNua} {
		if m := re.FindStringSubmatchIndex(s); m != nil {
			val, _ := strconv.Atoi(s[m[2]:m[3]])
			var delta time.Duration
			switch s[m[4]:m[5]] {
			case "phut":
				delta = time.Duration(val) * time.Minute
			case "gio":
				delta = time.Duration(val) * time.Hour
			case "ngay":
				delta = time.Duration(val) * 24 * time.Hour
			case "tuan":
				delta = time.Duration(val) * 7 * 24 * time.Hour
			}
			return now.Add(delta), unitDuration, s[:m[0]] + " " + s[m[1]:], true
		}
	}

	if m := reToday.FindStringIndex(s); m != nil {
		return now, unitToday, s[:m[0]] + " " + s[m[1]:], true
	}
	if m := reTomorrow.FindStringIndex(s); m != nil {
		return now.AddDate(0, 0, 1), unitRelative, s[:m[0]] + " " + s[m[1]:], true
	}
	if m := reDayAfter.FindStringIndex(s); m != nil {
		return now.AddDate(0, 0, 2), unitRelative, s[:m[0]] + " " + s[m[1]:], true
	}

	// cuối tuần: upcoming Saturday, default 09:00
	if m := reWeekend.FindStringIndex(s); m != nil {
		daysAhead := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7
		}
		dt := now.AddDate(0, 0, daysAhead)
		return time.Date(dt.Year(), dt.Month(), dt.Day(), 9, 0, 0, 0, now.Location()),
			unitWeekend, s[:m[0]] + " " + s[m[1]:], true
	}

	// thứ 2..7, t2..t7, with optional "tuần sau"
	if m := reWeekday.FindStringSubmatchIndex(s); m != nil {
		thu, _ := strconv.Atoi(s[m[2]:m[3]])
		if thu < 2 || thu > 7 {
			// "thứ 8" is not a weekday; refuse rather than guess
			return time.Time{}, 0, s, false
		}
		target := thu - 2 // Monday-based index
		current := (int(now.Weekday()) + 6) % 7
		daysAhead := (target - current + 7) % 7
		nextWeek := m[4] >= 0
		if nextWeek || daysAhead == 0 {
			daysAhead += 7
		}
		return now.AddDate(0, 0, daysAhead), unitWeek, s[:m[0]] + " " + s[m[1]:], true
	}

	// CN (chủ nhật) with optional "tuần sau"
	if m := reSunday.FindStringSubmatchIndex(s); m != nil {
		daysAhead := (int(time.Sunday) - int(now.Weekday()) + 7) % 7
		nextWeek := m[2] >= 0
		if nextWeek || daysAhead == 0 {
			daysAhead += 7
		}
		return now.AddDate(0, 0, daysAhead), unitWeek, s[:m[0]] + " " + s[m[1]:], true
	}

	return now, unitBare, s, true
}

// ResolveTimeRange parses a Vietnamese time expression against the reference
// instant "now" and returns an absolute start (and optional end). The
// function is total: anything it cannot understand yields ResolveNotFound,
// and a resolved instant already behind "now" either rolls forward by the
// unit that produced it or yields ResolveAlreadyPast (for "hôm nay").
func ResolveTimeRange(raw string, now time.Time) (ResolvedRange, ResolveOutcome) {
	text := Fold(strings.TrimSpace(raw))
	if text == "" {
		return ResolvedRange{}, ResolveNotFound
	}

	loc, text := parseTimezone(text)
	if loc == nil {
		loc = now.Location()
	} else {
		now = now.In(loc)
	}

	day, unit, rest, ok := parseDay(now, text)
	if !ok {
		return ResolvedRange{}, ResolveNotFound
	}

	flags := detectPeriods(rest)

	// Range split: "từ 10h đến 12h", "10h-12h", dash variants.
	var startH, startM, endH, endM int
	var startOK, endOK bool
	parts := splitRange(rest)
	if len(parts) >= 2 {
		startH, startM, startOK = parseClock(reLeadTu.ReplaceAllString(parts[0], " "))
		endH, endM, endOK = parseClock(parts[1])
	} else {
		startH, startM, startOK = parseClock(rest)
	}

	if !startOK {
		switch {
		case flags.sang:
			startH, startM, startOK = 8, 0, true
		case flags.chieu:
			startH, startM, startOK = 15, 0, true
		case flags.toi:
			startH, startM, startOK = 20, 0, true
		case flags.trua:
			startH, startM, startOK = 12, 0, true
		case unit == unitWeekend:
			startH, startM, startOK = day.Hour(), day.Minute(), true
		case unit == unitDuration:
			// "sau 30 phút" is complete without a clock
			result := ResolvedRange{Start: day.Truncate(time.Minute)}
			return result, ResolveOK
		}
	}
	if !startOK {
		return ResolvedRange{}, ResolveNotFound
	}

	start, ok := composeClock(day, startH, startM, flags, loc)
	if !ok {
		return ResolvedRange{}, ResolveNotFound
	}

	var end *time.Time
	if endOK {
		e, ok := composeClock(day, endH, endM, flags, loc)
		if ok {
			end = &e
		}
	}

	// Forward-roll policy for instants already behind "now".
	if start.Before(now) {
		var rolled time.Time
		switch unit {
		case unitToday:
			return ResolvedRange{}, ResolveAlreadyPast
		case unitWeek, unitWeekend:
			rolled = start.AddDate(0, 0, 7)
		case unitDate:
			rolled = start.AddDate(1, 0, 0)
		case unitDuration:
			rolled = start
		default:
			rolled = start.AddDate(0, 0, 1)
		}
		if end != nil {
			shifted := end.Add(rolled.Sub(start))
			end = &shifted
		}
		start = rolled
	}

	return ResolvedRange{Start: start, End: end}, ResolveOK
}

func splitRange(s string) []string {
	raw := reRange.Split(s, -1)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func composeClock(day time.Time, hh, mm int, flags periodFlags, loc *time.Location) (time.Time, bool) {
	hh = adjustHourByPeriod(hh, flags)
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, loc), true
}
