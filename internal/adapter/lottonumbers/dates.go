package lottonumbers

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthNames = "January|February|March|April|May|June|July|August|September|October|November|December"

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var (
	// "January 15, 2026" / "January 15 2026"
	monthDayPattern = regexp.MustCompile(`(?i)(` + monthNames + `)\s+(\d{1,2}),?\s+(\d{4})`)
	// "Thursday 15 January 2026" / "15 January 2026"
	dayMonthPattern = regexp.MustCompile(`(?i)(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)?\s*(\d{1,2})\s+(` + monthNames + `)\s+(\d{4})`)
	// "Saturday January 11 2026", used inside Canadian result blocks
	weekdayMonthDayPattern = regexp.MustCompile(`(?i)(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\s*(` + monthNames + `)\s+(\d{1,2})\s+(\d{4})`)
)

// DateMatch a draw date found in a page and its byte offset
type DateMatch struct {
	Index int
	End   int
	Date  time.Time // UTC midnight
	Label string    // YYYY-MM-DD
}

// DateFinder locates draw dates in page HTML, in document order
type DateFinder func(html string) []DateMatch

// FindMonthDayDates US/Canada layout
func FindMonthDayDates(html string) []DateMatch {
	return findDates(html, monthDayPattern, 2, 1, 3)
}

// FindDayMonthDates AU/UK/ZA layout, optional leading weekday
func FindDayMonthDates(html string) []DateMatch {
	return findDates(html, dayMonthPattern, 1, 2, 3)
}

func findDates(html string, re *regexp.Regexp, dayGroup, monthGroup, yearGroup int) []DateMatch {
	var out []DateMatch
	for _, loc := range re.FindAllStringSubmatchIndex(html, -1) {
		sub := func(g int) string { return html[loc[2*g]:loc[2*g+1]] }
		d, ok := buildDate(sub(dayGroup), sub(monthGroup), sub(yearGroup))
		if !ok {
			continue
		}
		out = append(out, DateMatch{Index: loc[0], End: loc[1], Date: d, Label: d.Format("2006-01-02")})
	}
	return out
}

// matchWeekdayMonthDay first "Weekday Month D YYYY" occurrence in text
func matchWeekdayMonthDay(text string) (time.Time, bool) {
	m := weekdayMonthDayPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return buildDate(m[2], m[1], m[3])
}

func buildDate(dayStr, monthStr, yearStr string) (time.Time, bool) {
	month, ok := months[strings.ToLower(monthStr)]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}
