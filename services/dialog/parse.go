package dialog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateFormat renders dates the way the bot speaks them, e.g. "March 5, 2026".
const dateFormat = "January 2, 2006"

// Weekday names in spoken order; indexes differ from time.Weekday, which
// starts at Sunday.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var timePattern = regexp.MustCompile(`(\d{1,2}):?(\d{0,2})\s*(am|pm|a\.m\.|p\.m\.)?`)

// parseDateInput resolves "tomorrow", "today" and weekday names against now.
// A weekday resolves to its next occurrence: saying "monday" on a Monday
// means the following Monday, not today. Anything else passes through
// verbatim rather than being rejected; callers re-prompt only on empty input.
func parseDateInput(userInput string, now time.Time) string {
	if userInput == "" {
		return ""
	}

	input := strings.ToLower(userInput)

	if strings.Contains(input, "tomorrow") {
		return now.AddDate(0, 0, 1).Format(dateFormat)
	}
	if strings.Contains(input, "today") {
		return now.Format(dateFormat)
	}

	for _, wd := range weekdayNames {
		if strings.Contains(input, wd.name) {
			daysAhead := (int(wd.day) - int(now.Weekday()) + 7) % 7
			if daysAhead == 0 {
				daysAhead = 7
			}
			return now.AddDate(0, 0, daysAhead).Format(dateFormat)
		}
	}

	return userInput
}

// parseTimeInput normalizes named times and "H:MM am/pm" shapes to a 12-hour
// display with zero-padded minutes. Unmatched text passes through verbatim
// with the same leniency as parseDateInput.
func parseTimeInput(userInput string) string {
	if userInput == "" {
		return ""
	}

	input := strings.ToLower(userInput)

	switch {
	case strings.Contains(input, "morning"):
		return "10:00 AM"
	case strings.Contains(input, "afternoon"):
		return "2:00 PM"
	case strings.Contains(input, "evening"):
		return "5:00 PM"
	case strings.Contains(input, "noon"):
		return "12:00 PM"
	}

	match := timePattern.FindStringSubmatch(input)
	if match == nil {
		return userInput
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return userInput
	}
	minute := match[2]
	if minute == "" {
		minute = "00"
	} else if len(minute) == 1 {
		minute = "0" + minute
	}
	period := match[3]

	if strings.Contains(period, "p") && hour < 12 {
		hour += 12
	} else if strings.Contains(period, "a") && hour == 12 {
		hour = 0
	}

	displayHour := hour
	switch {
	case hour == 0:
		displayHour = 12
	case hour > 12:
		displayHour = hour - 12
	}
	displayPeriod := "AM"
	if hour >= 12 {
		displayPeriod = "PM"
	}

	return strconv.Itoa(displayHour) + ":" + minute + " " + displayPeriod
}
