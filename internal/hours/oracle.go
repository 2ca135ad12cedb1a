// Package hours decides whether a place is open during a candidate
// time window. Evaluation is pure: structured period data first, then
// free-text weekday lines, then a per-category approximate window.
// Hours data is fetched into the Place by enrichment before scheduling,
// never from here.
package hours

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

// Confidence ranks how strong the closed/open evidence is
type Confidence int

const (
	// ConfidenceNone means no hours evidence at all; treat as open
	ConfidenceNone Confidence = iota
	// ConfidenceApproximate means the verdict comes from the category table
	ConfidenceApproximate
	// ConfidenceStructured means the verdict comes from real hours data
	ConfidenceStructured
)

// Verdict is the oracle's answer for one (place, window) pair
type Verdict struct {
	Closed     bool
	Confidence Confidence
}

const (
	minutesPerDay  = 24 * 60
	minutesPerWeek = 7 * minutesPerDay
)

// Check evaluates whether the place is closed during [startMin, endMin)
// on the given weekday. endMin may exceed 1440 for windows that cross
// midnight.
func Check(p *models.Place, category string, startMin, endMin int, weekday time.Weekday) Verdict {
	if p != nil && p.Hours != nil {
		if len(p.Hours.Periods) > 0 {
			return Verdict{
				Closed:     !periodsOverlap(p.Hours.Periods, weekday, startMin, endMin),
				Confidence: ConfidenceStructured,
			}
		}
		if len(p.Hours.WeekdayText) > 0 {
			if closed, ok := weekdayTextClosed(p.Hours.WeekdayText, weekday, startMin, endMin); ok {
				return Verdict{Closed: closed, Confidence: ConfidenceStructured}
			}
		}
	}

	if w, ok := approxWindows[normalizeCategory(category)]; ok {
		return Verdict{
			Closed:     endMin <= w.open || startMin >= w.close,
			Confidence: ConfidenceApproximate,
		}
	}
	return Verdict{Closed: false, Confidence: ConfidenceNone}
}

// IsClosedDuring is the plain boolean form of Check
func IsClosedDuring(p *models.Place, category string, startMin, endMin int, weekday time.Weekday) bool {
	return Check(p, category, startMin, endMin, weekday).Closed
}

// periodsOverlap tests the target window against every structured period,
// checking the adjacent weeks as well so overnight spans that wrap the
// week boundary are caught.
func periodsOverlap(periods []models.Period, weekday time.Weekday, startMin, endMin int) bool {
	winStart := int(weekday)*minutesPerDay + startMin
	winEnd := int(weekday)*minutesPerDay + endMin

	for _, period := range periods {
		open := period.Open.Day*minutesPerDay + period.Open.Minutes
		close := period.Close.Day*minutesPerDay + period.Close.Minutes
		if close <= open {
			close += minutesPerWeek
		}
		for _, offset := range []int{-minutesPerWeek, 0, minutesPerWeek} {
			if open+offset < winEnd && close+offset > winStart {
				return true
			}
		}
	}
	return false
}

var weekdayNames = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// timeRangePattern matches tokens like "9:00 AM – 6:00 PM" with any of
// the common dash variants
var timeRangePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)\s*[–—-]\s*(\d{1,2}):(\d{2})\s*(AM|PM)`)

// weekdayTextClosed locates the free-text hours line for the weekday and
// tests up to 4 time ranges on it for overlap. The second return is
// false when no line for the weekday exists.
func weekdayTextClosed(lines []string, weekday time.Weekday, startMin, endMin int) (closed, ok bool) {
	name := weekdayNames[int(weekday)]
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.HasPrefix(strings.TrimSpace(lower), name) {
			continue
		}
		if strings.Contains(lower, "closed") {
			return true, true
		}
		matches := timeRangePattern.FindAllStringSubmatch(line, 4)
		if len(matches) == 0 {
			return false, false
		}
		for _, m := range matches {
			open := clockToMinutes(m[1], m[2], m[3])
			close := clockToMinutes(m[4], m[5], m[6])
			if close <= open {
				close += minutesPerDay
			}
			if open < endMin && close > startMin {
				return false, true
			}
		}
		return true, true
	}
	return false, false
}

func clockToMinutes(hourStr, minStr, meridiem string) int {
	h, _ := strconv.Atoi(hourStr)
	m, _ := strconv.Atoi(minStr)
	if h == 12 {
		h = 0
	}
	if strings.EqualFold(meridiem, "PM") {
		h += 12
	}
	return h*60 + m
}

// approxWindow is a typical open interval for a category, minutes from
// midnight; close may pass 1440 for late-night categories
type approxWindow struct {
	open  int
	close int
}

// approxWindows is the fallback table used when a place carries no
// hours data. Absence from the table means "no evidence, treat as open".
var approxWindows = map[string]approxWindow{
	"coffee":    {9 * 60, 10 * 60},
	"breakfast": {9 * 60, 10 * 60},
	"brunch":    {10 * 60, 14 * 60},
	"lunch":     {11 * 60, 15 * 60},
	"dinner":    {17 * 60, 23 * 60},
	"bar":       {17 * 60, 26 * 60},
	"drinks":    {17 * 60, 26 * 60},
	"music":     {18 * 60, 26 * 60},
	"museum":    {10 * 60, 17*60 + 30},
	"gallery":   {10 * 60, 18 * 60},
	"park":      {7 * 60, 20 * 60},
	"market":    {8 * 60, 19 * 60},
	"shopping":  {10 * 60, 20 * 60},
	"dessert":   {11 * 60, 23 * 60},
	"snack":     {10 * 60, 22 * 60},
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
