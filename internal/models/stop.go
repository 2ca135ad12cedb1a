package models

import "fmt"

// Anchor is a fixed timeline block derived from a user must-do.
// Anchors are always scheduled and never displaced; flexible stops
// route around them.
type Anchor struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	StartMin    int    `json:"startMin"` // Minutes from midnight
	EndMin      int    `json:"endMin"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Duration returns the anchor length in minutes
func (a *Anchor) Duration() int {
	return a.EndMin - a.StartMin
}

// ScheduledStop is an internal timeline entry. Stops are kept sorted by
// start time; no two stops may overlap and each stop's start must leave
// room for travel from the previous stop.
type ScheduledStop struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	StartMin    int    `json:"startMin"`
	EndMin      int    `json:"endMin"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`

	TravelMinFromPrev  int    `json:"travelMinFromPrev,omitempty"`
	TravelModeFromPrev string `json:"travelModeFromPrev,omitempty"` // "walk" or "transit"

	Lat float64 `json:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty"`

	IsAnchor bool `json:"isAnchor,omitempty"`
}

// Duration returns the stop length in minutes
func (s *ScheduledStop) Duration() int {
	return s.EndMin - s.StartMin
}

// OutputStop is the user-facing stop record
type OutputStop struct {
	Time        string `json:"time"` // "h:mm AM – h:mm PM"
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// TransitTitle is the title of the synthetic travel pseudo-stop
const TransitTitle = "Transit"

// FormatClock renders minutes-from-midnight as "h:mm AM/PM".
// Minutes past 24:00 wrap into the next morning.
func FormatClock(min int) string {
	min = ((min % 1440) + 1440) % 1440
	h := min / 60
	m := min % 60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// FormatTimeRange renders a start/end minute pair as "h:mm AM – h:mm PM"
func FormatTimeRange(startMin, endMin int) string {
	return FormatClock(startMin) + " – " + FormatClock(endMin)
}
