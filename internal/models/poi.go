// Package models defines the core domain types: catalog places, trip
// inputs, and timeline stops.
package models

import "strings"

// Place is one catalog POI. Only Name and Category are required; every
// other field improves scheduling when present.
type Place struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	MinMinutes   int      `json:"minMinutes,omitempty"`
	MaxMinutes   int      `json:"maxMinutes,omitempty"`
	Vibes        []string `json:"vibes,omitempty"`
	Energy       []string `json:"energy,omitempty"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`

	Lat float64 `json:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty"`

	Hours *OpeningHours `json:"hours,omitempty"`
}

// HasCoordinates reports whether the place carries a real lat/lng
func (p *Place) HasCoordinates() bool {
	return p.Lat != 0 || p.Lng != 0
}

// OpeningHours holds whatever hours evidence exists for a place.
// Periods are preferred; WeekdayText is the free-text fallback.
type OpeningHours struct {
	WeekdayText []string `json:"weekdayText,omitempty"`
	Periods     []Period `json:"periods,omitempty"`
}

// Period is one structured open interval; Close on a smaller or equal
// day/minute than Open means the interval crosses midnight
type Period struct {
	Open  DayTime `json:"open"`
	Close DayTime `json:"close"`
}

// DayTime is a point in the week: Day 0 is Sunday, Minutes counts from
// midnight
type DayTime struct {
	Day     int `json:"day"`
	Minutes int `json:"minutes"`
}

// NormalizeName canonicalizes a place name for dedup and lookup:
// lowercase, trimmed, inner whitespace collapsed
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
