package models

import (
	"fmt"
	"time"
)

// Pace controls target stop count and per-stop duration multipliers
type Pace string

const (
	PaceChill    Pace = "chill"
	PaceBalanced Pace = "balanced"
	PaceMax      Pace = "max"
)

// Valid reports whether the pace is a known value
func (p Pace) Valid() bool {
	switch p {
	case PaceChill, PaceBalanced, PaceMax:
		return true
	}
	return false
}

// TargetStops returns the target number of stops for the day
func (p Pace) TargetStops() int {
	switch p {
	case PaceChill:
		return 5
	case PaceMax:
		return 9
	default:
		return 7
	}
}

// MinStops returns the floor below which the prune pass must not drop the day
func (p Pace) MinStops() int {
	switch p {
	case PaceChill:
		return 4
	case PaceMax:
		return 8
	default:
		return 6
	}
}

// DurationFactor scales per-stop durations
func (p Pace) DurationFactor() float64 {
	switch p {
	case PaceChill:
		return 1.25
	case PaceMax:
		return 0.85
	default:
		return 1.0
	}
}

// MustDo is a user-supplied must-visit entry, free text or structured
type MustDo struct {
	Title       string `json:"title"`
	Time        string `json:"time,omitempty"` // Free text: "7pm", "14:30", "brunch"
	Location    string `json:"location,omitempty"`
	Category    string `json:"category,omitempty"` // Optional explicit hint
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	DurationMin int    `json:"durationMin,omitempty"`
}

// TripInput holds the validated inputs for one planning run
type TripInput struct {
	City      string   `json:"city" binding:"required"`
	Date      string   `json:"date" binding:"required"` // YYYY-MM-DD
	Vibes     []string `json:"vibes,omitempty"`
	Pace      Pace     `json:"pace,omitempty"`
	FocusArea string   `json:"focusArea,omitempty"`
	MustDos   []MustDo `json:"mustDos,omitempty"`
}

// Weekday returns the weekday of the trip date
func (t *TripInput) Weekday() (time.Weekday, error) {
	d, err := time.Parse("2006-01-02", t.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", t.Date, err)
	}
	return d.Weekday(), nil
}

// IsWeekend reports whether the trip date falls on Saturday or Sunday
func (t *TripInput) IsWeekend() bool {
	wd, err := t.Weekday()
	if err != nil {
		return false
	}
	return wd == time.Saturday || wd == time.Sunday
}

// Validate checks required fields and enum values, applying defaults
func (t *TripInput) Validate() error {
	if t.City == "" {
		return fmt.Errorf("city is required")
	}
	if t.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", t.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", t.Date, err)
	}
	if t.Pace == "" {
		t.Pace = PaceBalanced
	}
	if !t.Pace.Valid() {
		return fmt.Errorf("invalid pace %q", t.Pace)
	}
	return nil
}
