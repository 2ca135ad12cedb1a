package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
)

const anchorMinDuration = 60

// buildAnchors converts must-do entries into fixed timeline blocks,
// sorted by start time. Anchor-anchor collisions shift the later
// anchor forward; durations are preserved.
func buildAnchors(trip *models.TripInput, pool *catalog.Pool) []models.Anchor {
	anchors := make([]models.Anchor, 0, len(trip.MustDos))
	for _, md := range trip.MustDos {
		if strings.TrimSpace(md.Title) == "" {
			continue
		}
		anchors = append(anchors, buildAnchor(md, trip.Pace, pool))
	}

	// Sort by start, then push any collided anchor later (never earlier)
	for i := 1; i < len(anchors); i++ {
		for j := i; j > 0 && anchors[j].StartMin < anchors[j-1].StartMin; j-- {
			anchors[j], anchors[j-1] = anchors[j-1], anchors[j]
		}
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i].StartMin < anchors[i-1].EndMin {
			dur := anchors[i].Duration()
			anchors[i].StartMin = anchors[i-1].EndMin
			anchors[i].EndMin = anchors[i].StartMin + dur
		}
	}
	return anchors
}

func buildAnchor(md models.MustDo, pace models.Pace, pool *catalog.Pool) models.Anchor {
	category := resolveCategory(md, pool)
	context := strings.ToLower(md.Title + " " + md.Description + " " + md.Time)

	start, ok := parseTimeHint(md.Time, context)
	if !ok {
		start = defaultStartFor(category)
	}

	dur := md.DurationMin
	if floor := int(float64(baseDuration(category)) * pace.DurationFactor()); floor > dur {
		dur = floor
	}
	if dur < anchorMinDuration {
		dur = anchorMinDuration
	}

	location := md.Location
	description := md.Description
	url := md.URL
	if hit := pool.Get(md.Title); hit != nil {
		if location == "" {
			location = hit.Neighborhood
		}
		if description == "" {
			description = hit.Description
		}
		if url == "" {
			url = hit.URL
		}
	}

	return models.Anchor{
		Title:       strings.TrimSpace(md.Title),
		Category:    category,
		StartMin:    start,
		EndMin:      start + dur,
		Location:    location,
		Description: description,
		URL:         url,
	}
}

// categoryHints maps keywords in must-do text to categories, checked
// in order so more specific words win
var categoryHints = []struct {
	keyword  string
	category string
}{
	{"brunch", "brunch"},
	{"breakfast", "breakfast"},
	{"lunch", "lunch"},
	{"dinner", "dinner"},
	{"supper", "dinner"},
	{"drinks", "bar"},
	{"cocktail", "bar"},
	{"bar", "bar"},
	{"coffee", "coffee"},
	{"dessert", "dessert"},
	{"museum", "museum"},
	{"gallery", "gallery"},
	{"show", "music"},
	{"concert", "music"},
	{"jazz", "music"},
	{"park", "park"},
	{"market", "market"},
}

// resolveCategory picks a category for a must-do: explicit hint, then
// a catalog name match, then keyword inference, then "custom"
func resolveCategory(md models.MustDo, pool *catalog.Pool) string {
	if md.Category != "" {
		return strings.ToLower(strings.TrimSpace(md.Category))
	}
	if hit := pool.Get(md.Title); hit != nil {
		return strings.ToLower(hit.Category)
	}
	text := strings.ToLower(md.Title + " " + md.Description)
	for _, hint := range categoryHints {
		if strings.Contains(text, hint.keyword) {
			return hint.category
		}
	}
	return "custom"
}

var (
	strict24hPattern  = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*$`)
	meridiemPattern   = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	bareHourPattern   = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\b`)
	eveningContextRe  = regexp.MustCompile(`dinner|drinks|evening|night|show|concert|sunset`)
	morningContextRe  = regexp.MustCompile(`breakfast|morning|coffee|sunrise`)
)

// dayparts map keywords to the midpoint of their customary window
var dayparts = []struct {
	keyword string
	minute  int
}{
	{"brunch", 11 * 60},
	{"breakfast", 9 * 60},
	{"lunch", 12*60 + 30},
	{"sunset", 18*60 + 30},
	{"dinner", 19 * 60},
	{"morning", 9*60 + 30},
	{"afternoon", 14*60 + 30},
	{"evening", 18 * 60},
	{"night", 20*60 + 30},
}

// parseTimeHint resolves a free-text time hint to minutes from
// midnight. Layered: strict HH:MM, then h[:mm]am/pm, then a bare hour
// disambiguated by surrounding words, then daypart keywords.
func parseTimeHint(hint, context string) (int, bool) {
	hint = strings.TrimSpace(hint)
	if hint != "" {
		if m := strict24hPattern.FindStringSubmatch(hint); m != nil {
			h, _ := strconv.Atoi(m[1])
			min, _ := strconv.Atoi(m[2])
			if h < 24 && min < 60 {
				return h*60 + min, true
			}
		}
		if m := meridiemPattern.FindStringSubmatch(hint); m != nil {
			h, _ := strconv.Atoi(m[1])
			min := 0
			if m[2] != "" {
				min, _ = strconv.Atoi(m[2])
			}
			if h >= 1 && h <= 12 && min < 60 {
				if h == 12 {
					h = 0
				}
				if strings.EqualFold(m[3], "pm") {
					h += 12
				}
				return h*60 + min, true
			}
		}
		if m := bareHourPattern.FindStringSubmatch(hint); m != nil {
			h, _ := strconv.Atoi(m[1])
			min := 0
			if m[2] != "" {
				min, _ = strconv.Atoi(m[2])
			}
			if h >= 0 && h <= 23 && min < 60 {
				// An ambiguous small hour leans evening when the entry
				// reads like one ("7" near "dinner" means 19:00)
				if h >= 1 && h <= 11 && eveningContextRe.MatchString(context) && !morningContextRe.MatchString(context) {
					if h+12 <= 23 {
						h += 12
					}
				}
				return h*60 + min, true
			}
		}
	}

	for _, dp := range dayparts {
		if strings.Contains(context, dp.keyword) {
			return dp.minute, true
		}
	}
	return 0, false
}

// defaultStartFor is the category-specific fallback start time
func defaultStartFor(category string) int {
	switch canonicalCategory(category) {
	case "coffee":
		return 9 * 60
	case "lunch":
		if sameCategory(category, "brunch") {
			return 11 * 60
		}
		return 12*60 + 30
	case "dinner":
		return 19 * 60
	case "drinks":
		return 20 * 60
	case "music":
		return 19*60 + 30
	case "museum", "gallery":
		return 11 * 60
	case "park", "walk":
		return 10 * 60
	}
	return 14 * 60
}
