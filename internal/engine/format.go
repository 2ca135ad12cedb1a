package engine

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/models"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/providers"
)

// transitNoteThreshold is the travel time above which a synthetic
// Transit stop is interleaved
const transitNoteThreshold = 10

// polishTimeout bounds the external copy-polish call
const polishTimeout = 6 * time.Second

// finalizeTravel re-sorts the timeline and recomputes travel metadata
// between every adjacent pair, shifting stops later (never earlier)
// whenever travel would overlap the previous stop
func (s *schedulerState) finalizeTravel() {
	s.sortStops()
	for i, st := range s.stops {
		if i == 0 {
			st.TravelMinFromPrev = 0
			st.TravelModeFromPrev = ""
			continue
		}
		prev := s.stops[i-1]
		est := s.est.EstimateSync(stopLocation(prev), stopLocation(st))
		st.TravelMinFromPrev = est.Minutes
		st.TravelModeFromPrev = est.Mode
		shiftAfterTravel(prev, st)
	}
}

// refineTravel upgrades adjacent-pair travel estimates via the external
// matrix provider. Intentionally sequential: each pair's shift changes
// the next pair's effective departure time.
func (s *schedulerState) refineTravel(ctx context.Context) {
	if s.set.Matrix == nil {
		return
	}
	s.sortStops()
	for i := 1; i < len(s.stops); i++ {
		prev, st := s.stops[i-1], s.stops[i]
		est := s.est.Refined(ctx, stopLocation(prev), stopLocation(st), prev.EndMin)

		// Matrix answers are unclamped; cap them at the travel ceiling
		// so one bad reading cannot push the rest of the day out
		ceiling := nonAnchorTravelCeiling
		if st.IsAnchor {
			ceiling = anchorTravelCeiling
		}
		if est.Minutes > ceiling {
			est.Minutes = ceiling
		}

		st.TravelMinFromPrev = est.Minutes
		st.TravelModeFromPrev = est.Mode
		shiftAfterTravel(prev, st)
	}
}

// shiftAfterTravel pushes a stop later when the previous stop's end
// plus travel would overlap it. Duration is preserved.
func shiftAfterTravel(prev, st *models.ScheduledStop) {
	earliest := prev.EndMin + st.TravelMinFromPrev
	if st.StartMin < earliest {
		delta := earliest - st.StartMin
		st.StartMin += delta
		st.EndMin += delta
	}
}

// formatStops converts the frozen timeline into user-facing output,
// interleaving Transit notes for non-trivial hops
func formatStops(stops []*models.ScheduledStop) []models.OutputStop {
	out := make([]models.OutputStop, 0, len(stops)*2)
	for i, st := range stops {
		if i > 0 && st.TravelMinFromPrev > transitNoteThreshold {
			prev := stops[i-1]
			mode := st.TravelModeFromPrev
			if mode == "" {
				mode = "transit"
			}
			out = append(out, models.OutputStop{
				Time:        models.FormatTimeRange(prev.EndMin, prev.EndMin+st.TravelMinFromPrev),
				Title:       models.TransitTitle,
				Location:    "",
				Description: fmt.Sprintf("Head to %s (~%d min by %s).", stopLocation(st), st.TravelMinFromPrev, mode),
			})
		}
		out = append(out, models.OutputStop{
			Time:        models.FormatTimeRange(st.StartMin, st.EndMin),
			Title:       st.Title,
			Location:    st.Location,
			Description: st.Description,
			URL:         stopURL(st),
		})
	}
	return out
}

// stopURL prefers the stop's own link, falling back to a map link when
// coordinates are known
func stopURL(st *models.ScheduledStop) string {
	if st.URL != "" {
		return st.URL
	}
	if st.Lat != 0 || st.Lng != 0 {
		return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%.5f%%2C%.5f", st.Lat, st.Lng)
	}
	if st.Title != models.TransitTitle && st.Location != "" {
		q := url.QueryEscape(st.Title + " " + st.Location)
		return "https://www.google.com/maps/search/?api=1&query=" + q
	}
	return ""
}

// polish sends the output through the external copy-polisher. Any
// schema deviation (count, order, time, or title changes) discards the
// polished version.
func polish(ctx context.Context, polisher providers.CopyPolisher, stops []models.OutputStop, meta providers.PolishMeta) []models.OutputStop {
	if polisher == nil {
		return stops
	}
	ctx, cancel := context.WithTimeout(ctx, polishTimeout)
	defer cancel()

	polished, err := polisher.PolishTimeline(ctx, stops, meta)
	if err != nil {
		log.Printf("Copy polish failed, keeping raw timeline: %v", err)
		return stops
	}
	if len(polished) != len(stops) {
		log.Printf("Copy polish changed stop count (%d -> %d), discarding", len(stops), len(polished))
		return stops
	}
	for i := range stops {
		if polished[i].Time != stops[i].Time || polished[i].Title != stops[i].Title {
			log.Printf("Copy polish altered stop %d, discarding", i)
			return stops
		}
	}
	return polished
}
