package engine

import (
	"hash/fnv"
	"sort"
	"strings"

	"github.com/SamTurer/travelbuddy-next-mvp/internal/catalog"
	"github.com/SamTurer/travelbuddy-next-mvp/internal/geo"
)

// wheelFor builds the category wheel for the run: the base order with
// each active vibe's categories promoted to the front, stably
func wheelFor(vibes []string) []string {
	wheel := make([]string, len(baseWheel))
	copy(wheel, baseWheel)

	// Apply in reverse so the first vibe ends up frontmost
	for i := len(vibes) - 1; i >= 0; i-- {
		promoted := vibePromotions[strings.ToLower(vibes[i])]
		for j := len(promoted) - 1; j >= 0; j-- {
			wheel = promote(wheel, promoted[j])
		}
	}
	return wheel
}

func promote(wheel []string, cat string) []string {
	for i, c := range wheel {
		if c == cat {
			out := make([]string, 0, len(wheel))
			out = append(out, cat)
			out = append(out, wheel[:i]...)
			out = append(out, wheel[i+1:]...)
			return out
		}
	}
	return wheel
}

// areaVibeBoosts nudge the starting-area choice toward areas that fit
// the active vibes
var areaVibeBoosts = map[string][]string{
	"trendy":    {"williamsburg", "lower east side", "bushwick"},
	"classic":   {"midtown", "upper west side", "upper east side"},
	"local":     {"west village", "park slope", "greenpoint"},
	"artsy":     {"chelsea", "bushwick", "lower east side"},
	"outdoorsy": {"central park", "prospect heights", "dumbo"},
	"foodie":    {"east village", "chinatown", "west village"},
}

// preferredStartArea picks the day's starting neighborhood by
// early-opening catalog density, vibe boosts, and a date-derived seed
// so repeated runs for the same date agree while different dates vary
func preferredStartArea(pool *catalog.Pool, vibes []string, date string) string {
	density := make(map[string]int)
	for _, p := range pool.All() {
		if !earlyCategories[strings.ToLower(p.Category)] {
			continue
		}
		if area, ok := geo.LookupArea(p.Neighborhood); ok {
			density[area.Name]++
		}
	}
	for _, v := range vibes {
		for _, area := range areaVibeBoosts[strings.ToLower(v)] {
			if _, ok := density[area]; ok {
				density[area] += 2
			}
		}
	}
	if len(density) == 0 {
		return ""
	}

	type ranked struct {
		area  string
		score int
	}
	list := make([]ranked, 0, len(density))
	for area, score := range density {
		list = append(list, ranked{area, score})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].score != list[j].score {
			return list[i].score > list[j].score
		}
		return list[i].area < list[j].area
	})

	top := list
	if len(top) > 3 {
		top = top[:3]
	}
	return top[int(dateSeed(date))%len(top)].area
}

// dateSeed hashes the trip date so the start-area pick is stable per
// date without being the same every day
func dateSeed(date string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(date))
	return h.Sum32()
}
