package geo

import "strings"

// Borough names used by the travel heuristics
const (
	BoroughManhattan = "manhattan"
	BoroughBrooklyn  = "brooklyn"
	BoroughQueens    = "queens"
	BoroughBronx     = "bronx"
	BoroughStaten    = "staten island"
)

// Area is a named neighborhood with a centroid used for travel estimation
type Area struct {
	Name    string
	Borough string
	Lat     float64
	Lng     float64
}

// gazetteer is the fixed table of known NYC areas. Centroids are rough
// neighborhood centers, good enough for walk/transit minute estimates.
var gazetteer = []Area{
	{"financial district", BoroughManhattan, 40.7075, -74.0113},
	{"battery park", BoroughManhattan, 40.7033, -74.0170},
	{"tribeca", BoroughManhattan, 40.7163, -74.0086},
	{"chinatown", BoroughManhattan, 40.7158, -73.9970},
	{"little italy", BoroughManhattan, 40.7191, -73.9973},
	{"lower east side", BoroughManhattan, 40.7154, -73.9874},
	{"soho", BoroughManhattan, 40.7233, -74.0030},
	{"nolita", BoroughManhattan, 40.7229, -73.9945},
	{"noho", BoroughManhattan, 40.7283, -73.9922},
	{"east village", BoroughManhattan, 40.7265, -73.9815},
	{"greenwich village", BoroughManhattan, 40.7336, -74.0027},
	{"west village", BoroughManhattan, 40.7358, -74.0036},
	{"meatpacking district", BoroughManhattan, 40.7410, -74.0080},
	{"chelsea", BoroughManhattan, 40.7465, -74.0014},
	{"flatiron", BoroughManhattan, 40.7411, -73.9897},
	{"union square", BoroughManhattan, 40.7359, -73.9911},
	{"gramercy", BoroughManhattan, 40.7368, -73.9830},
	{"murray hill", BoroughManhattan, 40.7479, -73.9757},
	{"koreatown", BoroughManhattan, 40.7478, -73.9866},
	{"midtown", BoroughManhattan, 40.7549, -73.9840},
	{"times square", BoroughManhattan, 40.7580, -73.9855},
	{"hell's kitchen", BoroughManhattan, 40.7638, -73.9918},
	{"upper east side", BoroughManhattan, 40.7736, -73.9566},
	{"upper west side", BoroughManhattan, 40.7870, -73.9754},
	{"central park", BoroughManhattan, 40.7812, -73.9665},
	{"morningside heights", BoroughManhattan, 40.8089, -73.9617},
	{"harlem", BoroughManhattan, 40.8116, -73.9465},
	{"east harlem", BoroughManhattan, 40.7947, -73.9425},
	{"washington heights", BoroughManhattan, 40.8417, -73.9394},
	{"roosevelt island", BoroughManhattan, 40.7614, -73.9506},
	{"dumbo", BoroughBrooklyn, 40.7033, -73.9881},
	{"brooklyn heights", BoroughBrooklyn, 40.6959, -73.9936},
	{"fort greene", BoroughBrooklyn, 40.6892, -73.9742},
	{"williamsburg", BoroughBrooklyn, 40.7081, -73.9571},
	{"greenpoint", BoroughBrooklyn, 40.7245, -73.9515},
	{"bushwick", BoroughBrooklyn, 40.6944, -73.9213},
	{"park slope", BoroughBrooklyn, 40.6710, -73.9814},
	{"prospect heights", BoroughBrooklyn, 40.6774, -73.9669},
	{"red hook", BoroughBrooklyn, 40.6734, -74.0083},
	{"coney island", BoroughBrooklyn, 40.5755, -73.9707},
	{"long island city", BoroughQueens, 40.7447, -73.9485},
	{"astoria", BoroughQueens, 40.7644, -73.9235},
	{"flushing", BoroughQueens, 40.7675, -73.8331},
	{"south bronx", BoroughBronx, 40.8176, -73.9262},
	{"st. george", BoroughStaten, 40.6437, -74.0765},
}

// LookupArea resolves a free-text location to a known area.
// Exact match on the area name wins; otherwise the first area whose
// name appears as a substring of the location (or vice versa) is used.
func LookupArea(location string) (Area, bool) {
	key := normalizeLocation(location)
	if key == "" {
		return Area{}, false
	}
	for _, a := range gazetteer {
		if a.Name == key {
			return a, true
		}
	}
	for _, a := range gazetteer {
		if strings.Contains(key, a.Name) || strings.Contains(a.Name, key) {
			return a, true
		}
	}
	return Area{}, false
}

// AreaKey returns the normalized neighborhood identifier for a location,
// falling back to the normalized raw text when no gazetteer area matches.
// Used by the clustering and anti-repetition heuristics.
func AreaKey(location string) string {
	if a, ok := LookupArea(location); ok {
		return a.Name
	}
	return normalizeLocation(location)
}

// AreaNames returns the names of all gazetteer areas
func AreaNames() []string {
	names := make([]string, len(gazetteer))
	for i, a := range gazetteer {
		names[i] = a.Name
	}
	return names
}

// boroughKeywords maps location keywords to boroughs for the fallback
// inference when the gazetteer misses
var boroughKeywords = map[string]string{
	"brooklyn":  BoroughBrooklyn,
	"bk":        BoroughBrooklyn,
	"queens":    BoroughQueens,
	"astoria":   BoroughQueens,
	"lic":       BoroughQueens,
	"bronx":     BoroughBronx,
	"staten":    BoroughStaten,
	"manhattan": BoroughManhattan,
	"nyc":       BoroughManhattan,
}

// InferBorough guesses a borough from location keywords.
// Unrecognized locations default to Manhattan.
func InferBorough(location string) string {
	if a, ok := LookupArea(location); ok {
		return a.Borough
	}
	key := normalizeLocation(location)
	for kw, borough := range boroughKeywords {
		if strings.Contains(key, kw) {
			return borough
		}
	}
	return BoroughManhattan
}

// villageAreas qualify for the short-hop discount between adjacent
// downtown villages
var villageAreas = map[string]bool{
	"greenwich village": true,
	"west village":      true,
	"east village":      true,
	"noho":              true,
	"nolita":            true,
	"soho":              true,
}

func isVillage(location string) bool {
	key := normalizeLocation(location)
	if villageAreas[key] {
		return true
	}
	return strings.Contains(key, "village")
}

func normalizeLocation(location string) string {
	s := strings.ToLower(strings.TrimSpace(location))
	s = strings.TrimSuffix(s, ", new york")
	s = strings.TrimSuffix(s, ", ny")
	s = strings.TrimSuffix(s, ", nyc")
	return strings.Join(strings.Fields(s), " ")
}
