package engine

import "strings"

// baseWheel is the default category order consulted per open segment.
// Active vibes promote their categories to the front, see wheelFor.
var baseWheel = []string{
	"coffee", "landmark", "museum", "walk", "lunch", "park", "view",
	"market", "gallery", "snack", "shopping", "dinner", "dessert",
	"bar", "music",
}

// equivalenceGroups collapse semantically interchangeable categories
// for lenient matching (bar vs drinks, etc.)
var equivalenceGroups = map[string]string{
	"bar":       "drinks",
	"drinks":    "drinks",
	"coffee":    "coffee",
	"breakfast": "coffee",
	"lunch":     "lunch",
	"brunch":    "lunch",
	"dessert":   "sweet",
	"snack":     "sweet",
	"show":      "music",
	"music":     "music",
}

func canonicalCategory(cat string) string {
	c := strings.ToLower(strings.TrimSpace(cat))
	if g, ok := equivalenceGroups[c]; ok {
		return g
	}
	return c
}

func sameCategory(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func equivalentCategory(a, b string) bool {
	return canonicalCategory(a) == canonicalCategory(b)
}

// mealCategories trigger the double-meal guard and the daily food cap
var mealCategories = map[string]bool{
	"breakfast": true, "brunch": true, "lunch": true, "dinner": true,
}

// foodCategories count toward the daily food-stop total
var foodCategories = map[string]bool{
	"breakfast": true, "brunch": true, "lunch": true, "dinner": true,
	"coffee": true, "snack": true, "dessert": true, "bar": true, "drinks": true,
}

func isMealCategory(cat string) bool {
	return mealCategories[strings.ToLower(cat)]
}

func isFoodCategory(cat string) bool {
	return foodCategories[strings.ToLower(cat)]
}

// startWindow is the allowed start-minute range for a category,
// enforced as a hard feasibility filter
type startWindow struct {
	lo, hi int
}

// startWindows pins daypart-sensitive categories: meals to their meal
// windows, bars and live music to the evening
var startWindows = map[string]startWindow{
	"breakfast": {9 * 60, 10 * 60},
	"brunch":    {10 * 60, 14 * 60},
	"lunch":     {11*60 + 30, 14 * 60},
	"dinner":    {18 * 60, 22 * 60},
	"bar":       {17 * 60, 24 * 60},
	"drinks":    {17 * 60, 24 * 60},
	"music":     {17 * 60, 24 * 60},
	"dessert":   {11 * 60, 24 * 60},
}

// categoryStartWindow returns the hard start window for a category,
// ok=false when the category is unrestricted
func categoryStartWindow(cat string) (startWindow, bool) {
	w, ok := startWindows[strings.ToLower(cat)]
	return w, ok
}

// baseDurations are nominal visit lengths in minutes, scaled by pace
var baseDurations = map[string]int{
	"coffee": 30, "breakfast": 45, "brunch": 75, "lunch": 60,
	"dinner": 90, "bar": 60, "drinks": 60, "dessert": 30, "snack": 30,
	"museum": 105, "gallery": 60, "landmark": 60, "view": 45,
	"park": 60, "walk": 45, "market": 60, "shopping": 60,
	"music": 120, "custom": 60, "explore": 45,
}

func baseDuration(cat string) int {
	if d, ok := baseDurations[strings.ToLower(cat)]; ok {
		return d
	}
	return 60
}

// categoryCaps limit how many stops of a category fit in one day
func categoryCap(cat string) int {
	c := strings.ToLower(cat)
	if isMealCategory(c) {
		return 1
	}
	switch c {
	case "coffee", "museum", "bar", "drinks", "dessert":
		return 2
	}
	return 3
}

// maxFoodStops caps total food stops per day
const maxFoodStops = 5

// vibePromotions reorder the wheel: each active vibe pulls its
// categories to the front
var vibePromotions = map[string][]string{
	"classic":   {"landmark", "museum", "view"},
	"local":     {"coffee", "market", "walk"},
	"foodie":    {"lunch", "market", "snack", "dessert"},
	"artsy":     {"gallery", "museum"},
	"outdoorsy": {"park", "walk", "view"},
	"nightlife": {"bar", "music", "dinner"},
	"chill":     {"coffee", "park", "walk"},
	"views":     {"view", "landmark"},
	"trendy":    {"coffee", "shopping", "bar"},
	"romantic":  {"view", "dinner", "walk"},
}

// vibeAffinity adjusts candidate scores per (vibe, category).
// Negative means more attractive.
var vibeAffinity = map[string]map[string]float64{
	"classic":   {"landmark": -6, "museum": -4, "view": -4, "shopping": 3},
	"local":     {"coffee": -4, "market": -5, "walk": -4, "landmark": 5},
	"foodie":    {"lunch": -5, "snack": -4, "market": -4, "dessert": -3, "museum": 2},
	"artsy":     {"gallery": -6, "museum": -5, "shopping": 2},
	"outdoorsy": {"park": -6, "walk": -5, "view": -4, "museum": 3, "shopping": 4},
	"nightlife": {"bar": -6, "music": -5, "dinner": -3, "coffee": 2},
	"chill":     {"park": -4, "coffee": -4, "music": 3},
	"views":     {"view": -7, "landmark": -3},
	"trendy":    {"shopping": -4, "bar": -3, "coffee": -3},
	"romantic":  {"view": -5, "walk": -3, "dinner": -3},
}

// cuisineKeywords bucket food places by name for the repetition penalty
var cuisineKeywords = []string{
	"pizza", "bagel", "taco", "ramen", "sushi", "burger", "bbq",
	"italian", "chinese", "thai", "deli", "dumpling", "pastrami",
	"oyster", "noodle", "falafel", "bakery",
}

// cuisineBucket returns the cuisine keyword detected in a place name,
// or "" when none matches
func cuisineBucket(name string) string {
	lower := strings.ToLower(name)
	for _, kw := range cuisineKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

// foodForward reports how food-oriented the active vibes are; a more
// food-forward day tolerates cuisine repeats better
func foodForward(vibes []string) bool {
	for _, v := range vibes {
		if strings.EqualFold(v, "foodie") {
			return true
		}
	}
	return false
}

// earlyCategories are the ones likely open before 10:00, used to rank
// candidate starting areas by morning density
var earlyCategories = map[string]bool{
	"coffee": true, "breakfast": true, "park": true, "walk": true,
	"market": true, "landmark": true, "view": true,
}

// iconicStartNames are generic tourist openers the scorer biases
// against as a first stop unless the vibes ask for them
var iconicStartNames = []string{
	"brooklyn bridge", "times square", "top of the rock",
	"empire state", "statue of liberty",
}

func isIconicStart(name string) bool {
	lower := strings.ToLower(name)
	for _, iconic := range iconicStartNames {
		if strings.Contains(lower, iconic) {
			return true
		}
	}
	return false
}
