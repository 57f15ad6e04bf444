package advisory

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
)

const (
	// MinRecommendations is the backfill floor: a flagged profile is never
	// shown fewer items than this while the healthy pool can supply them.
	MinRecommendations = 6
	// MaxRecommendations bounds the returned list.
	MaxRecommendations = 15
)

// OfflinePrefix marks recommendations produced by the local heuristic
// engine rather than the remote advisory, so callers can tell provenance.
const OfflinePrefix = "[Offline Recommendation]"

// conditionRoute is one entry in the ordered condition routing table. The
// first route whose keywords match the lowercased disease name selects the
// filter; remaining routes are not consulted. The keyword sets here are
// intentionally independent from the safety rule table: recommendation and
// safety answer different questions.
type conditionRoute struct {
	label    string
	keywords []string
	keep     func(item menu.FoodItem) bool
}

var conditionRoutes = []conditionRoute{
	{
		label:    "(Diabetes Friendly)",
		keywords: []string{"diabetes", "sugar", "pcos"},
		keep: func(i menu.FoodItem) bool {
			return i.Category != menu.CategoryDessert &&
				i.Category != menu.CategoryDrinks &&
				!nameContains(i, "sweet", "chocolate") &&
				i.Carbs < 65 &&
				(i.HasTag(menu.TagLowCarb) || i.Category == menu.CategoryHealthyCombo || i.Protein > 8)
		},
	},
	{
		label:    "(Heart Healthy)",
		keywords: []string{"heart", "bp", "pressure", "cholesterol"},
		keep: func(i menu.FoodItem) bool {
			return !nameContains(i, "fry", "fried", "butter", "ghee", "pickle") &&
				(i.Category == menu.CategoryHealthyCombo ||
					i.Category == menu.CategoryVeg ||
					i.Category == menu.CategoryGymCombo)
		},
	},
	{
		label:    "(Low Calorie)",
		keywords: []string{"weight", "obesity", "fat", "diet"},
		keep: func(i menu.FoodItem) bool {
			return i.Calories < 550 &&
				i.Category != menu.CategoryDessert &&
				!nameContains(i, "cream", "fry")
		},
	},
	{
		label:    "(High Protein)",
		keywords: []string{"gym", "muscle", "protein"},
		keep: func(i menu.FoodItem) bool {
			return i.Category == menu.CategoryGymCombo || i.Protein > 15
		},
	},
	{
		label:    "(Gut Friendly)",
		keywords: []string{"ulcer", "gerd", "acid", "stomach"},
		keep: func(i menu.FoodItem) bool {
			return !nameContains(i, "spicy", "chili", "pepper", "masala") &&
				i.Category != menu.CategoryCoffee &&
				(i.Category == menu.CategoryHealthyCombo || nameContains(i, "curd", "idli", "soup"))
		},
	},
}

// generalWellness is the fallback route when no condition group matches.
var generalWellness = conditionRoute{
	label:    "(General Wellness)",
	keywords: nil,
	keep:     func(i menu.FoodItem) bool { return i.IsRecommendedForHealth },
}

// Recommender is the local recommendation rule engine. The random source
// drives shuffle and backfill selection and is injected so tests can pin a
// seed; it is not safe for concurrent use, matching the single in-flight
// request model of the caller.
type Recommender struct {
	rng *rand.Rand
}

// NewRecommender creates a recommender around the given random source.
func NewRecommender(rng *rand.Rand) *Recommender {
	return &Recommender{rng: rng}
}

// Recommend curates a bounded list of catalog items for a flagged profile.
// Profiles without declared issues get an empty result. Output ordering is
// randomized and carries the offline provenance prefix on each description.
func (r *Recommender) Recommend(profile health.Profile, catalog []menu.FoodItem) []menu.FoodItem {
	if !profile.HasIssues || profile.DiseaseName == "" {
		return nil
	}

	pool := dedupeByID(catalog)
	route := routeFor(strings.ToLower(profile.DiseaseName))

	var picked []menu.FoodItem
	for _, item := range pool {
		if route.keep(item) {
			picked = append(picked, item)
		}
	}

	picked = r.backfill(picked, pool)

	r.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > MaxRecommendations {
		picked = picked[:MaxRecommendations]
	}

	out := make([]menu.FoodItem, len(picked))
	for i, item := range picked {
		item.Description = fmt.Sprintf("%s %s %s", OfflinePrefix, route.label, item.Description)
		out[i] = item
	}
	return out
}

// routeFor picks the first matching condition route, in table order.
func routeFor(disease string) conditionRoute {
	for _, route := range conditionRoutes {
		if matchesAny(disease, route.keywords) {
			return route
		}
	}
	return generalWellness
}

// backfill tops a sparse result up to the minimum from the broader healthy
// pool, in randomized order, without duplicating IDs. Desserts never
// qualify as fillers.
func (r *Recommender) backfill(picked, pool []menu.FoodItem) []menu.FoodItem {
	if len(picked) >= MinRecommendations {
		return picked
	}

	have := make(map[string]bool, len(picked))
	for _, item := range picked {
		have[item.ID] = true
	}

	var fillers []menu.FoodItem
	for _, item := range pool {
		if have[item.ID] || item.Category == menu.CategoryDessert {
			continue
		}
		if item.IsRecommendedForHealth || item.Category == menu.CategoryHealthyCombo {
			fillers = append(fillers, item)
		}
	}

	r.rng.Shuffle(len(fillers), func(i, j int) {
		fillers[i], fillers[j] = fillers[j], fillers[i]
	})

	for _, filler := range fillers {
		if len(picked) >= MinRecommendations {
			break
		}
		picked = append(picked, filler)
	}
	return picked
}

func dedupeByID(items []menu.FoodItem) []menu.FoodItem {
	seen := make(map[string]bool, len(items))
	out := make([]menu.FoodItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
