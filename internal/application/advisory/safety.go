// Package advisory provides the health-recommendation and food-safety
// decision engine: deterministic local rule engines plus the dual-path
// coordinator that prefers the remote AI advisory and falls back to them.
package advisory

import (
	"strings"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// safetyRule is one entry in the ordered safety rule table. A rule fires
// when the profile's disease matches the condition group AND the item
// triggers the unsafe predicate. The first firing rule wins.
type safetyRule struct {
	conditionKeywords []string
	unsafe            func(item menu.FoodItem) bool
	reason            string
}

func nameOrDescContains(item menu.FoodItem, words ...string) bool {
	name := strings.ToLower(item.Name)
	desc := strings.ToLower(item.Description)
	for _, w := range words {
		if strings.Contains(name, w) || strings.Contains(desc, w) {
			return true
		}
	}
	return false
}

func nameContains(item menu.FoodItem, words ...string) bool {
	name := strings.ToLower(item.Name)
	for _, w := range words {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

// safetyRules is evaluated in order. The table keeps the priority between
// condition groups explicit and lets each rule be tested on its own.
var safetyRules = []safetyRule{
	{
		conditionKeywords: []string{"diabetes", "sugar", "insulin"},
		unsafe: func(item menu.FoodItem) bool {
			return item.Category == menu.CategoryDessert ||
				nameOrDescContains(item, "sweet", "chocolate", "cake", "jamun", "halwa")
		},
		reason: "High sugar content.",
	},
	{
		conditionKeywords: []string{"diabetes", "sugar", "insulin"},
		unsafe: func(item menu.FoodItem) bool {
			return item.Carbs > 65 && !item.HasTag(menu.TagLowCarb)
		},
		reason: "High carbohydrate content.",
	},
	{
		conditionKeywords: []string{"pressure", "bp", "heart", "cholesterol"},
		unsafe: func(item menu.FoodItem) bool {
			return nameContains(item, "pickle", "fried", "butter", "ghee", "bhatura")
		},
		reason: "High sodium or saturated fats.",
	},
	{
		conditionKeywords: []string{"ulcer", "stomach", "gerd", "acid"},
		unsafe: func(item menu.FoodItem) bool {
			return nameOrDescContains(item, "spicy", "masala", "pepper", "chili")
		},
		reason: "Spicy content may irritate stomach.",
	},
}

// EvaluateSafety decides whether one item is safe to order for one profile
// using the local keyword and threshold rules. It is a pure function: no
// I/O, no randomness, and it never mutates its inputs. It is the designated
// fallback for the remote per-item safety check and works in any network
// state.
func EvaluateSafety(item menu.FoodItem, profile health.Profile) outbound.SafetyVerdict {
	if !profile.HasIssues {
		return outbound.SafetyVerdict{Safe: true}
	}

	disease := strings.ToLower(profile.DiseaseName)
	for _, rule := range safetyRules {
		if !matchesAny(disease, rule.conditionKeywords) {
			continue
		}
		if rule.unsafe(item) {
			return outbound.SafetyVerdict{Safe: false, Reason: rule.reason}
		}
	}

	return outbound.SafetyVerdict{Safe: true}
}

func matchesAny(disease string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(disease, kw) {
			return true
		}
	}
	return false
}
