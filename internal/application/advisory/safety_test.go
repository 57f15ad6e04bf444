package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
)

func flaggedProfile(disease string) health.Profile {
	return health.Profile{
		HasIssues:   true,
		DiseaseName: disease,
		Stage:       health.StageBeginning,
		Age:         42,
	}
}

func TestEvaluateSafetyHealthyProfileAlwaysSafe(t *testing.T) {
	item := menu.FoodItem{
		ID:       "ITEM-1",
		Name:     "Gulab Jamun",
		Category: menu.CategoryDessert,
		Carbs:    90,
	}

	verdict := EvaluateSafety(item, health.Profile{HasIssues: false})

	assert.True(t, verdict.Safe)
	assert.Empty(t, verdict.Reason)
}

func TestEvaluateSafetyDiabetes(t *testing.T) {
	tests := []struct {
		name       string
		item       menu.FoodItem
		wantSafe   bool
		wantReason string
	}{
		{
			name:       "dessert category is flagged",
			item:       menu.FoodItem{ID: "ITEM-1", Name: "Vanilla Scoop", Category: menu.CategoryDessert},
			wantSafe:   false,
			wantReason: "High sugar content.",
		},
		{
			name:       "sweet keyword in description is flagged",
			item:       menu.FoodItem{ID: "ITEM-2", Name: "Festive Platter", Description: "A sweet treat", Category: menu.CategoryVeg},
			wantSafe:   false,
			wantReason: "High sugar content.",
		},
		{
			name:       "jamun in name is flagged",
			item:       menu.FoodItem{ID: "ITEM-3", Name: "Gulab Jamun", Category: menu.CategoryVeg},
			wantSafe:   false,
			wantReason: "High sugar content.",
		},
		{
			name:       "high carbs without low-carb tag is flagged",
			item:       menu.FoodItem{ID: "ITEM-4", Name: "Veg Biryani", Category: menu.CategoryVeg, Carbs: 80},
			wantSafe:   false,
			wantReason: "High carbohydrate content.",
		},
		{
			name: "high carbs with low-carb tag passes",
			item: menu.FoodItem{
				ID: "ITEM-5", Name: "Paneer Bowl", Category: menu.CategoryVeg,
				Carbs: 70, DietaryTags: []menu.DietaryTag{menu.TagLowCarb},
			},
			wantSafe: true,
		},
		{
			name:     "plain savory item passes",
			item:     menu.FoodItem{ID: "ITEM-6", Name: "Steamed Idli", Category: menu.CategoryVeg, Carbs: 40},
			wantSafe: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := EvaluateSafety(tt.item, flaggedProfile("Type 2 Diabetes"))

			assert.Equal(t, tt.wantSafe, verdict.Safe)
			assert.Equal(t, tt.wantReason, verdict.Reason)
		})
	}
}

func TestEvaluateSafetyBloodPressure(t *testing.T) {
	item := menu.FoodItem{
		ID:       "ITEM-10",
		Name:     "Butter Chicken",
		Category: menu.CategoryNonVeg,
	}

	verdict := EvaluateSafety(item, flaggedProfile("High Blood Pressure"))

	assert.False(t, verdict.Safe)
	assert.Equal(t, "High sodium or saturated fats.", verdict.Reason)
}

func TestEvaluateSafetyUlcer(t *testing.T) {
	spicy := menu.FoodItem{ID: "ITEM-11", Name: "Chicken Chettinad", Description: "Fiery pepper masala"}
	mild := menu.FoodItem{ID: "ITEM-12", Name: "Curd Rice", Description: "Cooling and gentle"}

	unsafe := EvaluateSafety(spicy, flaggedProfile("Stomach Ulcer"))
	safe := EvaluateSafety(mild, flaggedProfile("Stomach Ulcer"))

	assert.False(t, unsafe.Safe)
	assert.Equal(t, "Spicy content may irritate stomach.", unsafe.Reason)
	assert.True(t, safe.Safe)
}

func TestEvaluateSafetyUnknownConditionIsSafe(t *testing.T) {
	item := menu.FoodItem{ID: "ITEM-13", Name: "Gulab Jamun", Category: menu.CategoryDessert}

	verdict := EvaluateSafety(item, flaggedProfile("Migraine"))

	assert.True(t, verdict.Safe)
}

func TestEvaluateSafetyIsDeterministic(t *testing.T) {
	item := menu.FoodItem{ID: "ITEM-14", Name: "Chocolate Brownie", Category: menu.CategoryDessert}
	profile := flaggedProfile("Diabetes")

	first := EvaluateSafety(item, profile)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, EvaluateSafety(item, profile))
	}
}

func TestEvaluateSafetyFirstRuleWins(t *testing.T) {
	// Dessert with very high carbs: the sugar rule is ordered before the
	// carbohydrate rule, so its reason is reported.
	item := menu.FoodItem{ID: "ITEM-15", Name: "Rasmalai", Category: menu.CategoryDessert, Carbs: 95}

	verdict := EvaluateSafety(item, flaggedProfile("diabetes"))

	assert.False(t, verdict.Safe)
	assert.Equal(t, "High sugar content.", verdict.Reason)
}
