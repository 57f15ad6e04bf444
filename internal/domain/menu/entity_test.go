package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem() FoodItem {
	return FoodItem{
		ID:           "ITEM-1",
		Name:         "Steamed Idli",
		Description:  "Soft rice cakes",
		Price:        60,
		Category:     CategoryVeg,
		IsVegetarian: true,
		Calories:     150,
		Protein:      5,
		Carbs:        30,
	}
}

func TestFoodItemValidate(t *testing.T) {
	assert.NoError(t, validItem().Validate())

	tests := []struct {
		name    string
		mutate  func(*FoodItem)
		wantErr error
	}{
		{"missing id", func(i *FoodItem) { i.ID = "" }, ErrMissingID},
		{"missing name", func(i *FoodItem) { i.Name = "" }, ErrMissingName},
		{"zero price", func(i *FoodItem) { i.Price = 0 }, ErrInvalidPrice},
		{"bad category", func(i *FoodItem) { i.Category = "Snacks" }, ErrInvalidCategory},
		{"negative calories", func(i *FoodItem) { i.Calories = -1 }, ErrNegativeNutrition},
		{"vegan non-vegetarian", func(i *FoodItem) {
			i.IsVegetarian = false
			i.DietaryTags = []DietaryTag{TagVegan}
		}, ErrVeganNonVegetarian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)
			assert.ErrorIs(t, item.Validate(), tt.wantErr)
		})
	}
}

func TestHasTag(t *testing.T) {
	item := validItem()
	item.DietaryTags = []DietaryTag{TagLowCarb}

	assert.True(t, item.HasTag(TagLowCarb))
	assert.False(t, item.HasTag(TagVegan))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Veg", CategoryVeg},
		{"veg", CategoryVeg},
		{"Non-Veg", CategoryNonVeg},
		{"Dessert", CategoryDessert},
		{"Ice Creams & Dessert", CategoryDessert},
		{"Gym Combo", CategoryGymCombo},
		{"unknown", CategoryVeg},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.in), "input %q", tt.in)
	}
}

func TestCatalogLookups(t *testing.T) {
	a := validItem()
	b := validItem()
	b.ID = "ITEM-2"
	b.Category = CategoryHealthyCombo

	catalog := NewCatalog([]FoodItem{a, b})

	require.Equal(t, 2, catalog.Len())

	found, err := catalog.FindByID("ITEM-2")
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)

	_, err = catalog.FindByID("ITEM-404")
	assert.ErrorIs(t, err, ErrItemNotFound)

	assert.Len(t, catalog.ByCategory(CategoryVeg), 1)
	assert.Empty(t, catalog.ByCategory(CategoryCoffee))
}

func TestCatalogDedupesFirstWins(t *testing.T) {
	a := validItem()
	dup := validItem()
	dup.Name = "Impostor Idli"

	catalog := NewCatalog([]FoodItem{a, dup})

	require.Equal(t, 1, catalog.Len())
	found, err := catalog.FindByID("ITEM-1")
	require.NoError(t, err)
	assert.Equal(t, "Steamed Idli", found.Name)
}

func TestCatalogItemsReturnsCopy(t *testing.T) {
	catalog := NewCatalog([]FoodItem{validItem()})

	items := catalog.Items()
	items[0].Name = "Mutated"

	fresh, err := catalog.FindByID("ITEM-1")
	require.NoError(t, err)
	assert.Equal(t, "Steamed Idli", fresh.Name)
}
