// Package catalog builds the in-memory menu catalog served to users. The
// generator is seeded so a given seed always produces the same snapshot.
package catalog

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/zaikabox/v1/internal/domain/menu"
)

// Generator produces catalog snapshots from the seed name pools.
type Generator struct {
	faker *gofakeit.Faker
	next  int
}

// NewGenerator creates a generator. Seed 0 yields a random catalog per
// process; any other seed is reproducible.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed), next: 1}
}

// Generate builds the full catalog snapshot.
func (g *Generator) Generate() *menu.Catalog {
	var items []menu.FoodItem

	for _, name := range vegDishes {
		items = append(items, g.buildItem(name, menu.CategoryVeg, true, 80))
	}
	for _, name := range nonVegDishes {
		items = append(items, g.buildItem(name, menu.CategoryNonVeg, false, 180))
	}
	for _, name := range drinks {
		items = append(items, g.buildItem(name, menu.CategoryDrinks, true, 40))
	}
	for _, name := range coffeeVariants {
		items = append(items, g.buildItem(name, menu.CategoryCoffee, true, 80))
	}
	for _, name := range desserts {
		items = append(items, g.buildItem(name, menu.CategoryDessert, true, 100))
	}
	for _, name := range gymDishes {
		items = append(items, g.buildItem(name, menu.CategoryGymCombo, !containsAny(name, nonVegMarkers), 200))
	}
	for _, name := range healthyCombos {
		items = append(items, g.buildItem(name, menu.CategoryHealthyCombo, !containsAny(name, nonVegMarkers), 150))
	}

	return menu.NewCatalog(items)
}

func (g *Generator) buildItem(name string, category menu.Category, isVeg bool, basePrice int) menu.FoodItem {
	r := restaurants[g.faker.IntRange(0, len(restaurants)-1)]

	calories := g.faker.IntRange(200, 600)
	protein := g.faker.IntRange(5, 20)
	carbs := g.faker.IntRange(20, 80)

	switch category {
	case menu.CategoryGymCombo:
		protein = g.faker.IntRange(25, 50)
		carbs = g.faker.IntRange(20, 50)
		calories = g.faker.IntRange(300, 550)
	case menu.CategoryHealthyCombo:
		protein = g.faker.IntRange(10, 25)
		carbs = g.faker.IntRange(30, 60)
		calories = g.faker.IntRange(250, 450)
	case menu.CategoryDessert:
		calories = g.faker.IntRange(300, 800)
		carbs = g.faker.IntRange(40, 100)
		protein = g.faker.IntRange(2, 8)
	case menu.CategoryCoffee:
		calories = g.faker.IntRange(80, 250)
		protein = g.faker.IntRange(2, 6)
		carbs = g.faker.IntRange(10, 30)
	}

	item := menu.FoodItem{
		ID:                 fmt.Sprintf("ITEM-%d", g.next),
		Name:               name,
		Description:        fmt.Sprintf("Delicious %s prepared with authentic ingredients.", name),
		Price:              basePrice + g.faker.IntRange(0, 50),
		Category:           category,
		IsVegetarian:       isVeg,
		Calories:           calories,
		Protein:            protein,
		Carbs:              carbs,
		Ingredients:        g.buildIngredients(name, isVeg),
		Rating:             float64(g.faker.IntRange(35, 50)) / 10,
		ReviewCount:        g.faker.IntRange(50, 500),
		RestaurantName:     r.name,
		RestaurantLocation: r.location,
	}
	g.next++

	item.DietaryTags = deriveDietaryTags(item)
	item.IsRecommendedForHealth = category == menu.CategoryHealthyCombo ||
		category == menu.CategoryGymCombo ||
		(calories < 500 && protein > 10)

	return item
}

func (g *Generator) buildIngredients(name string, isVeg bool) []menu.Ingredient {
	ingredients := []menu.Ingredient{
		{Name: "Main Ingredient", Amount: "200g"},
		{Name: "Spices & Seasoning", Amount: "To Taste"},
		{Name: "Oil/Butter", Amount: "1 tbsp"},
	}
	if !isVeg {
		ingredients = append(ingredients, menu.Ingredient{Name: "Meat", Amount: "150g"})
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "paneer") {
		ingredients = append(ingredients, menu.Ingredient{Name: "Paneer", Amount: "100g"})
	}
	if strings.Contains(lower, "curd") || strings.Contains(lower, "lassi") {
		ingredients = append(ingredients, menu.Ingredient{Name: "Fresh Curd", Amount: "150g"})
	}
	return ingredients
}

// deriveDietaryTags computes tags from nutrition and ingredient keywords.
func deriveDietaryTags(item menu.FoodItem) []menu.DietaryTag {
	var tags []menu.DietaryTag

	if item.Protein > 20 {
		tags = append(tags, menu.TagHighProtein)
	}
	if item.Carbs < 40 {
		tags = append(tags, menu.TagLowCarb)
	}

	if item.IsVegetarian && !hasDairy(item) {
		tags = append(tags, menu.TagVegan)
	}

	return tags
}

func hasDairy(item menu.FoodItem) bool {
	name := strings.ToLower(item.Name)
	for _, marker := range dairyMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	for _, ing := range item.Ingredients {
		ingName := strings.ToLower(ing.Name)
		for _, marker := range dairyMarkers {
			if strings.Contains(ingName, marker) {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
