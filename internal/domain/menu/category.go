package menu

import "strings"

// Category classifies a food item into one of the fixed menu sections.
type Category string

const (
	CategoryVeg          Category = "Veg"
	CategoryNonVeg       Category = "Non-Veg"
	CategoryDrinks       Category = "Drinks"
	CategoryCoffee       Category = "Coffee"
	CategoryDessert      Category = "Ice Creams & Dessert"
	CategoryGymCombo     Category = "Gym Combo"
	CategoryHealthyCombo Category = "Healthy Combo"
)

// AllCategories lists every valid category.
var AllCategories = []Category{
	CategoryVeg,
	CategoryNonVeg,
	CategoryDrinks,
	CategoryCoffee,
	CategoryDessert,
	CategoryGymCombo,
	CategoryHealthyCombo,
}

// IsValid reports whether the category is one of the fixed enumeration.
func (c Category) IsValid() bool {
	for _, valid := range AllCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// ParseCategory normalizes a category string, including labels used by the
// remote advisory service, onto the canonical enumeration. Unknown values
// resolve to CategoryVeg so coerced items always carry a valid category.
func ParseCategory(raw string) Category {
	switch strings.TrimSpace(raw) {
	case "Veg", "veg", "Vegetarian":
		return CategoryVeg
	case "Non-Veg", "non-veg", "Non Veg", "NonVeg":
		return CategoryNonVeg
	case "Drinks", "drinks", "Beverages":
		return CategoryDrinks
	case "Coffee", "coffee":
		return CategoryCoffee
	// The remote model frequently returns the legacy "Dessert" label.
	case "Ice Creams & Dessert", "Dessert", "dessert", "Desserts":
		return CategoryDessert
	case "Gym Combo", "GymCombo", "gym combo":
		return CategoryGymCombo
	case "Healthy Combo", "HealthyCombo", "healthy combo":
		return CategoryHealthyCombo
	default:
		return CategoryVeg
	}
}

// DietaryTag marks a dietary property of a food item.
type DietaryTag string

const (
	TagVegan       DietaryTag = "Vegan"
	TagGlutenFree  DietaryTag = "Gluten-Free"
	TagHighProtein DietaryTag = "High-Protein"
	TagLowCarb     DietaryTag = "Low-Carb"
)
