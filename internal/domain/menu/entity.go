// Package menu contains the core domain model for the food catalog.
package menu

// Ingredient is a single ingredient line on a food item. Amount is
// free-text ("200g", "2 tbsp", "To Taste").
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// FoodItem is an orderable dish. Items are immutable once the catalog is
// built; services receive them by value.
type FoodItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Category    Category `json:"category"`

	IsVegetarian           bool         `json:"isVegetarian"`
	IsRecommendedForHealth bool         `json:"isRecommendedForHealth"`
	Calories               int          `json:"calories,omitempty"`
	Protein                int          `json:"protein,omitempty"`
	Carbs                  int          `json:"carbs,omitempty"`
	DietaryTags            []DietaryTag `json:"dietaryTags,omitempty"`
	Ingredients            []Ingredient `json:"ingredients,omitempty"`

	Rating             float64 `json:"rating,omitempty"`
	ReviewCount        int     `json:"reviewCount,omitempty"`
	RestaurantName     string  `json:"restaurantName,omitempty"`
	RestaurantLocation string  `json:"restaurantLocation,omitempty"`
}

// HasTag reports whether the item carries the given dietary tag.
func (f FoodItem) HasTag(tag DietaryTag) bool {
	for _, t := range f.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate checks the item's domain invariants.
func (f FoodItem) Validate() error {
	if f.ID == "" {
		return ErrMissingID
	}
	if f.Name == "" {
		return ErrMissingName
	}
	if f.Price <= 0 {
		return ErrInvalidPrice
	}
	if !f.Category.IsValid() {
		return ErrInvalidCategory
	}
	if f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 {
		return ErrNegativeNutrition
	}
	if !f.IsVegetarian && f.HasTag(TagVegan) {
		return ErrVeganNonVegetarian
	}
	return nil
}
