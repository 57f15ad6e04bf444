package menu

import "errors"

// Domain errors for catalog items

var (
	ErrMissingID          = errors.New("food item id is required")
	ErrMissingName        = errors.New("food item name is required")
	ErrInvalidPrice       = errors.New("food item price must be positive")
	ErrInvalidCategory    = errors.New("food item category is not a valid category")
	ErrNegativeNutrition  = errors.New("nutrition values cannot be negative")
	ErrVeganNonVegetarian = errors.New("non-vegetarian item cannot carry the Vegan tag")
	ErrItemNotFound       = errors.New("food item not found in catalog")
)
