package catalog

// Seed name pools for menu generation.

var vegDishes = []string{
	"Dosa", "Idli", "Paneer Tikka", "Veg Biryani", "Mushroom Curry",
	"Gobi Manchurian", "Aloo Paratha", "Sambar Rice", "Curd Rice",
	"Veg Korma", "Rasam", "Vada", "Pongal", "Upma", "Chapati", "Naan",
	"Dal Fry", "Veg Fried Rice", "Paneer Butter Masala",
}

var nonVegDishes = []string{
	"Chicken Biryani", "Mutton Curry", "Fish Fry", "Chicken 65",
	"Prawn Masala", "Egg Curry", "Mutton Chukka", "Chicken Korma",
	"Fish Curry", "Crab Masala", "Grilled Chicken", "Tandoori Chicken",
	"Chicken Tikka", "Mutton Biryani", "Chicken Fried Rice",
}

var drinks = []string{
	"Lassi", "Fresh Juice", "Milkshake", "Soda", "Mojito", "Buttermilk",
	"Masala Tea", "Green Tea", "Lemon Tea", "Mango Lassi",
}

var coffeeVariants = []string{
	"Classic Hot Coffee", "Cold Coffee", "Cappuccino", "Cafe Latte",
	"Espresso Shot", "Cafe Mocha", "Americano", "Madras Filter Coffee",
	"Caramel Macchiato", "Hazelnut Coffee", "Iced Latte", "Flat White",
	"Vanilla Frappe", "Dark Chocolate Coffee", "Turkish Coffee",
	"Ginger Coffee (Sukku Kaapi)", "Turmeric Latte (Golden Milk)",
	"Cortado", "Dalgona Coffee", "Nitro Cold Brew",
}

var desserts = []string{
	"Ice Cream", "Gulab Jamun", "Rasmalai", "Brownie", "Cake", "Halwa",
	"Payasam", "Falooda", "Chocolate Cake", "Fruit Salad",
}

var gymDishes = []string{
	"Grilled Chicken Breast & Sweet Potato",
	"Egg White Omelette with Multigrain Toast",
	"Boiled Eggs & Chickpea Salad Bowl",
	"Whey Protein Shake & Banana",
	"Grilled Fish with Steamed Broccoli",
	"Chicken Salad with Olive Oil Dressing",
	"Soya Chunks Masala & 2 Chapatis",
	"Peanut Butter Banana Oat Smoothie",
	"Oatmeal with Almonds & Berries",
	"Lean Mutton Curry & Brown Rice",
	"Lemon Herb Grilled Chicken",
	"Scrambled Eggs with Spinach",
	"Paneer & Broccoli Stir Fry",
	"High-Protein Soya Pulao",
	"Grilled Fish Salad Bowl",
	"Chicken Clear Soup & Salad",
	"Oats & Whey Protein Porridge",
	"Egg Bhurji with Multigrain Roti",
	"Chicken Breast with Quinoa & Asparagus",
	"Tofu Scramble with Avocado Toast",
	"Greek Yogurt Parfait with Granola",
	"Lentil Soup with Grilled Chicken",
	"High Protein Bean Salad",
	"Chickpea & Quinoa Bowl",
	"Grilled Prawns with Lemon Garlic",
}

var healthyCombos = []string{
	"Millet Dosa with Mint Chutney",
	"Quinoa Upma & Green Tea",
	"Multigrain Roti & Yellow Dal",
	"Fresh Fruit Bowl & Mixed Nuts",
	"Sprouts Salad & Buttermilk",
	"Vegetable Clear Soup & Wheat Toast",
	"Grilled Paneer & Sauteed Beans",
	"Brown Rice & Palak Paneer Combo",
	"Detox Cucumber Juice & Salad",
	"Steamed Idli & Low-Oil Sambar",
	"Ragi Dosa & Tomato Chutney",
	"Oats Idli & Mint Chutney",
	"Vegetable Dalia Bowl",
	"Curd Rice with Pomegranate",
	"Moong Dal Chilla",
}

type restaurant struct {
	name     string
	location string
}

var restaurants = []restaurant{
	{"Spice Garden", "Anna Nagar"},
	{"Madras Kitchen", "T. Nagar"},
	{"Chettinad Court", "Velachery"},
	{"Royal Tandoor", "Adyar"},
	{"Sangeetha Veg", "Mylapore"},
	{"Buhari Hotel", "Mount Road"},
	{"Anjappar", "Chromepet"},
	{"Cream Centre", "Nungambakkam"},
	{"Murugan Idli Shop", "Besant Nagar"},
	{"Saravana Bhavan", "Vadapalani"},
	{"Amma Chettinad", "Tambaram"},
	{"The Bowl Company", "OMR"},
	{"Fit & Fuel", "Alwarpet"},
	{"Green Leaf Organic", "Besant Nagar"},
}

// nonVegMarkers flag combo dishes that contain meat, fish or egg.
var nonVegMarkers = []string{
	"Chicken", "Egg", "Fish", "Mutton", "Tuna", "Salmon", "Turkey",
	"Shrimp", "Prawn", "Beef", "Keema",
}

// dairyMarkers disqualify a vegetarian item from the Vegan tag.
var dairyMarkers = []string{
	"milk", "curd", "ghee", "butter", "paneer", "cheese", "yogurt",
	"cream", "whey", "egg", "omelette", "scrambled", "honey",
}
