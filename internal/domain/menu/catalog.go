package menu

// Catalog is an immutable snapshot of the full set of orderable items.
// It is built once at startup and shared read-only across services.
type Catalog struct {
	items []FoodItem
	byID  map[string]int
}

// NewCatalog builds a catalog from items, dropping duplicate IDs. The first
// occurrence of an ID wins, mirroring insertion order.
func NewCatalog(items []FoodItem) *Catalog {
	c := &Catalog{
		items: make([]FoodItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, item := range items {
		if _, exists := c.byID[item.ID]; exists {
			continue
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item)
	}
	return c
}

// Items returns a copy of the catalog's items.
func (c *Catalog) Items() []FoodItem {
	out := make([]FoodItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// FindByID looks up an item by its ID.
func (c *Catalog) FindByID(id string) (FoodItem, error) {
	idx, ok := c.byID[id]
	if !ok {
		return FoodItem{}, ErrItemNotFound
	}
	return c.items[idx], nil
}

// ByCategory returns all items in the given category.
func (c *Catalog) ByCategory(cat Category) []FoodItem {
	var out []FoodItem
	for _, item := range c.items {
		if item.Category == cat {
			out = append(out, item)
		}
	}
	return out
}
