package models

import "math"

// MenuDocument is the root payload published by the bakery's back office.
// An absent or empty Categories list is a valid "nothing for sale" state.
type MenuDocument struct {
	MarketDate  string     `json:"market_date,omitempty"`
	LastUpdated string     `json:"last_updated,omitempty"`
	Categories  []Category `json:"categories"`
}

// Category is a named grouping of menu items. A category without items is
// skipped during rendering rather than treated as an error.
type Category struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuItem is a single sellable product.
type MenuItem struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	SoldOut     bool     `json:"sold_out,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
}

// Valid reports whether the item carries enough data to render.
func (i MenuItem) Valid() bool {
	if i.Name == "" {
		return false
	}
	if i.Price < 0 || math.IsNaN(i.Price) || math.IsInf(i.Price, 0) {
		return false
	}
	return true
}

// HasItems reports whether the category would produce at least one rendered item.
func (c Category) HasItems() bool {
	return len(c.Items) > 0
}

// Renderable reports whether any category in the document has items.
func (d *MenuDocument) Renderable() bool {
	for _, c := range d.Categories {
		if c.HasItems() {
			return true
		}
	}
	return false
}

// Normalize drops items that cannot be rendered (empty name, negative or
// non-finite price) and returns how many were removed. Order is preserved; a
// category emptied by the drop is left in place and skipped by the renderer.
func (d *MenuDocument) Normalize() int {
	dropped := 0
	for ci := range d.Categories {
		items := d.Categories[ci].Items[:0]
		for _, it := range d.Categories[ci].Items {
			if !it.Valid() {
				dropped++
				continue
			}
			items = append(items, it)
		}
		d.Categories[ci].Items = items
	}
	return dropped
}
