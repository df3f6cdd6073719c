package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Ingredient is a single line of a meal's ingredient list.
type Ingredient struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Meal is one record of the meal catalog.
type Meal struct {
	Name            string       `json:"name"`
	Type            []string     `json:"type"`
	IsSalad         bool         `json:"is_salad"`
	MealPrep        bool         `json:"meal_prep"`
	Difficulty      string       `json:"difficulty"`
	DefaultPortions float64      `json:"default_portions"`
	Ingredients     []Ingredient `json:"ingredients"`
	Recipe          string       `json:"recipe"`
}

// HasType reports whether the meal may fill a slot with the given tag.
func (m Meal) HasType(tag string) bool {
	for _, t := range m.Type {
		if t == tag {
			return true
		}
	}
	return false
}

// Catalog is the in-memory meal collection, loaded once per session.
type Catalog struct {
	meals  []Meal
	byName map[string]int
}

// Empty returns a catalog with no meals, the degraded state used when the
// catalog file could not be loaded.
func Empty() *Catalog {
	return &Catalog{byName: map[string]int{}}
}

// New builds a catalog from meal records, applying field defaults and
// enforcing name uniqueness.
func New(meals []Meal) (*Catalog, error) {
	c := &Catalog{
		meals:  make([]Meal, 0, len(meals)),
		byName: make(map[string]int, len(meals)),
	}
	for _, m := range meals {
		if m.Name == "" {
			return nil, fmt.Errorf("catalog contains a meal with no name")
		}
		if _, exists := c.byName[m.Name]; exists {
			return nil, fmt.Errorf("duplicate meal name %q in catalog", m.Name)
		}
		// Defaults are applied once here, not at lookup time.
		if m.DefaultPortions <= 0 {
			m.DefaultPortions = 1
		}
		c.byName[m.Name] = len(c.meals)
		c.meals = append(c.meals, m)
	}
	return c, nil
}

// Load reads a JSON catalog file and builds the catalog from it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	var meals []Meal
	if err := json.Unmarshal(data, &meals); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return New(meals)
}

// Find returns the meal with the given name, if any. No side effects; a
// miss is the caller's signal to skip a stale reference.
func (c *Catalog) Find(name string) (Meal, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Meal{}, false
	}
	return c.meals[i], true
}

// Meals returns all records in catalog order.
func (c *Catalog) Meals() []Meal {
	return c.meals
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.meals)
}

// MainsFor returns the non-salad meals that may fill a slot with the given
// tag, in catalog order. These are the options the selection UI offers.
func (c *Catalog) MainsFor(slotTag string) []Meal {
	var out []Meal
	for _, m := range c.meals {
		if !m.IsSalad && m.HasType(slotTag) {
			out = append(out, m)
		}
	}
	return out
}

// Salads returns the side-salad records in catalog order.
func (c *Catalog) Salads() []Meal {
	var out []Meal
	for _, m := range c.meals {
		if m.IsSalad {
			out = append(out, m)
		}
	}
	return out
}
