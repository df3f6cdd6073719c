package shopping

import (
	"errors"
	"math"
	"sort"

	"weekly-meal-planner/internal/catalog"
	"weekly-meal-planner/internal/plan"
)

// ErrEmptyPlan is returned when no selection in the plan resolves against
// the catalog. A plan holding only stale meal names is empty in this sense.
var ErrEmptyPlan = errors.New("meal plan is empty")

// Line is one accumulated shopping-list entry. Units holds every unit the
// item was seen with, sorted; no unit conversion is attempted.
type Line struct {
	Item     string   `json:"item"`
	Quantity float64  `json:"quantity"`
	Units    []string `json:"units"`
}

// Cell is the resolved-main view of one plan cell, the input the timetable
// renderer needs.
type Cell struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
}

// Summary is the aggregation output: the shopping list, the prep-ahead
// meals, and the resolved mains per cell.
type Summary struct {
	Lines     []Line                          `json:"shopping_list"`
	PrepAhead []string                        `json:"prep_ahead"`
	Cells     map[plan.Day]map[plan.Slot]Cell `json:"timetable"`
}

type accumulator struct {
	quantity float64
	units    map[string]struct{}
}

// Aggregate walks the plan and produces a Summary. It is a pure function
// of the catalog and the plan: selections naming meals missing from the
// catalog are skipped silently, quantities scale linearly by
// people / default_portions, and the ceiling-to-hundredths normalization
// happens exactly once, after all accumulation.
func Aggregate(cat *catalog.Catalog, p *plan.Plan) (*Summary, error) {
	totals := make(map[string]*accumulator)
	prep := make(map[string]struct{})
	cells := make(map[plan.Day]map[plan.Slot]Cell)
	resolved := false

	addMeal := func(name string, people int) bool {
		meal, ok := cat.Find(name)
		if !ok {
			return false
		}
		if meal.MealPrep {
			prep[meal.Name] = struct{}{}
		}
		scale := float64(people) / meal.DefaultPortions
		for _, ing := range meal.Ingredients {
			acc := totals[ing.Item]
			if acc == nil {
				acc = &accumulator{units: make(map[string]struct{})}
				totals[ing.Item] = acc
			}
			acc.quantity += ing.Quantity * scale
			acc.units[ing.Unit] = struct{}{}
		}
		return true
	}

	p.Each(func(day plan.Day, slot plan.Slot, sel plan.Selection) {
		if sel.Main != nil {
			if meal, ok := cat.Find(sel.Main.Meal); ok {
				resolved = true
				addMeal(sel.Main.Meal, sel.Main.People)
				if cells[day] == nil {
					cells[day] = make(map[plan.Slot]Cell)
				}
				cells[day][slot] = Cell{Name: meal.Name, Difficulty: meal.Difficulty}
			}
		}
		if sel.Salad != "" {
			// The salad is scaled by the slot's main people-count when a
			// main is set, else a single portion.
			people := 1
			if sel.Main != nil {
				people = sel.Main.People
			}
			if addMeal(sel.Salad, people) {
				resolved = true
			}
		}
	})

	if !resolved {
		return nil, ErrEmptyPlan
	}

	lines := make([]Line, 0, len(totals))
	for item, acc := range totals {
		units := make([]string, 0, len(acc.units))
		for u := range acc.units {
			units = append(units, u)
		}
		sort.Strings(units)
		lines = append(lines, Line{
			Item:     item,
			Quantity: math.Ceil(acc.quantity*100) / 100,
			Units:    units,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Item < lines[j].Item })

	prepList := make([]string, 0, len(prep))
	for name := range prep {
		prepList = append(prepList, name)
	}
	sort.Strings(prepList)

	return &Summary{Lines: lines, PrepAhead: prepList, Cells: cells}, nil
}
