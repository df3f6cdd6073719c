package plan

import "fmt"

// Day is one of the seven fixed weekdays, Sunday first to match the
// timetable layout.
type Day string

const (
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

// Slot is one of the three fixed meal slots of a day.
type Slot string

const (
	Breakfast Slot = "Breakfast"
	Lunch     Slot = "Lunch"
	Dinner    Slot = "Dinner"
)

// Days returns the fixed day iteration order.
func Days() []Day {
	return []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// Slots returns the fixed slot iteration order.
func Slots() []Slot {
	return []Slot{Breakfast, Lunch, Dinner}
}

// ValidDay reports whether s names one of the seven days.
func ValidDay(s string) (Day, bool) {
	for _, d := range Days() {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// ValidSlot reports whether s names one of the three slots.
func ValidSlot(s string) (Slot, bool) {
	for _, sl := range Slots() {
		if string(sl) == s {
			return sl, true
		}
	}
	return "", false
}

// SlotTag is the lowercase catalog tag matching a slot ("breakfast",
// "lunch", "dinner").
func (s Slot) SlotTag() string {
	switch s {
	case Breakfast:
		return "breakfast"
	case Lunch:
		return "lunch"
	default:
		return "dinner"
	}
}

// MainChoice is a main-dish selection for one cell.
type MainChoice struct {
	Meal   string `json:"meal"`
	People int    `json:"people"`
}

// Selection is the state of one (day, slot) cell. Main and salad are
// independent: either may be set or cleared without touching the other.
type Selection struct {
	Main  *MainChoice `json:"main,omitempty"`
	Salad string      `json:"salad,omitempty"`
}

func (s Selection) empty() bool {
	return s.Main == nil && s.Salad == ""
}

type cellKey struct {
	day  Day
	slot Slot
}

// Plan is the mutable week grid of selections. It is created empty at
// session start, mutated cell by cell by the UI, and discarded at session
// end. Aggregation consumes it read-only.
type Plan struct {
	cells map[cellKey]Selection
}

// New creates an empty plan.
func New() *Plan {
	return &Plan{cells: make(map[cellKey]Selection)}
}

// SetMain records a main-dish selection for a cell.
func (p *Plan) SetMain(day Day, slot Slot, meal string, people int) error {
	if meal == "" {
		return fmt.Errorf("meal name must not be empty")
	}
	if people < 1 {
		return fmt.Errorf("people count must be at least 1, got %d", people)
	}
	key := cellKey{day, slot}
	sel := p.cells[key]
	sel.Main = &MainChoice{Meal: meal, People: people}
	p.cells[key] = sel
	return nil
}

// ClearMain removes a cell's main selection, leaving any salad in place.
func (p *Plan) ClearMain(day Day, slot Slot) {
	key := cellKey{day, slot}
	sel, ok := p.cells[key]
	if !ok {
		return
	}
	sel.Main = nil
	if sel.empty() {
		delete(p.cells, key)
		return
	}
	p.cells[key] = sel
}

// SetSalad records a side-salad selection for a cell. Salads attach to
// lunch and dinner slots only.
func (p *Plan) SetSalad(day Day, slot Slot, meal string) error {
	if meal == "" {
		return fmt.Errorf("salad name must not be empty")
	}
	if slot == Breakfast {
		return fmt.Errorf("salads cannot be added to breakfast slots")
	}
	key := cellKey{day, slot}
	sel := p.cells[key]
	sel.Salad = meal
	p.cells[key] = sel
	return nil
}

// ClearSalad removes a cell's salad selection, leaving any main in place.
func (p *Plan) ClearSalad(day Day, slot Slot) {
	key := cellKey{day, slot}
	sel, ok := p.cells[key]
	if !ok {
		return
	}
	sel.Salad = ""
	if sel.empty() {
		delete(p.cells, key)
		return
	}
	p.cells[key] = sel
}

// Selection returns the cell's current state and whether anything is set.
func (p *Plan) Selection(day Day, slot Slot) (Selection, bool) {
	sel, ok := p.cells[cellKey{day, slot}]
	return sel, ok
}

// Each visits every non-empty cell in the fixed day/slot order.
func (p *Plan) Each(fn func(Day, Slot, Selection)) {
	for _, day := range Days() {
		for _, slot := range Slots() {
			if sel, ok := p.cells[cellKey{day, slot}]; ok {
				fn(day, slot, sel)
			}
		}
	}
}

// Len returns the number of cells with at least one selection.
func (p *Plan) Len() int {
	return len(p.cells)
}

// Reset discards all selections.
func (p *Plan) Reset() {
	p.cells = make(map[cellKey]Selection)
}
