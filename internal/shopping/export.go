package shopping

import (
	"strconv"
	"strings"
)

// FormatQuantity renders a quantity with the fewest digits that represent
// it exactly, so 300 prints as "300" and 300.25 keeps both decimals.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// UnitString joins a line's observed units for display.
func (l Line) UnitString() string {
	return strings.Join(l.Units, ", ")
}

// Text renders the shopping list as the downloadable plain-text artifact:
// header, separator, one line per item in sorted order.
func (s *Summary) Text() string {
	var sb strings.Builder
	sb.WriteString("Your Shopping List\n")
	sb.WriteString("------------------\n")
	for _, line := range s.Lines {
		sb.WriteString("- ")
		sb.WriteString(line.Item)
		sb.WriteString(": ")
		sb.WriteString(FormatQuantity(line.Quantity))
		sb.WriteString(" ")
		sb.WriteString(line.UnitString())
		sb.WriteString("\n")
	}
	return sb.String()
}
