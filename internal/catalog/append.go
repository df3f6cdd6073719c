package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Append adds a meal to the catalog file, creating the file when missing.
// The combined catalog is validated before anything is written, so a
// duplicate name leaves the file untouched.
func Append(path string, meal Meal) error {
	var meals []Meal
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &meals); err != nil {
			return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// New catalog file.
	default:
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	meals = append(meals, meal)
	if _, err := New(meals); err != nil {
		return err
	}

	out, err := json.MarshalIndent(meals, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file %s: %w", path, err)
	}
	return nil
}
