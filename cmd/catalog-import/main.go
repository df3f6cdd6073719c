// catalog-import fetches a recipe page and appends it to the catalog file.
//
// Usage:
//
//	catalog-import -url https://example.com/recipe -type lunch,dinner [-salad] [-prep] [-difficulty easy]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"weekly-meal-planner/internal/catalog"
	"weekly-meal-planner/internal/importer"
)

func main() {
	url := flag.String("url", "", "Recipe page URL to import (required)")
	catalogPath := flag.String("catalog", "meals.json", "Catalog file to append to")
	types := flag.String("type", "dinner", "Comma-separated slot tags (breakfast,lunch,dinner)")
	salad := flag.Bool("salad", false, "Mark the meal as a side salad")
	prep := flag.Bool("prep", false, "Mark the meal as advance-preparable")
	difficulty := flag.String("difficulty", "medium", "Difficulty label")
	flag.Parse()

	if *url == "" {
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	meal, err := importer.New().Fetch(ctx, *url)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	for _, t := range strings.Split(*types, ",") {
		if t = strings.TrimSpace(t); t != "" {
			meal.Type = append(meal.Type, t)
		}
	}
	meal.IsSalad = *salad
	meal.MealPrep = *prep
	meal.Difficulty = *difficulty
	meal.Recipe = fmt.Sprintf("Imported from %s", *url)

	if err := catalog.Append(*catalogPath, *meal); err != nil {
		log.Fatalf("Failed to update catalog: %v", err)
	}

	fmt.Printf("Added %q (%d ingredients, %g portions) to %s\n",
		meal.Name, len(meal.Ingredients), meal.DefaultPortions, *catalogPath)
}
