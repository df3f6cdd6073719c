// Package importer fetches a recipe web page and extracts a catalog meal
// from its markup. Extraction is selector-based: schema.org recipe
// microdata first, common ingredient-list class names as fallback.
package importer

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"weekly-meal-planner/internal/catalog"
)

// Importer handles fetching and extracting meals from URLs.
type Importer struct {
	client *http.Client
}

// New creates an Importer with a sane request timeout.
func New() *Importer {
	return &Importer{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ingredientSelectors are tried in order; the first one with matches wins.
var ingredientSelectors = []string{
	"[itemprop=recipeIngredient]",
	"[itemprop=ingredients]",
	"ul.ingredients li",
	".recipe-ingredients li",
	".ingredients li",
}

// Fetch downloads the page and extracts a meal record from it. Type,
// difficulty and the salad/prep flags are left for the caller to fill in.
func (i *Importer) Fetch(ctx context.Context, url string) (*catalog.Meal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove noise so fallback selectors don't pick up chrome.
	doc.Find("script, style, nav, footer, iframe").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	title := extractTitle(doc)
	if title == "" {
		return nil, fmt.Errorf("no recipe title found at %s", url)
	}

	ingredients := extractIngredients(doc)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients found at %s", url)
	}

	return &catalog.Meal{
		Name:            title,
		DefaultPortions: extractServings(doc),
		Ingredients:     ingredients,
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("[itemprop=name]").First().Text()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func extractIngredients(doc *goquery.Document) []catalog.Ingredient {
	for _, sel := range ingredientSelectors {
		var out []catalog.Ingredient
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			line := strings.TrimSpace(s.Text())
			if line == "" {
				return
			}
			out = append(out, ParseIngredientLine(line))
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

var digitsRe = regexp.MustCompile(`\d+`)

func extractServings(doc *goquery.Document) float64 {
	yield := doc.Find("[itemprop=recipeYield]").First().Text()
	if m := digitsRe.FindString(yield); m != "" {
		if n, err := strconv.ParseFloat(m, 64); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// knownUnits are the measurement words recognized in ingredient lines.
var knownUnits = map[string]bool{
	"g": true, "kg": true, "mg": true,
	"ml": true, "l": true,
	"tbsp": true, "tsp": true,
	"cup": true, "cups": true,
	"head": true, "heads": true,
	"clove": true, "cloves": true,
	"slice": true, "slices": true,
	"piece": true, "pieces": true,
	"can": true, "cans": true,
	"x": true,
}

// ParseIngredientLine turns a free-text line like "200 g oats" into an
// ingredient. Lines without a leading quantity become one unit of the
// whole text ("pinch of salt" -> 1 x pinch of salt); quantities without a
// recognized measurement word get the count unit "x" ("2 eggs").
func ParseIngredientLine(line string) catalog.Ingredient {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return catalog.Ingredient{}
	}

	qty, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil || qty <= 0 {
		return catalog.Ingredient{Item: strings.Join(fields, " "), Quantity: 1, Unit: "x"}
	}

	rest := fields[1:]
	unit := "x"
	if len(rest) > 1 && knownUnits[strings.ToLower(rest[0])] {
		unit = strings.ToLower(rest[0])
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return catalog.Ingredient{Item: strings.Join(fields, " "), Quantity: 1, Unit: "x"}
	}

	return catalog.Ingredient{Item: strings.Join(rest, " "), Quantity: qty, Unit: unit}
}
