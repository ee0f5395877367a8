package domain

import (
	"math"
	"strings"
)

// recipeMarker предшествует идентификатору рецепта в URI
const recipeMarker = "recipe_"

// Ingredient ингредиент рецепта
type Ingredient struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// Recipe рецепт из API поиска
type Recipe struct {
	URI         string       `json:"uri"`
	Label       string       `json:"label"`
	Image       string       `json:"image"`
	Source      string       `json:"source"`
	URL         string       `json:"url"`
	Calories    float64      `json:"calories"`
	Ingredients []Ingredient `json:"ingredients"`
}

// ID возвращает идентификатор рецепта, встроенный в URI
func (r Recipe) ID() string {
	return ExtractRecipeID(r.URI)
}

// WholeCalories калорийность, округлённая вниз
func (r Recipe) WholeCalories() int {
	return int(math.Floor(r.Calories))
}

// ResultSlice результаты одной страницы поиска.
// Заменяется целиком при каждой навигации.
type ResultSlice []Recipe

// ExtractRecipeID возвращает часть URI после последнего вхождения "recipe_".
// URI без маркера возвращается как есть.
func ExtractRecipeID(uri string) string {
	idx := strings.LastIndex(uri, recipeMarker)
	if idx < 0 {
		return uri
	}
	return uri[idx+len(recipeMarker):]
}
