package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRecipeID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uri: "http://www.edamam.com/ontologies/edamam.owl#recipe_abc123", want: "abc123"},
		{uri: ".../recipe_abc123", want: "abc123"},
		{uri: "recipe_one/recipe_two", want: "two"},
		{uri: "recipe_", want: ""},
		{uri: "no-marker", want: "no-marker"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRecipeID(tt.uri))
		})
	}
}

func TestRecipe_Accessors(t *testing.T) {
	r := Recipe{URI: "owl#recipe_xyz", Calories: 1234.98}
	assert.Equal(t, "xyz", r.ID())
	assert.Equal(t, 1234, r.WholeCalories())
}
