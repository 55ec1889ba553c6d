package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wearloom/stylist-backend/models"
)

func TestBuildPromptEmbedsFormFields(t *testing.T) {
	form := models.GenerationRequest{
		Occasion:       "wedding",
		PreferredBrand: "zara",
		Budget:         "300",
		Description:    "elegant",
	}
	prompt := BuildPrompt(form, models.StyleProfile{})

	assert.Contains(t, prompt, "wedding")
	assert.Contains(t, prompt, "zara")
	assert.Contains(t, prompt, "300")
	assert.Contains(t, prompt, "elegant")
	assert.Contains(t, prompt, "between 3 and 6 items")
}

func TestBuildPromptOmitsEmptyProfileFields(t *testing.T) {
	profile := models.StyleProfile{
		Gender: "female",
		Height: 170,
	}
	prompt := BuildPrompt(models.GenerationRequest{Occasion: "casual"}, profile)

	assert.Contains(t, prompt, "Gender: female")
	assert.Contains(t, prompt, "170 cm")
	assert.NotContains(t, prompt, "Weight")
	assert.NotContains(t, prompt, "Skin tone")
}

func TestProfileSummaryEmptyProfile(t *testing.T) {
	assert.Empty(t, profileSummary(models.StyleProfile{}))
}
