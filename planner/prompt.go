package planner

import (
	"fmt"
	"strings"

	"github.com/wearloom/stylist-backend/models"
)

// BuildPrompt constructs the planning prompt from the intake form and a
// compact summary of the style profile. Only non-empty profile fields are
// included so the model is not steered by zero values.
func BuildPrompt(form models.GenerationRequest, profile models.StyleProfile) string {
	var b strings.Builder

	b.WriteString("You are a professional fashion stylist. ")
	b.WriteString("Plan complete outfits for the client described below.\n\n")

	if form.Occasion != "" {
		fmt.Fprintf(&b, "Occasion: %s\n", form.Occasion)
	}
	if form.PreferredBrand != "" {
		fmt.Fprintf(&b, "Preferred brand: %s\n", form.PreferredBrand)
	}
	if form.Budget != "" {
		fmt.Fprintf(&b, "Total budget: %s\n", form.Budget)
	}
	if form.Description != "" {
		fmt.Fprintf(&b, "Client request: %s\n", form.Description)
	}

	summary := profileSummary(profile)
	if summary != "" {
		b.WriteString("\nClient profile:\n")
		b.WriteString(summary)
	}

	b.WriteString(`
Respond with strict JSON only, no commentary, matching this schema:
{
  "outfits": [
    {
      "label": "short outfit name",
      "description": "one sentence describing the look",
      "items": [
        {
          "search_query": "retailer search text for this item",
          "plan_key": "short canonical key, e.g. 'navy blazer'",
          "item_type": "top|bottom|shoes|accessory|outerwear|dress",
          "min_price": "lower price bound as a number string",
          "max_price": "upper price bound as a number string",
          "preferred_brand": "brand to prefer, or 'any'"
        }
      ]
    }
  ]
}
Every outfit must contain between 3 and 6 items. All fields are required strings.`)

	return b.String()
}

func profileSummary(p models.StyleProfile) string {
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, value))
		}
	}

	add("Gender", p.Gender)
	if p.Age > 0 {
		add("Age", fmt.Sprintf("%d", p.Age))
	}
	if p.Height > 0 {
		add("Height", fmt.Sprintf("%.0f cm", p.Height))
	}
	if p.Weight > 0 {
		add("Weight", fmt.Sprintf("%.0f kg", p.Weight))
	}
	if p.Chest > 0 {
		add("Chest", fmt.Sprintf("%.1f in", p.Chest))
	}
	if p.Waist > 0 {
		add("Waist", fmt.Sprintf("%.1f in", p.Waist))
	}
	if p.Hips > 0 {
		add("Hips", fmt.Sprintf("%.1f in", p.Hips))
	}
	add("Skin tone", p.SkinTone)
	add("Style notes", p.StyleNotes)

	return strings.Join(lines, "\n")
}
