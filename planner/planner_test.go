package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanJSON = `{
  "outfits": [
    {
      "label": "Elegant Wedding Guest",
      "description": "A refined look for a formal wedding",
      "items": [
        {"search_query": "navy slim fit blazer", "plan_key": "navy blazer", "item_type": "outerwear", "min_price": "80", "max_price": "150", "preferred_brand": "zara"},
        {"search_query": "white dress shirt", "plan_key": "white shirt", "item_type": "top", "min_price": "25", "max_price": "60", "preferred_brand": "any"},
        {"search_query": "grey wool trousers", "plan_key": "grey trousers", "item_type": "bottom", "min_price": "40", "max_price": "90", "preferred_brand": "any"}
      ]
    }
  ]
}`

func TestParsePlanValid(t *testing.T) {
	plan, err := parsePlan(validPlanJSON)
	require.NoError(t, err)
	require.Len(t, plan.Outfits, 1)
	assert.Equal(t, "Elegant Wedding Guest", plan.Outfits[0].Label)
	assert.Len(t, plan.Outfits[0].Items, 3)
}

func TestParsePlanStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validPlanJSON + "\n```"
	plan, err := parsePlan(fenced)
	require.NoError(t, err)
	assert.Len(t, plan.Outfits, 1)
}

func TestParsePlanEmptyContent(t *testing.T) {
	_, err := parsePlan("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
}

func TestParsePlanInvalidJSON(t *testing.T) {
	_, err := parsePlan("not json at all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParsePlanSchemaViolationIsFatal(t *testing.T) {
	// Valid JSON, but an item is missing its plan_key
	_, err := parsePlan(`{"outfits":[{"label":"Look","description":"desc","items":[{"search_query":"q","item_type":"top","min_price":"1","max_price":"2","preferred_brand":"any"}]}]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}
