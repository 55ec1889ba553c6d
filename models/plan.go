package models

import "fmt"

// PlannedItem is one abstract clothing item inside a planned outfit,
// not yet tied to a real product. All fields come back from the model
// as strings and are required.
type PlannedItem struct {
	SearchQuery    string `bson:"search_query" json:"search_query"`
	PlanKey        string `bson:"plan_key" json:"plan_key"`
	ItemType       string `bson:"item_type" json:"item_type"`
	MinPrice       string `bson:"min_price" json:"min_price"`
	MaxPrice       string `bson:"max_price" json:"max_price"`
	PreferredBrand string `bson:"preferred_brand" json:"preferred_brand"`
}

// PlannedOutfit is one complete look proposed by the model.
type PlannedOutfit struct {
	Label       string        `bson:"label" json:"label"`
	Description string        `bson:"description" json:"description"`
	Items       []PlannedItem `bson:"items" json:"items"`
}

// StylePlan is the validated structured output of the planning step.
type StylePlan struct {
	Outfits []PlannedOutfit `bson:"outfits" json:"outfits"`
}

// Validate checks the plan against the schema the planner requested.
// Any violation is fatal for the generation; there is no auto-repair.
func (p *StylePlan) Validate() error {
	if len(p.Outfits) == 0 {
		return fmt.Errorf("plan has no outfits")
	}
	for i, outfit := range p.Outfits {
		if outfit.Label == "" {
			return fmt.Errorf("outfit %d: missing label", i)
		}
		if outfit.Description == "" {
			return fmt.Errorf("outfit %d: missing description", i)
		}
		if len(outfit.Items) == 0 {
			return fmt.Errorf("outfit %d (%s): no items", i, outfit.Label)
		}
		for j, item := range outfit.Items {
			if err := item.validate(); err != nil {
				return fmt.Errorf("outfit %d item %d: %v", i, j, err)
			}
		}
	}
	return nil
}

func (it *PlannedItem) validate() error {
	fields := map[string]string{
		"search_query":    it.SearchQuery,
		"plan_key":        it.PlanKey,
		"item_type":       it.ItemType,
		"min_price":       it.MinPrice,
		"max_price":       it.MaxPrice,
		"preferred_brand": it.PreferredBrand,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("missing %s", name)
		}
	}
	return nil
}
