package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wearloom/stylist-backend/config"
	"github.com/wearloom/stylist-backend/models"
)

// Planner turns an intake form plus a style profile into a validated
// StylePlan. Two backends exist: the hosted Gemini API and a local
// stylist model endpoint. Both validate their output identically.
type Planner interface {
	Plan(ctx context.Context, form models.GenerationRequest, profile models.StyleProfile) (*models.StylePlan, error)
}

// New picks the backend once at startup based on configuration.
func New() Planner {
	if config.StylistModelURL != "" {
		return NewLocalPlanner(config.StylistModelURL)
	}
	return NewGeminiPlanner(config.GeminiAPIKey, config.GeminiModel)
}

// parsePlan decodes raw model output into a StylePlan and validates it.
// Malformed or schema-violating output is fatal; there is no auto-repair.
func parsePlan(raw string) (*models.StylePlan, error) {
	cleaned := stripCodeFence(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("model returned empty content")
	}

	var plan models.StylePlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %v", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan failed validation: %v", err)
	}
	return &plan, nil
}

// stripCodeFence removes markdown code fences the model sometimes wraps
// around its JSON despite being asked for raw output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
