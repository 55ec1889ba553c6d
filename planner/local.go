package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wearloom/stylist-backend/models"
)

// LocalPlanner posts the form and profile to a self-hosted stylist model
// endpoint. The endpoint may wrap the plan in {"data": ...} or return it
// directly; either way it is validated exactly like Gemini output.
type LocalPlanner struct {
	endpoint string
	client   *http.Client
}

func NewLocalPlanner(endpoint string) *LocalPlanner {
	return &LocalPlanner{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

type localPlanRequest struct {
	Form    models.GenerationRequest `json:"form"`
	Profile models.StyleProfile      `json:"profile"`
}

func (l *LocalPlanner) Plan(ctx context.Context, form models.GenerationRequest, profile models.StyleProfile) (*models.StylePlan, error) {
	payload, err := json.Marshal(localPlanRequest{Form: form, Profile: profile})
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stylist model unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stylist model returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Unwrap {"data": ...} envelopes before validating.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}

	return parsePlan(string(body))
}
