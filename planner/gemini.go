package planner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wearloom/stylist-backend/models"
	"github.com/wearloom/stylist-backend/utils"
)

// placeholderImageURL grounds the model when the profile has no photo.
const placeholderImageURL = "https://assets.wearloom.com/placeholders/profile_neutral.jpg"

// GeminiPlanner calls the hosted Gemini API for outfit planning
type GeminiPlanner struct {
	apiKey    string
	modelName string
}

func NewGeminiPlanner(apiKey, modelName string) *GeminiPlanner {
	return &GeminiPlanner{apiKey: apiKey, modelName: modelName}
}

func (g *GeminiPlanner) Plan(ctx context.Context, form models.GenerationRequest, profile models.StyleProfile) (*models.StylePlan, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"

	parts := []genai.Part{genai.Text(BuildPrompt(form, profile))}
	if img := g.groundingImage(ctx, profile); img != nil {
		parts = append(parts, genai.ImageData("jpeg", img))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("model returned no content")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("model returned non-text content")
	}

	return parsePlan(string(text))
}

// groundingImage fetches the profile photo, falling back to the fixed
// placeholder. A nil return means planning proceeds text-only.
func (g *GeminiPlanner) groundingImage(ctx context.Context, profile models.StyleProfile) []byte {
	if len(profile.ImagePaths) > 0 {
		imageURL := profile.ImagePaths[0]
		if !strings.HasPrefix(imageURL, "http") {
			if presigned, err := utils.GetPresignedURL(ctx, imageURL); err == nil {
				imageURL = presigned
			}
		}
		if data, err := fetchImage(imageURL); err == nil {
			return data
		} else {
			fmt.Printf("[Planner] Failed to fetch profile image: %v\n", err)
		}
	}

	data, err := fetchImage(placeholderImageURL)
	if err != nil {
		fmt.Printf("[Planner] Failed to fetch placeholder image: %v\n", err)
		return nil
	}
	return data
}

func fetchImage(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
