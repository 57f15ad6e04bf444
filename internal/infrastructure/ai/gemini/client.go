// Package gemini provides the remote advisory client backed by a
// generative language API. Every failure mode is converted into a typed
// advisory error so the coordinator can fall back to the local engines.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/ports/outbound"
	"github.com/zaikabox/v1/pkg/errors"
)

// DefaultTimeout bounds every remote call so the coordinator is never left
// waiting on a dead connection.
const DefaultTimeout = 12 * time.Second

// historyWindow bounds the conversational context sent with chat requests.
const historyWindow = 4

// Config holds the client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// Offline forces the client unavailable, used when connectivity is
	// known to be down.
	Offline bool
}

// Client implements outbound.AdvisoryClient against a Gemini-style
// generateContent endpoint.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new advisory client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger = logger.Named("gemini-client")
	if cfg.APIKey == "" {
		logger.Info("no advisory API key configured, remote path disabled")
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Available reports whether a remote attempt is worth making.
func (c *Client) Available() bool {
	return c.cfg.APIKey != "" && !c.cfg.Offline
}

// Wire structures for the generateContent API.

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// remoteDish is the shape of one element of the remote recommendation
// array.
type remoteDish struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int               `json:"price"`
	Category       string            `json:"category"`
	IsVegetarian   bool              `json:"isVegetarian"`
	Calories       int               `json:"calories"`
	Ingredients    []menu.Ingredient `json:"ingredients"`
	Rating         float64           `json:"rating"`
	RestaurantName string            `json:"restaurantName"`
}

// Recommend asks the remote service for personalized dish recommendations.
func (c *Client) Recommend(ctx context.Context, profile health.Profile) ([]menu.FoodItem, error) {
	raw, err := c.generate(ctx, buildRecommendPrompt(profile), true)
	if err != nil {
		return nil, err
	}

	var dishes []remoteDish
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &dishes); err != nil {
		return nil, errors.NewAIMalformedResponseError(err)
	}
	if len(dishes) == 0 {
		return nil, errors.NewAIMalformedResponseError(fmt.Errorf("empty recommendation array"))
	}

	items := make([]menu.FoodItem, 0, len(dishes))
	for _, dish := range dishes {
		item := coerceDish(dish)
		if err := item.Validate(); err != nil {
			return nil, errors.NewAIMalformedResponseError(fmt.Errorf("dish %q: %w", dish.Name, err))
		}
		items = append(items, item)
	}

	c.logger.Info("remote recommendations parsed", zap.Int("count", len(items)))
	return items, nil
}

// SafetyCheck asks the remote service whether one item is safe for the
// profile.
func (c *Client) SafetyCheck(ctx context.Context, item menu.FoodItem, profile health.Profile) (outbound.SafetyVerdict, error) {
	prompt := fmt.Sprintf(
		"User: %s (Stage %s).\nFood: %s.\nSafe to eat? Return JSON: { \"safe\": boolean, \"reason\": \"string\" }",
		profile.DiseaseName, profile.Stage, item.Name)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return outbound.SafetyVerdict{}, err
	}

	var verdict outbound.SafetyVerdict
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &verdict); err != nil {
		return outbound.SafetyVerdict{}, errors.NewAIMalformedResponseError(err)
	}
	return verdict, nil
}

// ValidateProfile validates a declared condition and produces a dietary
// memo.
func (c *Client) ValidateProfile(ctx context.Context, profile health.Profile) (outbound.ProfileValidation, error) {
	prompt := fmt.Sprintf(
		"Validate Profile: Age %d, Disease %s, Meds %s.\nReturn JSON: { \"valid\": boolean, \"reason\": \"string\", \"dietaryMemo\": \"string\" }",
		profile.Age, profile.DiseaseName, profile.Medicines)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return outbound.ProfileValidation{}, err
	}

	var validation outbound.ProfileValidation
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &validation); err != nil {
		return outbound.ProfileValidation{}, errors.NewAIMalformedResponseError(err)
	}
	return validation, nil
}

// Chat returns a free-text assistant reply with a bounded history window.
func (c *Client) Chat(ctx context.Context, message string, profile health.Profile, history []outbound.ChatTurn) (string, error) {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var sb strings.Builder
	sb.WriteString("You are a helpful food and nutrition assistant for a food delivery app.\n")
	if profile.HasIssues && profile.DiseaseName != "" {
		fmt.Fprintf(&sb, "The user has %s (stage %s). Keep dietary advice consistent with that.\n", profile.DiseaseName, profile.Stage)
	}
	for _, turn := range history {
		fmt.Fprintf(&sb, "%s: %s\n", turn.Role, turn.Text)
	}
	fmt.Fprintf(&sb, "user: %s\n", message)

	reply, err := c.generate(ctx, sb.String(), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// generate performs one generateContent call and returns the text of the
// first candidate. All failures come back as typed advisory errors.
func (c *Client) generate(ctx context.Context, prompt string, jsonResponse bool) (string, error) {
	if !c.Available() {
		return "", errors.NewAIConfigurationError()
	}

	reqBody := generateRequest{
		Contents: []generateContent{
			{Role: "user", Parts: []generatePart{{Text: prompt}}},
		},
	}
	if jsonResponse {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.NewAIMalformedResponseError(err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.NewAINetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewAINetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewAINetworkError(err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errors.NewAIConfigurationError().WithMetadata("status", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", errors.NewAINetworkError(fmt.Errorf("advisory API status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", errors.NewAIMalformedResponseError(err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.NewAIMalformedResponseError(fmt.Errorf("response has no candidates"))
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

func buildRecommendPrompt(profile health.Profile) string {
	age := "Not specified"
	if profile.Age > 0 {
		age = fmt.Sprintf("%d", profile.Age)
	}
	medicines := profile.Medicines
	if medicines == "" {
		medicines = "None"
	}
	memo := profile.DietaryMemo
	if memo == "" {
		memo = "General healthy diet"
	}

	return fmt.Sprintf(`The user has the following health condition:
Age: %s
Disease: %s
Stage: %s
Medicines: %s
Dietary Guidelines: %s

Generate a JSON array of 12 highly recommended Indian dishes (South/North mix).
Strictly follow dietary restrictions for the disease.

JSON Schema: Array<{
  name: string,
  description: string,
  price: number,
  category: string, // 'Veg', 'Non-Veg', 'Drinks', 'Coffee', 'Ice Creams & Dessert', 'Gym Combo', 'Healthy Combo'
  isVegetarian: boolean,
  calories: number,
  ingredients: Array<{name: string, amount: string}>,
  rating: number,
  restaurantName: string
}>`, age, profile.DiseaseName, profile.Stage, medicines, memo)
}

// coerceDish maps a remote dish onto a catalog item with a stable ID and
// sane defaults for missing fields.
func coerceDish(dish remoteDish) menu.FoodItem {
	price := dish.Price
	if price <= 0 {
		price = 150
	}
	rating := dish.Rating
	if rating <= 0 {
		rating = 4.5
	}
	restaurant := dish.RestaurantName
	if restaurant == "" {
		restaurant = "Healthy Kitchen"
	}

	return menu.FoodItem{
		ID:                     "rec_" + slugify(dish.Name),
		Name:                   dish.Name,
		Description:            dish.Description,
		Price:                  price,
		Category:               menu.ParseCategory(dish.Category),
		IsVegetarian:           dish.IsVegetarian,
		IsRecommendedForHealth: true,
		Calories:               dish.Calories,
		Ingredients:            dish.Ingredients,
		Rating:                 rating,
		ReviewCount:            50,
		RestaurantName:         restaurant,
		RestaurantLocation:     "Chennai",
	}
}

// ExtractJSON strips code fences and surrounding prose from model output,
// returning the first top-level JSON array or object. Arrays win when both
// appear, since recommendation payloads are arrays.
func ExtractJSON(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	firstBracket := strings.Index(cleaned, "[")
	firstBrace := strings.Index(cleaned, "{")

	if firstBracket != -1 && (firstBrace == -1 || firstBracket < firstBrace) {
		if last := strings.LastIndex(cleaned, "]"); last > firstBracket {
			return cleaned[firstBracket : last+1]
		}
	} else if firstBrace != -1 {
		if last := strings.LastIndex(cleaned, "}"); last > firstBrace {
			return cleaned[firstBrace : last+1]
		}
	}
	return cleaned
}

func slugify(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
