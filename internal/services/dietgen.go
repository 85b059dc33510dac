package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

// DietRequest is what the client asks a generated plan to look like.
type DietRequest struct {
	Name           string   `json:"name"`
	TargetCalories int      `json:"target_calories"`
	Goal           string   `json:"goal"`
	Preferences    []string `json:"preferences,omitempty"`
	Restrictions   []string `json:"restrictions,omitempty"`
}

// DietGenerator builds meal plans through the language model. Generation is
// a single attempt; there is no fallback model for text generation.
type DietGenerator struct {
	client *openAIClient
	model  string
	log    *zap.Logger
}

// NewDietGenerator builds the generator. apiURL is overridable for tests.
func NewDietGenerator(apiKey, apiURL, model string, log *zap.Logger) *DietGenerator {
	return &DietGenerator{
		client: newOpenAIClient(apiKey, apiURL),
		model:  model,
		log:    log,
	}
}

// Configured reports whether an API key is present.
func (d *DietGenerator) Configured() bool { return d.client.apiKey != "" }

// GenerateWeekly creates a 7-day plan.
func (d *DietGenerator) GenerateWeekly(ctx context.Context, req DietRequest) (*models.PersonalDiet, error) {
	return d.generate(ctx, req, 7)
}

// GeneratePersonal creates a plan sized by the request, defaulting to 7
// days.
func (d *DietGenerator) GeneratePersonal(ctx context.Context, req DietRequest, days int) (*models.PersonalDiet, error) {
	if days <= 0 {
		days = 7
	}
	return d.generate(ctx, req, days)
}

func (d *DietGenerator) generate(ctx context.Context, req DietRequest, days int) (*models.PersonalDiet, error) {
	if !d.Configured() {
		return nil, ErrNotConfigured
	}
	if req.TargetCalories <= 0 {
		req.TargetCalories = 2000
	}
	if req.Name == "" {
		req.Name = "Kişisel Diyet"
	}

	content, err := d.client.Chat(ctx, chatRequest{
		Model:     d.model,
		Messages:  []chatMessage{{Role: "user", Content: d.prompt(req, days)}},
		MaxTokens: 8000,
	})
	if err != nil {
		return nil, fmt.Errorf("diet generation: %w", err)
	}

	plan, err := parseDietPlan(content)
	if err != nil {
		d.log.Warn("diet plan parse failed", zap.Error(err))
		return nil, err
	}
	plan.DietID = NewDietID()
	plan.Title = req.Name
	plan.DurationDays = len(plan.Days)
	plan.DailyCalories = float64(req.TargetCalories)
	return plan, nil
}

func (d *DietGenerator) prompt(req DietRequest, days int) string {
	prefs := strings.Join(req.Preferences, ", ")
	if prefs == "" {
		prefs = "None"
	}
	restr := strings.Join(req.Restrictions, ", ")
	if restr == "" {
		restr = "None"
	}
	return fmt.Sprintf(`Create a detailed %d-day diet plan in JSON format. Be very specific with ingredients and portions.

Name: %s
Target Calories: %d kcal/day
Goal: %s
Preferences: %s
Restrictions: %s

Return ONLY valid JSON with this exact structure:
{
  "description": "Brief description of the diet plan",
  "days": [
    {
      "day": 1,
      "title": "Pazartesi",
      "total_calories": %d,
      "meals": [
        {
          "meal_type": "breakfast",
          "name": "Meal name",
          "description": "Detailed description with ingredients",
          "calories": 400,
          "protein": 20,
          "carbs": 40,
          "fat": 15,
          "ingredients": ["2 yumurta", "1 dilim tam buğday ekmeği"]
        }
      ]
    }
  ]
}

Each day needs breakfast, morning_snack, lunch, afternoon_snack, dinner and evening_snack meals summing near the calorie target.
Create all %d days with different, varied, and delicious meals. Use Turkish cuisine and ingredients available in Turkey.`,
		days, req.Name, req.TargetCalories, req.Goal, prefs, restr, req.TargetCalories, days)
}

func parseDietPlan(content string) (*models.PersonalDiet, error) {
	s := strings.TrimSpace(content)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			s = s[i : j+1]
		}
	}
	var plan models.PersonalDiet
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("%w: plan has no days", ErrParseFailure)
	}
	return &plan, nil
}
