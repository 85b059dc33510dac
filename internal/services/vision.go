package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/eystudio/caloriediet-backend/internal/models"
)

const (
	visionMaxEdge     = 1280
	visionJPEGQuality = 75
)

// visionPrompt builds the analysis instruction. Food names follow the
// client locale; a caller-supplied context hint is passed through to help
// identify ambiguous dishes.
func visionPrompt(locale, hint string) string {
	naming := "Use English food names."
	if locale == "" || strings.HasPrefix(strings.ToLower(locale), "tr") {
		naming = "Use Turkish food names."
	}
	prompt := `Analyze this food photo. Respond with JSON only, no prose, matching:
{"is_food": bool, "items": [{"name": str, "portion_grams": num, "range_grams": [num, num], "calories": num, "protein": num, "carbs": num, "fat": num, "confidence": num}], "questions": [str], "notes": str}
Estimate realistic portions from visual cues; range_grams brackets the portion estimate.
Confidence is 0.0-1.0. Put clarifying questions in questions when you are unsure.
If the photo contains no food, return {"is_food": false, "items": []}.
` + naming
	if c := strings.TrimSpace(hint); c != "" {
		prompt += fmt.Sprintf("\nThe user says: %q. Take this into account when identifying the foods.", c)
	}
	return prompt
}

// Vision analyzes food photos through a vision-capable model with a single
// fallback-model retry.
type Vision struct {
	client   *openAIClient
	primary  string
	fallback string
	log      *zap.Logger
}

// NewVision builds the analyzer. apiURL is overridable for tests; empty
// means the real endpoint.
func NewVision(apiKey, apiURL, primary, fallback string, log *zap.Logger) *Vision {
	return &Vision{
		client:   newOpenAIClient(apiKey, apiURL),
		primary:  primary,
		fallback: fallback,
		log:      log,
	}
}

// Configured reports whether an API key is present.
func (v *Vision) Configured() bool { return v.client.apiKey != "" }

// Analyze classifies a food photo and estimates its nutrition. The image is
// downscaled before upload. Exactly two attempts: primary model, then the
// fallback model on any retryable failure (rate limit, upstream error,
// unparsable reply). The loop is the whole retry policy; nothing recurses.
func (v *Vision) Analyze(ctx context.Context, imageData []byte, locale, hint string) (*models.FoodAnalysis, error) {
	if !v.Configured() {
		return nil, ErrNotConfigured
	}
	prepared, err := downscaleJPEG(imageData)
	if err != nil {
		return nil, fmt.Errorf("prepare image: %w", err)
	}
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(prepared)
	prompt := visionPrompt(locale, hint)

	var lastErr error
	for attempt, model := range []string{v.primary, v.fallback} {
		analysis, err := v.analyzeOnce(ctx, model, prompt, dataURL)
		if err == nil {
			analysis.Model = model
			return analysis, nil
		}
		lastErr = err
		if !retryableVisionErr(err) {
			return nil, err
		}
		v.log.Warn("vision attempt failed",
			zap.Int("attempt", attempt+1),
			zap.String("model", model),
			zap.Error(err))
	}
	return nil, lastErr
}

func (v *Vision) analyzeOnce(ctx context.Context, model, prompt, dataURL string) (*models.FoodAnalysis, error) {
	content, err := v.client.Chat(ctx, chatRequest{
		Model: model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []map[string]any{
				{"type": "text", "text": prompt},
				{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
			},
		}},
		MaxTokens: 1000,
	})
	if err != nil {
		return nil, err
	}
	analysis, err := parseAnalysis(content)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

func retryableVisionErr(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrParseFailure)
}

// parseAnalysis extracts the JSON object from a model reply, tolerating
// markdown code fences and surrounding prose.
func parseAnalysis(content string) (*models.FoodAnalysis, error) {
	s := strings.TrimSpace(content)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			s = s[i : j+1]
		}
	}
	var analysis models.FoodAnalysis
	if err := json.Unmarshal([]byte(s), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if analysis.Items == nil {
		analysis.Items = []models.FoodItem{}
	}
	if analysis.Questions == nil {
		analysis.Questions = []string{}
	}
	// A reply that omits confidence decodes as zero; read that as the
	// neutral default rather than "very unsure".
	for i := range analysis.Items {
		if analysis.Items[i].ConfidencePct == 0 {
			analysis.Items[i].ConfidencePct = 0.7
		}
	}
	analysis.Totals()
	analysis.DeriveConfirmation()
	return &analysis, nil
}

// downscaleJPEG re-encodes the image as JPEG, scaling so the long edge is at
// most visionMaxEdge. Smaller images are still re-encoded to normalize the
// format the model receives.
func downscaleJPEG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > visionMaxEdge || h > visionMaxEdge {
		scale := float64(visionMaxEdge) / float64(w)
		if h > w {
			scale = float64(visionMaxEdge) / float64(h)
		}
		nw := int(float64(w) * scale)
		nh := int(float64(h) * scale)
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: visionJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
