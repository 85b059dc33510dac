package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrContentNotFound is returned when a content row does not exist.
var ErrContentNotFound = errors.New("content not found")

// Food is a row from the static food database.
type Food struct {
	ID       int     `json:"food_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Recipe is a curated recipe row.
type Recipe struct {
	ID           int     `json:"recipe_id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	PrepMinutes  int     `json:"prep_minutes"`
	Ingredients  string  `json:"ingredients,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
}

// DietTemplate is a prebuilt plan summary.
type DietTemplate struct {
	ID            int     `json:"template_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	DailyCalories float64 `json:"daily_calories"`
	DurationDays  int     `json:"duration_days"`
	IsPremium     bool    `json:"is_premium"`
}

// VitaminTemplate is a suggestion for the add-vitamin picker.
type VitaminTemplate struct {
	ID            int    `json:"template_id"`
	Name          string `json:"name"`
	DefaultDosage string `json:"default_dosage"`
	TimeOfDay     string `json:"time_of_day"`
}

// ContentService reads the localized static content out of Postgres. Every
// read takes a lang of "tr" or "en"; anything else falls back to Turkish.
type ContentService struct {
	db *sql.DB
}

func NewContentService(db *sql.DB) *ContentService {
	return &ContentService{db: db}
}

func langColumn(lang string) string {
	if lang == "en" {
		return "en"
	}
	return "tr"
}

// Foods lists the food database, optionally filtered by category.
func (s *ContentService) Foods(ctx context.Context, lang, category string) ([]Food, error) {
	col := langColumn(lang)
	query := fmt.Sprintf(`SELECT id, name_%s, category, calories_per_100g, protein, carbs, fat
		FROM foods`, col)
	args := []any{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	var foods []Food
	for rows.Next() {
		var f Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Protein, &f.Carbs, &f.Fat); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

// Recipes lists recipes in summary form, optionally filtered by category.
func (s *ContentService) Recipes(ctx context.Context, lang, category string) ([]Recipe, error) {
	col := langColumn(lang)
	query := fmt.Sprintf(`SELECT id, title_%s, category, calories, protein, carbs, fat, prep_minutes
		FROM recipes`, col)
	args := []any{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.Title, &r.Category, &r.Calories, &r.Protein, &r.Carbs, &r.Fat, &r.PrepMinutes); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// Recipe loads one recipe with its full text.
func (s *ContentService) Recipe(ctx context.Context, lang string, id int) (*Recipe, error) {
	col := langColumn(lang)
	query := fmt.Sprintf(`SELECT id, title_%s, category, calories, protein, carbs, fat, prep_minutes,
			ingredients_%s, instructions_%s
		FROM recipes WHERE id = $1`, col, col, col)

	var r Recipe
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.Title, &r.Category, &r.Calories, &r.Protein, &r.Carbs, &r.Fat,
		&r.PrepMinutes, &r.Ingredients, &r.Instructions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query recipe: %w", err)
	}
	return &r, nil
}

// RecipeCategories lists the distinct categories in use.
func (s *ContentService) RecipeCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM recipes ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// DietTemplates lists the prebuilt plans.
func (s *ContentService) DietTemplates(ctx context.Context, lang string) ([]DietTemplate, error) {
	col := langColumn(lang)
	query := fmt.Sprintf(`SELECT id, title_%s, description_%s, daily_calories, duration_days, is_premium
		FROM diet_templates ORDER BY id`, col, col)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query diet templates: %w", err)
	}
	defer rows.Close()

	var templates []DietTemplate
	for rows.Next() {
		var t DietTemplate
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DailyCalories, &t.DurationDays, &t.IsPremium); err != nil {
			return nil, fmt.Errorf("scan diet template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// DietTemplate loads one prebuilt plan.
func (s *ContentService) DietTemplate(ctx context.Context, lang string, id int) (*DietTemplate, error) {
	col := langColumn(lang)
	query := fmt.Sprintf(`SELECT id, title_%s, description_%s, daily_calories, duration_days, is_premium
		FROM diet_templates WHERE id = $1`, col, col)

	var t DietTemplate
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.DailyCalories, &t.DurationDays, &t.IsPremium)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query diet template: %w", err)
	}
	return &t, nil
}

// VitaminTemplates lists the supplement suggestions.
func (s *ContentService) VitaminTemplates(ctx context.Context, lang string) ([]VitaminTemplate, error) {
	col := langColumn(lang)
	query := fmt.Sprintf(`SELECT id, name_%s, default_dosage, time_of_day
		FROM vitamin_templates ORDER BY id`, col)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query vitamin templates: %w", err)
	}
	defer rows.Close()

	var templates []VitaminTemplate
	for rows.Next() {
		var t VitaminTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.DefaultDosage, &t.TimeOfDay); err != nil {
			return nil, fmt.Errorf("scan vitamin template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
