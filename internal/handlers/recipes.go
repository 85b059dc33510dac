package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eystudio/caloriediet-backend/internal/middleware"
	"github.com/eystudio/caloriediet-backend/internal/models"
	"github.com/eystudio/caloriediet-backend/internal/services"
)

// Recipes lists the curated recipe catalogue, optionally filtered by
// category.
func (a *API) Recipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := a.Content.Recipes(r.Context(), r.URL.Query().Get("lang"), r.URL.Query().Get("category"))
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if recipes == nil {
		recipes = []services.Recipe{}
	}
	respondJSON(w, http.StatusOK, recipes)
}

// RecipeDetail returns one recipe with its full ingredients and
// instructions.
func (a *API) RecipeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "recipeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid recipe id")
		return
	}
	recipe, err := a.Content.Recipe(r.Context(), r.URL.Query().Get("lang"), id)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

// RecipeCategories lists the distinct recipe categories.
func (a *API) RecipeCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.Content.RecipeCategories(r.Context())
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// DietTemplates lists the prebuilt diet plans.
func (a *API) DietTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Content.DietTemplates(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if templates == nil {
		templates = []services.DietTemplate{}
	}
	respondJSON(w, http.StatusOK, templates)
}

// DietTemplateDetail returns one prebuilt plan. Premium templates are only
// served to active subscribers.
func (a *API) DietTemplateDetail(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "templateID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid template id")
		return
	}
	template, err := a.Content.DietTemplate(r.Context(), r.URL.Query().Get("lang"), id)
	if err != nil {
		a.respondServiceError(w, err)
		return
	}
	if template.IsPremium && !user.PremiumActive(models.NowUTC()) {
		respondError(w, http.StatusForbidden, "Premium subscription required")
		return
	}
	respondJSON(w, http.StatusOK, template)
}
