package routes

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/eystudio/caloriediet-backend/internal/handlers"
	"github.com/eystudio/caloriediet-backend/internal/middleware"
)

// Build assembles the router. rdb may be nil; the Redis rate limiter then
// stays out of the chain.
func Build(api *handlers.API, rdb *redis.Client) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(api.Log))
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   api.Cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if rdb != nil {
		r.Use(middleware.RedisRateLimit(rdb))
	}
	if api.Cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(api.Cfg.AllowedHost) {
			r.Use(mw)
		}
	}

	// Health and debug
	r.Get("/health", api.Health)
	r.Get("/api/debug/storage-status", api.StorageStatus)

	// Auth
	r.Post("/api/auth/register", api.Register)
	r.Post("/api/auth/login", api.Login)
	r.Post("/api/auth/guest", api.GuestLogin)
	r.Post("/api/auth/session", api.ExchangeSession)

	// Google OAuth
	r.Get("/auth/v1/env/oauth/redirect", api.OAuthRedirect)
	r.Get("/auth/v1/env/oauth/session-data", api.ExchangeSession)
	r.Get("/auth/callback", api.OAuthCallback)

	// Account deletion compliance form (public, served outside /api)
	r.Get("/account-deletion", api.AccountDeletionPage)
	r.Head("/account-deletion", api.AccountDeletionPage)
	r.Get("/account-deletion/", api.AccountDeletionPage)
	r.Head("/account-deletion/", api.AccountDeletionPage)
	r.Post("/api/account-deletion-request", api.SubmitDeletionRequest)

	// Everything below needs a live session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(api.Lifecycle))

		r.Get("/api/auth/me", api.Me)
		r.Post("/api/auth/logout", api.Logout)
		r.Delete("/api/auth/account", api.DeleteAccount)

		// Profile and goals
		r.Put("/api/auth/profile", api.UpdateProfile)
		r.Put("/api/user/goals", api.UpdateGoals)
		r.Post("/api/auth/calculate-goals", api.CalculateGoals)

		// Food and meals
		r.Get("/api/food/database", api.FoodDatabase)
		r.Post("/api/food/add-meal", api.AddMeal)
		r.Get("/api/food/today", api.TodayMeals)
		r.Get("/api/food/daily-summary", api.DailySummary)
		r.Delete("/api/food/meal/{mealID}", api.DeleteMeal)
		r.Post("/api/food/analyze", api.AnalyzeFood)
		r.Post("/api/food/upload-photo", api.UploadPhoto)

		// Water
		r.Post("/api/water/add", api.AddWater)
		r.Get("/api/water/today", api.TodayWater)
		r.Get("/api/water/weekly", api.WeeklyWater)
		r.Post("/api/water/remove", api.RemoveWater)
		r.Delete("/api/water/entry/{entryID}", api.DeleteWaterEntry)

		// Steps
		r.Post("/api/steps/sync", api.SyncSteps)
		r.Post("/api/steps/manual", api.AddSteps)
		r.Get("/api/steps/today", api.TodaySteps)

		// Vitamins
		r.Get("/api/vitamins/templates", api.VitaminTemplates)
		r.Get("/api/vitamins", api.ListVitamins)
		r.Post("/api/vitamins", api.AddVitamin)
		r.Post("/api/vitamins/{vitaminID}/toggle", api.ToggleVitamin)
		r.Delete("/api/vitamins/{vitaminID}", api.DeleteVitamin)
		r.Get("/api/vitamins/today", api.TodayVitamins)

		// Weight
		r.Post("/api/weight/log", api.LogWeight)
		r.Get("/api/weight/history", api.WeightHistory)

		// Premium and ads
		r.Post("/api/premium/activate", api.ActivatePremium)
		r.Get("/api/premium/status", api.PremiumStatus)
		r.Post("/api/ads/watch", api.WatchAds)

		// Diet plans and programs
		r.Post("/api/diet/generate-weekly", api.GenerateWeeklyDiet)
		r.Post("/api/diet/generate-personal", api.GeneratePersonalDiet)
		r.Get("/api/diet/my-diets", api.MyDiets)
		r.Get("/api/diets/templates", api.DietTemplates)
		r.Get("/api/diets/{templateID}", api.DietTemplateDetail)
		r.Post("/api/diet/start", api.StartDiet)
		r.Get("/api/diet/active", api.ActiveDietProgram)
		r.Get("/api/diet/program/day/{day}", api.DietProgramDay)
		r.Post("/api/diet/program/day/{day}/complete", api.CompleteDietDay)

		// Recipes
		r.Get("/api/recipes", api.Recipes)
		r.Get("/api/recipes/categories", api.RecipeCategories)
		r.Get("/api/recipes/{recipeID}", api.RecipeDetail)

		// Gamification
		r.Get("/api/gamification/status", api.GamificationStatus)
		r.Post("/api/gamification/checkin", api.DailyCheckin)
	})

	return r
}
