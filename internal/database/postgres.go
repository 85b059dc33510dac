package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the static-content database (foods, recipes,
// templates) and bootstraps its schema.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err = InitPostgresTables(db); err != nil {
		db.Close()
		return nil, err
	}
	if err = SeedContent(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitPostgresTables creates the content tables if they don't exist.
func InitPostgresTables(db *sql.DB) error {
	queries := []string{
		// Static food database, localized name columns
		`CREATE TABLE IF NOT EXISTS foods (
			id SERIAL PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			name_tr VARCHAR(255) NOT NULL,
			name_en VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			calories_per_100g REAL NOT NULL,
			protein REAL NOT NULL DEFAULT 0,
			carbs REAL NOT NULL DEFAULT 0,
			fat REAL NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Curated recipes
		`CREATE TABLE IF NOT EXISTS recipes (
			id SERIAL PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			title_tr VARCHAR(255) NOT NULL,
			title_en VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			calories REAL NOT NULL,
			protein REAL NOT NULL DEFAULT 0,
			carbs REAL NOT NULL DEFAULT 0,
			fat REAL NOT NULL DEFAULT 0,
			prep_minutes INTEGER NOT NULL DEFAULT 0,
			ingredients_tr TEXT NOT NULL DEFAULT '',
			ingredients_en TEXT NOT NULL DEFAULT '',
			instructions_tr TEXT NOT NULL DEFAULT '',
			instructions_en TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Prebuilt diet templates shown before a user generates their own
		`CREATE TABLE IF NOT EXISTS diet_templates (
			id SERIAL PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			title_tr VARCHAR(255) NOT NULL,
			title_en VARCHAR(255) NOT NULL,
			description_tr TEXT NOT NULL DEFAULT '',
			description_en TEXT NOT NULL DEFAULT '',
			daily_calories REAL NOT NULL,
			duration_days INTEGER NOT NULL DEFAULT 7,
			is_premium BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Vitamin suggestions offered in the add-vitamin picker
		`CREATE TABLE IF NOT EXISTS vitamin_templates (
			id SERIAL PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			name_tr VARCHAR(255) NOT NULL,
			name_en VARCHAR(255) NOT NULL,
			default_dosage VARCHAR(100) NOT NULL DEFAULT '',
			time_of_day VARCHAR(20) NOT NULL DEFAULT 'morning',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
