package services

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newContentDB seeds an in-memory database with the content schema subset
// these tests touch.
func newContentDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE diet_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		title_tr TEXT NOT NULL,
		title_en TEXT NOT NULL,
		description_tr TEXT NOT NULL DEFAULT '',
		description_en TEXT NOT NULL DEFAULT '',
		daily_calories REAL NOT NULL,
		duration_days INTEGER NOT NULL DEFAULT 7,
		is_premium BOOLEAN NOT NULL DEFAULT FALSE
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO diet_templates
		(slug, title_tr, title_en, description_tr, description_en, daily_calories, duration_days, is_premium) VALUES
		('akdeniz', 'Akdeniz Diyeti', 'Mediterranean Diet', 'Zeytinyağı ağırlıklı', 'Olive oil based', 1800, 7, 0),
		('ketojenik', 'Ketojenik Diyet', 'Ketogenic Diet', 'Düşük karbonhidrat', 'Low carb', 1600, 14, 1)`)
	require.NoError(t, err)
	return db
}

func TestDietTemplatesLocalized(t *testing.T) {
	svc := NewContentService(newContentDB(t))

	templates, err := svc.DietTemplates(context.Background(), "tr")
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Akdeniz Diyeti", templates[0].Title)
	assert.False(t, templates[0].IsPremium)
	assert.True(t, templates[1].IsPremium)

	templates, err = svc.DietTemplates(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, "Mediterranean Diet", templates[0].Title)

	// Unknown languages fall back to Turkish.
	templates, err = svc.DietTemplates(context.Background(), "de")
	require.NoError(t, err)
	assert.Equal(t, "Akdeniz Diyeti", templates[0].Title)
}

func TestDietTemplateDetail(t *testing.T) {
	svc := NewContentService(newContentDB(t))

	tpl, err := svc.DietTemplate(context.Background(), "en", 2)
	require.NoError(t, err)
	assert.Equal(t, "Ketogenic Diet", tpl.Title)
	assert.Equal(t, 14, tpl.DurationDays)
	assert.True(t, tpl.IsPremium)

	_, err = svc.DietTemplate(context.Background(), "tr", 99)
	assert.ErrorIs(t, err, ErrContentNotFound)
}
