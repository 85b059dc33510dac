package database

import "database/sql"

// SeedContent loads the starter content set. Inserts are keyed on slug with
// ON CONFLICT DO NOTHING, so repeated startups leave operator edits alone.
func SeedContent(db *sql.DB) error {
	if err := seedFoods(db); err != nil {
		return err
	}
	if err := seedRecipes(db); err != nil {
		return err
	}
	if err := seedDietTemplates(db); err != nil {
		return err
	}
	return seedVitaminTemplates(db)
}

func seedFoods(db *sql.DB) error {
	type food struct {
		slug, tr, en, cat        string
		cal, protein, carbs, fat float64
	}
	foods := []food{
		{"chicken-breast", "Tavuk Göğsü", "Chicken Breast", "protein", 165, 31, 0, 3.6},
		{"beef-ground", "Kıyma", "Ground Beef", "protein", 250, 26, 0, 15},
		{"salmon", "Somon", "Salmon", "protein", 208, 20, 0, 13},
		{"egg", "Yumurta", "Egg", "protein", 155, 13, 1.1, 11},
		{"white-rice", "Pirinç Pilavı", "White Rice", "grain", 130, 2.7, 28, 0.3},
		{"bulgur", "Bulgur Pilavı", "Bulgur", "grain", 83, 3.1, 18.6, 0.2},
		{"whole-bread", "Tam Buğday Ekmeği", "Whole Wheat Bread", "grain", 247, 13, 41, 3.4},
		{"oats", "Yulaf", "Oats", "grain", 389, 16.9, 66, 6.9},
		{"pasta", "Makarna", "Pasta", "grain", 131, 5, 25, 1.1},
		{"lentil-soup", "Mercimek Çorbası", "Lentil Soup", "soup", 52, 3.2, 8, 0.8},
		{"yogurt", "Yoğurt", "Yogurt", "dairy", 61, 3.5, 4.7, 3.3},
		{"ayran", "Ayran", "Ayran", "dairy", 36, 1.7, 2.9, 1.8},
		{"white-cheese", "Beyaz Peynir", "White Cheese", "dairy", 264, 17, 2, 21},
		{"milk", "Süt", "Milk", "dairy", 64, 3.3, 4.7, 3.6},
		{"apple", "Elma", "Apple", "fruit", 52, 0.3, 14, 0.2},
		{"banana", "Muz", "Banana", "fruit", 89, 1.1, 23, 0.3},
		{"orange", "Portakal", "Orange", "fruit", 47, 0.9, 12, 0.1},
		{"grapes", "Üzüm", "Grapes", "fruit", 69, 0.7, 18, 0.2},
		{"tomato", "Domates", "Tomato", "vegetable", 18, 0.9, 3.9, 0.2},
		{"cucumber", "Salatalık", "Cucumber", "vegetable", 15, 0.7, 3.6, 0.1},
		{"broccoli", "Brokoli", "Broccoli", "vegetable", 34, 2.8, 7, 0.4},
		{"spinach", "Ispanak", "Spinach", "vegetable", 23, 2.9, 3.6, 0.4},
		{"potato", "Patates", "Potato", "vegetable", 77, 2, 17, 0.1},
		{"olive-oil", "Zeytinyağı", "Olive Oil", "fat", 884, 0, 0, 100},
		{"walnut", "Ceviz", "Walnut", "fat", 654, 15, 14, 65},
		{"almond", "Badem", "Almond", "fat", 579, 21, 22, 50},
		{"hazelnut", "Fındık", "Hazelnut", "fat", 628, 15, 17, 61},
		{"honey", "Bal", "Honey", "sweet", 304, 0.3, 82, 0},
		{"baklava", "Baklava", "Baklava", "sweet", 428, 6, 52, 22},
		{"simit", "Simit", "Simit", "grain", 291, 9, 57, 3},
		{"doner", "Döner", "Doner", "protein", 217, 17, 5, 14},
		{"menemen", "Menemen", "Menemen", "protein", 93, 5, 4, 6.5},
	}
	stmt := `INSERT INTO foods (slug, name_tr, name_en, category, calories_per_100g, protein, carbs, fat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (slug) DO NOTHING`
	for _, f := range foods {
		if _, err := db.Exec(stmt, f.slug, f.tr, f.en, f.cat, f.cal, f.protein, f.carbs, f.fat); err != nil {
			return err
		}
	}
	return nil
}

func seedRecipes(db *sql.DB) error {
	type recipe struct {
		slug, trTitle, enTitle, cat string
		cal, protein, carbs, fat    float64
		prep                        int
		ingTR, ingEN, insTR, insEN  string
	}
	recipes := []recipe{
		{"grilled-chicken-salad", "Izgara Tavuklu Salata", "Grilled Chicken Salad", "lunch",
			320, 35, 12, 14, 25,
			"Tavuk göğsü, marul, domates, salatalık, zeytinyağı",
			"Chicken breast, lettuce, tomato, cucumber, olive oil",
			"Tavuğu ızgarada pişirin, sebzelerle karıştırıp zeytinyağı gezdirin.",
			"Grill the chicken, toss with the vegetables and drizzle with olive oil."},
		{"oatmeal-banana", "Muzlu Yulaf Ezmesi", "Banana Oatmeal", "breakfast",
			290, 9, 52, 6, 10,
			"Yulaf, süt, muz, bal, ceviz",
			"Oats, milk, banana, honey, walnuts",
			"Yulafı sütle pişirin, muz ve cevizle servis edin.",
			"Cook the oats in milk, top with banana and walnuts."},
		{"lentil-soup-classic", "Klasik Mercimek Çorbası", "Classic Lentil Soup", "dinner",
			180, 11, 28, 3, 35,
			"Kırmızı mercimek, soğan, havuç, tereyağı",
			"Red lentils, onion, carrot, butter",
			"Sebzeleri kavurun, mercimek ve suyu ekleyip pişirin, blenderdan geçirin.",
			"Sauté the vegetables, add lentils and water, simmer and blend."},
		{"menemen-classic", "Menemen", "Menemen", "breakfast",
			240, 12, 10, 17, 15,
			"Yumurta, domates, biber, zeytinyağı",
			"Eggs, tomatoes, peppers, olive oil",
			"Biberleri soteleyin, domatesleri ekleyin, yumurtaları kırıp karıştırın.",
			"Sauté the peppers, add tomatoes, crack in the eggs and stir."},
		{"baked-salmon", "Fırında Somon", "Baked Salmon", "dinner",
			360, 32, 4, 23, 30,
			"Somon fileto, limon, zeytinyağı, kekik",
			"Salmon fillet, lemon, olive oil, thyme",
			"Somonu limon ve kekikle marine edip 180°C fırında 20 dakika pişirin.",
			"Marinate the salmon with lemon and thyme, bake 20 minutes at 180°C."},
		{"yogurt-parfait", "Yoğurtlu Meyve Kasesi", "Yogurt Fruit Bowl", "snack",
			210, 10, 30, 6, 5,
			"Yoğurt, muz, elma, bal, badem",
			"Yogurt, banana, apple, honey, almonds",
			"Yoğurdun üzerine doğranmış meyveleri ve bademi ekleyin, bal gezdirin.",
			"Top the yogurt with chopped fruit and almonds, drizzle with honey."},
	}
	stmt := `INSERT INTO recipes (slug, title_tr, title_en, category, calories, protein, carbs, fat,
			prep_minutes, ingredients_tr, ingredients_en, instructions_tr, instructions_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (slug) DO NOTHING`
	for _, r := range recipes {
		if _, err := db.Exec(stmt, r.slug, r.trTitle, r.enTitle, r.cat, r.cal, r.protein, r.carbs, r.fat,
			r.prep, r.ingTR, r.ingEN, r.insTR, r.insEN); err != nil {
			return err
		}
	}
	return nil
}

func seedDietTemplates(db *sql.DB) error {
	type tmpl struct {
		slug, trTitle, enTitle, trDesc, enDesc string
		calories                               float64
		days                                   int
		premium                                bool
	}
	templates := []tmpl{
		{"balanced-1800", "Dengeli Beslenme", "Balanced Diet",
			"Günde 1800 kalorilik dengeli bir plan.", "A balanced plan at 1800 calories a day.",
			1800, 7, false},
		{"low-carb-1500", "Düşük Karbonhidrat", "Low Carb",
			"Karbonhidratı kısıtlı 1500 kalorilik plan.", "A carb-restricted plan at 1500 calories.",
			1500, 7, true},
		{"high-protein-2200", "Yüksek Protein", "High Protein",
			"Kas gelişimi için 2200 kalorilik protein ağırlıklı plan.", "A protein-forward 2200 calorie plan for muscle gain.",
			2200, 7, true},
		{"mediterranean-1900", "Akdeniz Diyeti", "Mediterranean Diet",
			"Zeytinyağı ve sebze ağırlıklı 1900 kalorilik plan.", "An olive-oil and vegetable forward plan at 1900 calories.",
			1900, 7, false},
	}
	stmt := `INSERT INTO diet_templates (slug, title_tr, title_en, description_tr, description_en,
			daily_calories, duration_days, is_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (slug) DO NOTHING`
	for _, t := range templates {
		if _, err := db.Exec(stmt, t.slug, t.trTitle, t.enTitle, t.trDesc, t.enDesc,
			t.calories, t.days, t.premium); err != nil {
			return err
		}
	}
	return nil
}

func seedVitaminTemplates(db *sql.DB) error {
	type tmpl struct {
		slug, tr, en, dosage, timeOfDay string
	}
	templates := []tmpl{
		{"vitamin-d", "D Vitamini", "Vitamin D", "1000 IU", "morning"},
		{"vitamin-c", "C Vitamini", "Vitamin C", "500 mg", "morning"},
		{"vitamin-b12", "B12 Vitamini", "Vitamin B12", "1000 mcg", "morning"},
		{"omega-3", "Omega 3", "Omega 3", "1000 mg", "evening"},
		{"magnesium", "Magnezyum", "Magnesium", "200 mg", "evening"},
		{"zinc", "Çinko", "Zinc", "15 mg", "evening"},
		{"iron", "Demir", "Iron", "18 mg", "morning"},
		{"multivitamin", "Multivitamin", "Multivitamin", "1 tablet", "morning"},
	}
	stmt := `INSERT INTO vitamin_templates (slug, name_tr, name_en, default_dosage, time_of_day)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (slug) DO NOTHING`
	for _, t := range templates {
		if _, err := db.Exec(stmt, t.slug, t.tr, t.en, t.dosage, t.timeOfDay); err != nil {
			return err
		}
	}
	return nil
}
