package models

// Items below this confidence ask the user to confirm before logging.
const confirmConfidence = 0.7

// FoodItem is one recognized food in an analyzed photo. RangeGrams, when
// present, is the [low, high] bracket around the portion estimate.
type FoodItem struct {
	Name          string    `json:"name"`
	PortionGrams  float64   `json:"portion_grams"`
	RangeGrams    []float64 `json:"range_grams,omitempty"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbs         float64   `json:"carbs"`
	Fat           float64   `json:"fat"`
	ConfidencePct float64   `json:"confidence,omitempty"`
}

// FoodAnalysis is the structured result of a vision analysis call.
type FoodAnalysis struct {
	IsFood            bool       `json:"is_food"`
	Items             []FoodItem `json:"items"`
	TotalCalories     float64    `json:"total_calories"`
	TotalProtein      float64    `json:"total_protein"`
	TotalCarbs        float64    `json:"total_carbs"`
	TotalFat          float64    `json:"total_fat"`
	Questions         []string   `json:"questions"`
	NeedsConfirmation bool       `json:"needs_confirmation"`
	Notes             string     `json:"notes,omitempty"`
	Model             string     `json:"model,omitempty"`
}

// Totals recomputes the aggregate fields from the item list.
func (a *FoodAnalysis) Totals() {
	a.TotalCalories, a.TotalProtein, a.TotalCarbs, a.TotalFat = 0, 0, 0, 0
	for _, it := range a.Items {
		a.TotalCalories += it.Calories
		a.TotalProtein += it.Protein
		a.TotalCarbs += it.Carbs
		a.TotalFat += it.Fat
	}
}

// DeriveConfirmation sets NeedsConfirmation: the model asked a clarifying
// question, or it was unsure about at least one item.
func (a *FoodAnalysis) DeriveConfirmation() {
	a.NeedsConfirmation = len(a.Questions) > 0
	for _, it := range a.Items {
		if it.ConfidencePct < confirmConfidence {
			a.NeedsConfirmation = true
			return
		}
	}
}
