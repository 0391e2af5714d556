package contracts

// Substitution suggests one optional product swap for a meal.
type Substitution struct {
	Product string `json:"product"`
	Benefit string `json:"benefit"`
	Usage   string `json:"usage"`
}

// Meal is a single named meal with its macros and preparation details.
// Name doubles as the logical cache key for the meal's visual asset, so it
// must be unique within a single day's meal set.
type Meal struct {
	Name         string        `json:"name"`
	Calories     float64       `json:"calories"`
	Protein      float64       `json:"protein"`
	Carbs        float64       `json:"carbs"`
	Fats         float64       `json:"fats"`
	Ingredients  []string      `json:"ingredients"`
	Instructions string        `json:"instructions"`
	PrepTime     string        `json:"prep_time"`
	ImageURL     string        `json:"image_url,omitempty"`
	Substitution *Substitution `json:"substitution,omitempty"`
}

// Supplement is one supplement entry for a day.
type Supplement struct {
	Product string `json:"product"`
	Timing  string `json:"timing"`
	Purpose string `json:"purpose"`
}

// DayPlan covers one full day of eating.
type DayPlan struct {
	Day         string       `json:"day"`
	Breakfast   Meal         `json:"breakfast"`
	Lunch       Meal         `json:"lunch"`
	Dinner      Meal         `json:"dinner"`
	Snacks      []Meal       `json:"snacks"`
	Supplements []Supplement `json:"supplements"`
}

// ShoppingItem is one line of the consolidated shopping list.
type ShoppingItem struct {
	Item     string `json:"item"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// PrepStrategy holds batch-prep guidance produced in the same synthesis call
// as the meal plan. The two are one atomic result: a plan without a prep
// strategy is a generation failure, not a partial success.
type PrepStrategy struct {
	BatchTasks   []string       `json:"batch_tasks"`
	StorageTips  []string       `json:"storage_tips"`
	ShoppingList []ShoppingItem `json:"shopping_list"`
}

// MealPlanResult is the full outcome of one meal-plan synthesis. Day order is
// insertion order. An empty Days slice together with empty PrepStrategy
// arrays is the canonical "generation unavailable" value; callers may retry.
type MealPlanResult struct {
	Days []DayPlan    `json:"days"`
	Prep PrepStrategy `json:"prep_strategy"`
}

// EmptyMealPlanResult returns the canonical degraded result used whenever the
// backend payload cannot be trusted.
func EmptyMealPlanResult() MealPlanResult {
	return MealPlanResult{
		Days: []DayPlan{},
		Prep: PrepStrategy{
			BatchTasks:   []string{},
			StorageTips:  []string{},
			ShoppingList: []ShoppingItem{},
		},
	}
}

// IsEmpty reports whether r is the canonical empty result.
func (r MealPlanResult) IsEmpty() bool {
	return len(r.Days) == 0
}
