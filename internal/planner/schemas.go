package planner

import "github.com/google/generative-ai-go/genai"

// Response schemas handed to the backend with every structured call. They
// mirror the contracts types field for field; anything the backend returns
// outside these shapes is rejected by validation.

func mealSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":         {Type: genai.TypeString},
			"calories":     {Type: genai.TypeNumber},
			"protein":      {Type: genai.TypeNumber},
			"carbs":        {Type: genai.TypeNumber},
			"fats":         {Type: genai.TypeNumber},
			"ingredients":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"instructions": {Type: genai.TypeString},
			"prep_time":    {Type: genai.TypeString},
			"substitution": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"product": {Type: genai.TypeString},
					"benefit": {Type: genai.TypeString},
					"usage":   {Type: genai.TypeString},
				},
				Required: []string{"product", "benefit", "usage"},
			},
		},
		Required: []string{"name", "calories", "protein", "carbs", "fats", "ingredients", "instructions", "prep_time"},
	}
}

// MealPlanSchema is the output schema for a full meal-plan synthesis call.
func MealPlanSchema() *genai.Schema {
	meal := mealSchema()
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"days": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":       {Type: genai.TypeString},
						"breakfast": meal,
						"lunch":     meal,
						"dinner":    meal,
						"snacks":    {Type: genai.TypeArray, Items: meal},
						"supplements": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"product": {Type: genai.TypeString},
									"timing":  {Type: genai.TypeString},
									"purpose": {Type: genai.TypeString},
								},
								Required: []string{"product", "timing", "purpose"},
							},
						},
					},
					Required: []string{"day", "breakfast", "lunch", "dinner", "snacks", "supplements"},
				},
			},
			"prep_strategy": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"batch_tasks":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"storage_tips": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"shopping_list": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"item":     {Type: genai.TypeString},
								"amount":   {Type: genai.TypeString},
								"category": {Type: genai.TypeString},
							},
							Required: []string{"item", "amount", "category"},
						},
					},
				},
				Required: []string{"batch_tasks", "storage_tips", "shopping_list"},
			},
		},
		Required: []string{"days", "prep_strategy"},
	}
}

// WorkoutSchema is the output schema for a workout-plan synthesis call.
func WorkoutSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"days": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":    {Type: genai.TypeString},
						"focus":    {Type: genai.TypeString},
						"duration": {Type: genai.TypeString},
						"exercises": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"name":           {Type: genai.TypeString},
									"sets":           {Type: genai.TypeInteger},
									"reps":           {Type: genai.TypeString},
									"target_muscles": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
									"cue":            {Type: genai.TypeString},
									"description":    {Type: genai.TypeString},
									"intensity": {
										Type: genai.TypeString,
										Enum: []string{"Light", "Moderate", "Hard", "Max"},
									},
								},
								Required: []string{"name", "sets", "reps", "target_muscles", "cue", "description", "intensity"},
							},
						},
					},
					Required: []string{"title", "focus", "duration", "exercises"},
				},
			},
		},
		Required: []string{"days"},
	}
}
