package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/genclient"

	"github.com/rs/zerolog"
)

//go:embed meal_prompt.md
var mealPrompt string

//go:embed workout_prompt.md
var workoutPrompt string

// Planner turns a generation profile into validated meal and workout plans.
// Every invocation regenerates the full plan; structured plans are never
// cached, only media artifacts are.
type Planner struct {
	gen  genclient.StructuredGenerator
	days int
	log  zerolog.Logger
}

// NewPlanner creates a new Planner instance.
func NewPlanner(gen genclient.StructuredGenerator, days int, log zerolog.Logger) *Planner {
	return &Planner{
		gen:  gen,
		days: days,
		log:  log.With().Str("component", "planner").Logger(),
	}
}

type promptData struct {
	Profile  contracts.GenerationProfile
	Language string
	Days     int
}

func (p *Planner) buildPrompt(name, text string, profile contracts.GenerationProfile, lang contracts.Language) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, promptData{
		Profile:  profile,
		Language: lang.DisplayName(),
		Days:     p.days,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SynthesizeMealPlan generates a full meal plan plus prep strategy. Transport
// failures and malformed payloads degrade to the canonical empty result: the
// caller treats an empty plan as "generation unavailable" and may retry.
func (p *Planner) SynthesizeMealPlan(ctx context.Context, profile contracts.GenerationProfile, lang contracts.Language) contracts.MealPlanResult {
	prompt, err := p.buildPrompt("meal", mealPrompt, profile, lang)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to build meal plan prompt")
		return contracts.EmptyMealPlanResult()
	}

	resp, err := p.gen.GenerateJSON(ctx, prompt, MealPlanSchema())
	if err != nil {
		p.log.Error().Err(err).Msg("meal plan generation failed")
		return contracts.EmptyMealPlanResult()
	}

	// Pointer fields distinguish "missing" from "empty"; a payload missing
	// either top-level field is never partially trusted.
	var raw struct {
		Days *[]contracts.DayPlan    `json:"days"`
		Prep *contracts.PrepStrategy `json:"prep_strategy"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &raw); err != nil {
		p.log.Warn().Err(err).Msg("meal plan payload is not valid JSON, degrading to empty result")
		return contracts.EmptyMealPlanResult()
	}
	if raw.Days == nil || raw.Prep == nil || len(*raw.Days) == 0 {
		p.log.Warn().Msg("meal plan payload missing days or prep strategy, degrading to empty result")
		return contracts.EmptyMealPlanResult()
	}

	result := contracts.MealPlanResult{Days: *raw.Days, Prep: *raw.Prep}
	for i := range result.Days {
		sanitizeDay(&result.Days[i])
	}
	if result.Prep.BatchTasks == nil {
		result.Prep.BatchTasks = []string{}
	}
	if result.Prep.StorageTips == nil {
		result.Prep.StorageTips = []string{}
	}
	if result.Prep.ShoppingList == nil {
		result.Prep.ShoppingList = []contracts.ShoppingItem{}
	}

	p.log.Info().Int("days", len(result.Days)).Msg("meal plan synthesized")
	return result
}

// SynthesizeWorkoutPlan generates a workout plan. Failure policy matches
// SynthesizeMealPlan: any parse or shape failure degrades to the canonical
// empty result.
func (p *Planner) SynthesizeWorkoutPlan(ctx context.Context, profile contracts.GenerationProfile, lang contracts.Language) contracts.WorkoutResult {
	prompt, err := p.buildPrompt("workout", workoutPrompt, profile, lang)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to build workout prompt")
		return contracts.EmptyWorkoutResult()
	}

	resp, err := p.gen.GenerateJSON(ctx, prompt, WorkoutSchema())
	if err != nil {
		p.log.Error().Err(err).Msg("workout generation failed")
		return contracts.EmptyWorkoutResult()
	}

	var raw struct {
		Days *[]contracts.WorkoutDay `json:"days"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &raw); err != nil {
		p.log.Warn().Err(err).Msg("workout payload is not valid JSON, degrading to empty result")
		return contracts.EmptyWorkoutResult()
	}
	if raw.Days == nil || len(*raw.Days) == 0 {
		p.log.Warn().Msg("workout payload missing days, degrading to empty result")
		return contracts.EmptyWorkoutResult()
	}

	result := contracts.WorkoutResult{Days: *raw.Days}
	for i := range result.Days {
		for j := range result.Days[i].Exercises {
			if result.Days[i].Exercises[j].Sets < 0 {
				result.Days[i].Exercises[j].Sets = 0
			}
		}
	}

	p.log.Info().Int("days", len(result.Days)).Msg("workout plan synthesized")
	return result
}

// sanitizeDay clamps every macro field to a non-negative number.
func sanitizeDay(d *contracts.DayPlan) {
	clampMeal(&d.Breakfast)
	clampMeal(&d.Lunch)
	clampMeal(&d.Dinner)
	for i := range d.Snacks {
		clampMeal(&d.Snacks[i])
	}
}

func clampMeal(m *contracts.Meal) {
	if m.Calories < 0 {
		m.Calories = 0
	}
	if m.Protein < 0 {
		m.Protein = 0
	}
	if m.Carbs < 0 {
		m.Carbs = 0
	}
	if m.Fats < 0 {
		m.Fats = 0
	}
}
