package app

import (
	"context"
	"errors"
	"fmt"

	"ai-fitness-coach/internal/artifactcache"
	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/images"
	"ai-fitness-coach/internal/media"
	"ai-fitness-coach/internal/planner"
	"ai-fitness-coach/internal/venues"

	"github.com/rs/zerolog"
)

// Input constraint failures surfaced to the presentation layer. These are
// the only errors the structured flows raise; generation failures degrade
// to empty results instead.
var (
	ErrUnsupportedLanguage = errors.New("language is not one of the supported codes")
	ErrMissingGoal         = errors.New("profile does not carry a goal")
	ErrMissingExperience   = errors.New("profile does not carry an experience level")
)

// App wires the orchestration layer together: structured plan synthesis,
// grounded venue discovery, and the cached media pipelines.
type App struct {
	planner  *planner.Planner
	venues   *venues.Resolver
	images   *images.Pipeline
	media    *media.Manager
	artCache *artifactcache.Cache
	log      zerolog.Logger
}

// NewApp creates and initializes a new App instance.
func NewApp(
	mealPlanner *planner.Planner,
	venueResolver *venues.Resolver,
	imagePipeline *images.Pipeline,
	mediaManager *media.Manager,
	artCache *artifactcache.Cache,
	log zerolog.Logger,
) *App {
	return &App{
		planner:  mealPlanner,
		venues:   venueResolver,
		images:   imagePipeline,
		media:    mediaManager,
		artCache: artCache,
		log:      log.With().Str("component", "app").Logger(),
	}
}

// GenerateMealPlan synthesizes a full meal plan for the profile. An empty
// result means generation was unavailable; the caller may retry.
func (a *App) GenerateMealPlan(ctx context.Context, profile contracts.GenerationProfile, lang contracts.Language) (contracts.MealPlanResult, error) {
	if !lang.IsSupported() {
		return contracts.EmptyMealPlanResult(), ErrUnsupportedLanguage
	}
	if profile.Goal == "" {
		return contracts.EmptyMealPlanResult(), ErrMissingGoal
	}
	return a.planner.SynthesizeMealPlan(ctx, profile, lang), nil
}

// GenerateWorkoutPlan synthesizes a workout plan for the profile.
func (a *App) GenerateWorkoutPlan(ctx context.Context, profile contracts.GenerationProfile, lang contracts.Language) (contracts.WorkoutResult, error) {
	if !lang.IsSupported() {
		return contracts.EmptyWorkoutResult(), ErrUnsupportedLanguage
	}
	if profile.Goal == "" {
		return contracts.EmptyWorkoutResult(), ErrMissingGoal
	}
	if profile.ExperienceLevel == "" {
		return contracts.EmptyWorkoutResult(), ErrMissingExperience
	}
	return a.planner.SynthesizeWorkoutPlan(ctx, profile, lang), nil
}

// FindVenues resolves fitness venues near the given free-text location.
func (a *App) FindVenues(ctx context.Context, locationText string, goal contracts.Goal, lang contracts.Language, coords *contracts.Coordinates) ([]contracts.Venue, error) {
	if !lang.IsSupported() {
		return nil, ErrUnsupportedLanguage
	}
	return a.venues.ResolveVenues(ctx, locationText, goal, lang, coords), nil
}

// MealImage returns the illustrative image locator for a meal, generating it
// at most once per session.
func (a *App) MealImage(ctx context.Context, mealName string) (string, error) {
	return a.artCache.GetOrCreate(ctx, mealName, func(ctx context.Context) (string, error) {
		return a.images.SynthesizeImage(ctx, mealName)
	})
}

// ExerciseVideo returns the demonstration video locator for an exercise,
// generating it at most once per session. onProgress receives narration
// while the synthesis job runs.
func (a *App) ExerciseVideo(ctx context.Context, exerciseName string, onProgress media.ProgressFunc) (string, error) {
	return a.artCache.GetOrCreate(ctx, exerciseName, func(ctx context.Context) (string, error) {
		op, err := a.media.Submit(ctx, exerciseName, onProgress)
		if err != nil {
			return "", err
		}
		return op.Wait(ctx)
	})
}

// EditMealImage applies an edit instruction to a meal's cached image,
// replaces the cache entry, and propagates the new locator to every
// occurrence of the meal across the plan.
func (a *App) EditMealImage(ctx context.Context, plan *contracts.MealPlanResult, mealName, instruction string) (string, error) {
	current, ok := a.artCache.Lookup(mealName)
	if !ok || current == "" {
		return "", fmt.Errorf("no image cached for meal %q", mealName)
	}

	edited, err := a.images.EditImage(ctx, current, instruction)
	if err != nil {
		return "", err
	}

	a.artCache.Replace(mealName, edited)
	if plan != nil {
		propagateMealImage(plan, mealName, edited)
	}
	return edited, nil
}

// AttachMealImages fills ImageURL for every meal in the plan, reusing
// cached artifacts where they exist. Meals whose visuals remain
// unavailable keep an empty locator.
func (a *App) AttachMealImages(ctx context.Context, plan *contracts.MealPlanResult) {
	for i := range plan.Days {
		day := &plan.Days[i]
		for _, m := range []*contracts.Meal{&day.Breakfast, &day.Lunch, &day.Dinner} {
			a.attachImage(ctx, m)
		}
		for j := range day.Snacks {
			a.attachImage(ctx, &day.Snacks[j])
		}
	}
}

func (a *App) attachImage(ctx context.Context, m *contracts.Meal) {
	locator, err := a.MealImage(ctx, m.Name)
	if err != nil {
		a.log.Warn().Err(err).Str("meal", m.Name).Msg("could not attach meal image")
		return
	}
	m.ImageURL = locator
}

func propagateMealImage(plan *contracts.MealPlanResult, mealName, locator string) {
	for i := range plan.Days {
		day := &plan.Days[i]
		for _, m := range []*contracts.Meal{&day.Breakfast, &day.Lunch, &day.Dinner} {
			if m.Name == mealName {
				m.ImageURL = locator
			}
		}
		for j := range day.Snacks {
			if day.Snacks[j].Name == mealName {
				day.Snacks[j].ImageURL = locator
			}
		}
	}
}
