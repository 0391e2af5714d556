package acceptance_tests

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-fitness-coach/internal/app"
	"ai-fitness-coach/internal/artifactcache"
	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/genclient"
	"ai-fitness-coach/internal/images"
	"ai-fitness-coach/internal/media"
	"ai-fitness-coach/internal/planner"
	"ai-fitness-coach/internal/venues"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
)

// --- Mock structured generator ---

const mealPayload = `{
	"days": [
		{
			"day": "Day 1",
			"breakfast": {"name": "Oatmeal", "calories": 450, "protein": 25, "carbs": 60, "fats": 12, "ingredients": ["oats"], "instructions": "Cook.", "prep_time": "10 min"},
			"lunch": {"name": "Grilled Salmon", "calories": 650, "protein": 45, "carbs": 40, "fats": 20, "ingredients": ["salmon"], "instructions": "Grill.", "prep_time": "20 min"},
			"dinner": {"name": "Chicken Rice", "calories": 700, "protein": 50, "carbs": 70, "fats": 15, "ingredients": ["chicken"], "instructions": "Cook.", "prep_time": "25 min"},
			"snacks": [],
			"supplements": []
		},
		{
			"day": "Day 2",
			"breakfast": {"name": "Oatmeal", "calories": 450, "protein": 25, "carbs": 60, "fats": 12, "ingredients": ["oats"], "instructions": "Cook.", "prep_time": "10 min"},
			"lunch": {"name": "Turkey Wrap", "calories": 550, "protein": 40, "carbs": 45, "fats": 18, "ingredients": ["turkey"], "instructions": "Wrap.", "prep_time": "10 min"},
			"dinner": {"name": "Grilled Salmon", "calories": 650, "protein": 45, "carbs": 40, "fats": 20, "ingredients": ["salmon"], "instructions": "Grill.", "prep_time": "20 min"},
			"snacks": [],
			"supplements": []
		}
	],
	"prep_strategy": {
		"batch_tasks": ["Batch cook oats"],
		"storage_tips": ["Refrigerate salmon"],
		"shopping_list": [{"item": "Salmon", "amount": "1.2kg", "category": "Fish"}]
	}
}`

type mockGenerator struct{}

func (m *mockGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (genclient.StructuredResponse, error) {
	return genclient.StructuredResponse{Text: mealPayload}, nil
}

type mockDiscovery struct{}

func (m *mockDiscovery) DiscoverGrounded(ctx context.Context, prompt string, coords *contracts.Coordinates) (genclient.GroundedAnswer, error) {
	return genclient.GroundedAnswer{Text: "gyms nearby"}, nil
}

type mockImageGenerator struct {
	mu    sync.Mutex
	calls int
}

func (m *mockImageGenerator) GenerateImage(ctx context.Context, prompt string) (genclient.InlineImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return genclient.InlineImage{MIMEType: "image/png", Data: []byte(prompt)}, nil
}

func (m *mockImageGenerator) EditImage(ctx context.Context, img genclient.InlineImage, instruction string) (genclient.InlineImage, error) {
	return genclient.InlineImage{MIMEType: "image/png", Data: []byte("edited")}, nil
}

type mockJobClient struct{}

func (m *mockJobClient) SubmitVideoJob(ctx context.Context, prompt string) (string, error) {
	return "models/veo/operations/op", nil
}

func (m *mockJobClient) PollVideoJob(ctx context.Context, jobName string) (genclient.VideoJobStatus, error) {
	return genclient.VideoJobStatus{Done: true, ArtifactURI: "https://videos.example/clip.mp4"}, nil
}

func (m *mockJobClient) SignArtifactURI(uri string) string {
	return uri + "?key=test"
}

// --- Acceptance test ---

func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	gen := &mockGenerator{}
	imgGen := &mockImageGenerator{}

	application := app.NewApp(
		planner.NewPlanner(gen, 2, log),
		venues.NewResolver(&mockDiscovery{}, gen, log),
		images.NewPipeline(imgGen, log),
		media.NewManager(&mockJobClient{}, time.Millisecond, 10, log),
		artifactcache.New(log),
		log,
	)

	profile := contracts.GenerationProfile{
		Age: 30, WeightKG: 85, Goal: contracts.GoalMuscleGain,
		ActivityLevel: "High", ExperienceLevel: "Intermediate",
	}

	// --- Step 1: Plan synthesis ---
	t.Log("--- Step 1: Generating Meal Plan ---")
	plan, err := application.GenerateMealPlan(ctx, profile, contracts.LangEnglish)
	if err != nil {
		t.Fatalf("Meal plan generation failed: %v", err)
	}
	if len(plan.Days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(plan.Days))
	}
	if len(plan.Prep.ShoppingList) != 1 {
		t.Fatalf("Expected prep strategy with shopping list, got %+v", plan.Prep)
	}

	// --- Step 2: Attach images, deduplicating repeated meals ---
	t.Log("--- Step 2: Attaching Meal Images ---")
	application.AttachMealImages(ctx, &plan)

	for _, day := range plan.Days {
		for _, meal := range []contracts.Meal{day.Breakfast, day.Lunch, day.Dinner} {
			if !strings.HasPrefix(meal.ImageURL, "data:image/png;base64,") {
				t.Errorf("Expected data URI for %q, got %q", meal.Name, meal.ImageURL)
			}
		}
	}

	// Four distinct meal names across six slots: four generation calls.
	if imgGen.calls != 4 {
		t.Errorf("Expected 4 image generation calls for 4 unique meals, got %d", imgGen.calls)
	}

	// Repeated meals share the identical locator.
	if plan.Days[0].Breakfast.ImageURL != plan.Days[1].Breakfast.ImageURL {
		t.Error("Expected repeated Oatmeal to reuse the cached image")
	}
	if plan.Days[0].Lunch.ImageURL != plan.Days[1].Dinner.ImageURL {
		t.Error("Expected repeated Grilled Salmon to reuse the cached image")
	}

	// --- Step 3: Edit propagates across every occurrence ---
	t.Log("--- Step 3: Editing a Meal Image ---")
	edited, err := application.EditMealImage(ctx, &plan, "Grilled Salmon", "plate it on slate")
	if err != nil {
		t.Fatalf("Image edit failed: %v", err)
	}
	if plan.Days[0].Lunch.ImageURL != edited || plan.Days[1].Dinner.ImageURL != edited {
		t.Error("Expected edit to propagate to every Grilled Salmon occurrence")
	}
	if plan.Days[0].Breakfast.ImageURL == edited {
		t.Error("Expected other meals untouched by the edit")
	}

	// --- Step 4: Video flow with narrated progress ---
	t.Log("--- Step 4: Generating an Exercise Video ---")
	var progress []string
	var mu sync.Mutex
	locator, err := application.ExerciseVideo(ctx, "Bench Press", func(msg string) {
		mu.Lock()
		progress = append(progress, msg)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Video generation failed: %v", err)
	}
	if locator != "https://videos.example/clip.mp4?key=test" {
		t.Errorf("Unexpected video locator: %q", locator)
	}
	mu.Lock()
	if len(progress) < 2 {
		t.Errorf("Expected narrated progress, got %v", progress)
	}
	mu.Unlock()
}
