package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ai-fitness-coach/internal/app"
	"ai-fitness-coach/internal/artifactcache"
	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/contracts"
	"ai-fitness-coach/internal/genclient"
	"ai-fitness-coach/internal/images"
	"ai-fitness-coach/internal/media"
	"ai-fitness-coach/internal/planner"
	"ai-fitness-coach/internal/storage"
	"ai-fitness-coach/internal/venues"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	geminiClient, err := genclient.NewGeminiClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Gemini client")
	}
	defer geminiClient.Close()

	restClient := genclient.NewRESTClient(cfg, log)

	planStore, err := storage.NewPlanStore(cfg.ArtifactStoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize plan store")
	}

	application := app.NewApp(
		planner.NewPlanner(geminiClient, cfg.PlanDays, log),
		venues.NewResolver(restClient, geminiClient, log),
		images.NewPipeline(restClient, log),
		media.NewManager(restClient, cfg.PollInterval, cfg.MaxPolls, log),
		artifactcache.New(log),
		log,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "meal-plan":
		cmd := flag.NewFlagSet("meal-plan", flag.ExitOnError)
		lang := cmd.String("lang", "en", "Language code for the plan")
		withImages := cmd.Bool("images", false, "Also generate meal images")
		cmd.Parse(os.Args[2:])

		plan, err := application.GenerateMealPlan(ctx, demoProfile(), contracts.Language(*lang))
		if err != nil {
			log.Fatal().Err(err).Msg("meal plan request rejected")
		}
		if plan.IsEmpty() {
			fmt.Println("Meal plan is currently unavailable, you may retry.")
			return
		}
		if *withImages {
			application.AttachMealImages(ctx, &plan)
		}
		if err := planStore.SaveMealPlan("latest", plan); err != nil {
			log.Warn().Err(err).Msg("failed to persist meal plan")
		}
		printMealPlan(plan)

	case "workout-plan":
		cmd := flag.NewFlagSet("workout-plan", flag.ExitOnError)
		lang := cmd.String("lang", "en", "Language code for the plan")
		cmd.Parse(os.Args[2:])

		plan, err := application.GenerateWorkoutPlan(ctx, demoProfile(), contracts.Language(*lang))
		if err != nil {
			log.Fatal().Err(err).Msg("workout plan request rejected")
		}
		if len(plan.Days) == 0 {
			fmt.Println("Workout plan is currently unavailable, you may retry.")
			return
		}
		if err := planStore.SaveWorkout("latest", plan); err != nil {
			log.Warn().Err(err).Msg("failed to persist workout plan")
		}
		printWorkoutPlan(plan)

	case "venues":
		cmd := flag.NewFlagSet("venues", flag.ExitOnError)
		location := cmd.String("location", "", "Free-text location to search around")
		lang := cmd.String("lang", "en", "Language code for the results")
		cmd.Parse(os.Args[2:])
		if *location == "" {
			fmt.Println("venues requires -location")
			os.Exit(1)
		}

		found, err := application.FindVenues(ctx, *location, demoProfile().Goal, contracts.Language(*lang), nil)
		if err != nil {
			log.Fatal().Err(err).Msg("venue request rejected")
		}
		printVenues(found)

	case "image":
		cmd := flag.NewFlagSet("image", flag.ExitOnError)
		subject := cmd.String("subject", "", "Meal name to illustrate")
		cmd.Parse(os.Args[2:])
		if *subject == "" {
			fmt.Println("image requires -subject")
			os.Exit(1)
		}

		locator, err := application.MealImage(ctx, *subject)
		if err != nil {
			log.Fatal().Err(err).Msg("image generation failed")
		}
		if locator == "" {
			fmt.Println("Image is currently unavailable, you may retry.")
			return
		}
		fmt.Printf("Generated image for %q (%d bytes of locator)\n", *subject, len(locator))

	case "video":
		cmd := flag.NewFlagSet("video", flag.ExitOnError)
		subject := cmd.String("subject", "", "Exercise name to demonstrate")
		cmd.Parse(os.Args[2:])
		if *subject == "" {
			fmt.Println("video requires -subject")
			os.Exit(1)
		}

		locator, err := application.ExerciseVideo(ctx, *subject, func(msg string) {
			fmt.Println(msg)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("video generation failed")
		}
		fmt.Printf("Video for %q: %s\n", *subject, locator)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// demoProfile is the stand-in profile the CLI uses; a real deployment pulls
// this from the user store.
func demoProfile() contracts.GenerationProfile {
	return contracts.GenerationProfile{
		Age:               30,
		WeightKG:          80,
		HeightCM:          180,
		Goal:              contracts.GoalMuscleGain,
		ActivityLevel:     "Moderate",
		DietaryPreference: "No restrictions",
		Location:          "Lisbon",
		ExperienceLevel:   "Intermediate",
	}
}

func printMealPlan(plan contracts.MealPlanResult) {
	fmt.Println("\n=== MEAL PLAN ===")
	for _, day := range plan.Days {
		fmt.Printf("\n%s\n", day.Day)
		for _, entry := range []struct {
			label string
			meal  contracts.Meal
		}{
			{"Breakfast", day.Breakfast},
			{"Lunch", day.Lunch},
			{"Dinner", day.Dinner},
		} {
			fmt.Printf("  %-10s %s (%.0f kcal, P%.0f/C%.0f/F%.0f)\n",
				entry.label+":", entry.meal.Name, entry.meal.Calories, entry.meal.Protein, entry.meal.Carbs, entry.meal.Fats)
		}
		for _, snack := range day.Snacks {
			fmt.Printf("  %-10s %s (%.0f kcal)\n", "Snack:", snack.Name, snack.Calories)
		}
	}

	fmt.Println("\n=== SHOPPING LIST ===")
	for _, item := range plan.Prep.ShoppingList {
		fmt.Printf("- %s (%s, %s)\n", item.Item, item.Amount, item.Category)
	}
}

func printWorkoutPlan(plan contracts.WorkoutResult) {
	fmt.Println("\n=== WORKOUT PLAN ===")
	for _, day := range plan.Days {
		fmt.Printf("\n%s | %s (%s)\n", day.Title, day.Focus, day.Duration)
		for _, ex := range day.Exercises {
			fmt.Printf("  %s: %d x %s [%s]\n", ex.Name, ex.Sets, ex.Reps, ex.Intensity)
		}
	}
}

func printVenues(found []contracts.Venue) {
	if len(found) == 0 {
		fmt.Println("No venues found, you may retry.")
		return
	}
	fmt.Println("\n=== VENUES ===")
	for _, v := range found {
		fmt.Printf("- %s (%.1f★, %.1f km) %s\n", v.Name, v.Rating, v.Distance, v.Address)
		for _, s := range v.Sources {
			fmt.Printf("    source: %s\n", s.URI)
		}
	}
}

func printUsage() {
	fmt.Println("Usage: ai-fitness-coach <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  meal-plan      Generate a meal plan with prep strategy")
	fmt.Println("  workout-plan   Generate a workout plan")
	fmt.Println("  venues         Discover fitness venues near a location")
	fmt.Println("  image          Generate an illustrative meal image")
	fmt.Println("  video          Generate an exercise demonstration video")
}
