package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ai-fitness-coach/internal/contracts"
)

// PlanStore provides file-based persistence for produced plans and artifact
// locators. It is the external key-value collaborator of the orchestration
// layer: the layer only produces values, the store outlives the session.
type PlanStore struct {
	basePath string
}

// NewPlanStore creates a new PlanStore and ensures the base directory exists.
func NewPlanStore(basePath string) (*PlanStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &PlanStore{basePath: basePath}, nil
}

// sanitizeKey makes a logical key safe for filenames.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(":", "-", "/", "-", " ", "_")
	return replacer.Replace(key)
}

func (s *PlanStore) path(kind, key string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s_%s.json", kind, sanitizeKey(key)))
}

// SaveMealPlan stores a meal plan under the given key.
func (s *PlanStore) SaveMealPlan(key string, plan contracts.MealPlanResult) error {
	return s.save("mealplan", key, plan)
}

// LoadMealPlan retrieves a previously stored meal plan.
func (s *PlanStore) LoadMealPlan(key string) (*contracts.MealPlanResult, error) {
	var plan contracts.MealPlanResult
	if err := s.load("mealplan", key, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SaveWorkout stores a workout plan under the given key.
func (s *PlanStore) SaveWorkout(key string, plan contracts.WorkoutResult) error {
	return s.save("workout", key, plan)
}

// LoadWorkout retrieves a previously stored workout plan.
func (s *PlanStore) LoadWorkout(key string) (*contracts.WorkoutResult, error) {
	var plan contracts.WorkoutResult
	if err := s.load("workout", key, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// SaveLocators persists the session's artifact locators so domain objects
// that embed them survive a reload.
func (s *PlanStore) SaveLocators(key string, locators map[string]string) error {
	return s.save("locators", key, locators)
}

// LoadLocators retrieves previously persisted artifact locators.
func (s *PlanStore) LoadLocators(key string) (map[string]string, error) {
	locators := make(map[string]string)
	if err := s.load("locators", key, &locators); err != nil {
		return nil, err
	}
	return locators, nil
}

// Exists checks whether a value of the given kind is stored under key.
func (s *PlanStore) Exists(kind, key string) bool {
	_, err := os.Stat(s.path(kind, key))
	return !os.IsNotExist(err)
}

func (s *PlanStore) save(kind, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	if err := os.WriteFile(s.path(kind, key), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", kind, err)
	}
	return nil
}

func (s *PlanStore) load(kind, key string, v any) error {
	data, err := os.ReadFile(s.path(kind, key))
	if err != nil {
		return fmt.Errorf("failed to read %s file: %w", kind, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}
	return nil
}
