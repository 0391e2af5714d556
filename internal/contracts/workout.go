package contracts

// Intensity grades how hard an exercise should feel.
type Intensity string

const (
	IntensityLight    Intensity = "Light"
	IntensityModerate Intensity = "Moderate"
	IntensityHard     Intensity = "Hard"
	IntensityMax      Intensity = "Max"
)

// Exercise is a single movement inside a workout day. Name doubles as the
// logical cache key for the exercise's demonstration video.
type Exercise struct {
	Name          string    `json:"name"`
	Sets          int       `json:"sets"`
	Reps          string    `json:"reps"`
	TargetMuscles []string  `json:"target_muscles"`
	Cue           string    `json:"cue"`
	Description   string    `json:"description"`
	Intensity     Intensity `json:"intensity"`
	VideoURL      string    `json:"video_url,omitempty"`
}

// WorkoutDay is one day of a workout plan.
type WorkoutDay struct {
	Title     string     `json:"title"`
	Focus     string     `json:"focus"`
	Duration  string     `json:"duration"`
	Exercises []Exercise `json:"exercises"`
}

// WorkoutResult is the full outcome of one workout-plan synthesis. An empty
// Days slice is the canonical "generation unavailable" value.
type WorkoutResult struct {
	Days []WorkoutDay `json:"days"`
}

// EmptyWorkoutResult returns the canonical degraded result.
func EmptyWorkoutResult() WorkoutResult {
	return WorkoutResult{Days: []WorkoutDay{}}
}
