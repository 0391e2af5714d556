package contracts

// Goal describes what the user is training toward.
type Goal string

const (
	GoalMuscleGain  Goal = "Muscle Gain"
	GoalWeightLoss  Goal = "Weight Loss"
	GoalMaintenance Goal = "Maintenance"
	GoalEndurance   Goal = "Endurance"
)

// Language is one of the small closed set of supported language codes.
type Language string

const (
	LangEnglish    Language = "en"
	LangSpanish    Language = "es"
	LangFrench     Language = "fr"
	LangGerman     Language = "de"
	LangPortuguese Language = "pt"
)

// SupportedLanguages lists every code a synthesis call accepts.
var SupportedLanguages = []Language{
	LangEnglish, LangSpanish, LangFrench, LangGerman, LangPortuguese,
}

// IsSupported reports whether l belongs to the closed language set.
func (l Language) IsSupported() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable language name embedded in prompts.
func (l Language) DisplayName() string {
	switch l {
	case LangSpanish:
		return "Spanish"
	case LangFrench:
		return "French"
	case LangGerman:
		return "German"
	case LangPortuguese:
		return "Portuguese"
	default:
		return "English"
	}
}

// Coordinates is a WGS84 point used to bias grounded discovery.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GenerationProfile carries the physiological and preference attributes that
// parameterize every synthesis call. It is owned by the caller and read-only
// to the orchestration layer.
type GenerationProfile struct {
	Age               int    `json:"age"`
	WeightKG          int    `json:"weight_kg"`
	HeightCM          int    `json:"height_cm"`
	Goal              Goal   `json:"goal"`
	ActivityLevel     string `json:"activity_level"`
	DietaryPreference string `json:"dietary_preference"`
	Location          string `json:"location"`
	ExperienceLevel   string `json:"experience_level"`
}
