package models

// BannedTopics are the category-level exclusions a parent can toggle. Enabled
// means excluded from generated content.
type BannedTopics struct {
	DeathIllness  bool `json:"death_illness"`
	Violence      bool `json:"violence"`
	ScaryMonsters bool `json:"scary_monsters"`
}

// Settings is the parent-controlled configuration document.
type Settings struct {
	AdminPIN string `json:"admin_pin"`
	APIKey   string `json:"api_key"`

	// Generation
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
	MaxStoryLength string  `json:"max_story_length"`
	ReadingLevel   string  `json:"reading_level"`

	// Safety
	BannedTopics      BannedTopics `json:"banned_topics"`
	CustomWordFilters []string     `json:"custom_word_filters"`

	// Screen time
	DailyLimitMinutes    int    `json:"daily_limit_minutes"`
	SessionLengthMinutes int    `json:"session_length_minutes"`
	QuietHoursStart      string `json:"quiet_hours_start"`
	QuietHoursEnd        string `json:"quiet_hours_end"`
	CalmTimerMinutes     int    `json:"calm_timer_minutes"`
}

// DefaultSettings is the out-of-the-box configuration: all category
// exclusions on, 20 minutes a day in 10-minute sessions, overnight quiet
// hours.
func DefaultSettings() Settings {
	return Settings{
		AdminPIN:       "1234",
		Model:          "gpt-4o-mini",
		Temperature:    0.7,
		MaxTokens:      500,
		MaxStoryLength: "medium",
		ReadingLevel:   "simple",
		BannedTopics: BannedTopics{
			DeathIllness:  true,
			Violence:      true,
			ScaryMonsters: true,
		},
		CustomWordFilters:    []string{},
		DailyLimitMinutes:    20,
		SessionLengthMinutes: 10,
		QuietHoursStart:      "21:00",
		QuietHoursEnd:        "07:00",
		CalmTimerMinutes:     5,
	}
}

// Normalize fills any missing required field with its default so a partially
// written settings file can never disable the safety machinery.
// DailyLimitMinutes is deliberately left alone: an explicit 0 means the
// parent paused the app entirely.
func (s *Settings) Normalize() {
	defaults := DefaultSettings()

	if s.AdminPIN == "" {
		s.AdminPIN = defaults.AdminPIN
	}
	if s.Model == "" {
		s.Model = defaults.Model
	}
	if s.Temperature <= 0 {
		s.Temperature = defaults.Temperature
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = defaults.MaxTokens
	}
	if s.MaxStoryLength == "" {
		s.MaxStoryLength = defaults.MaxStoryLength
	}
	if s.ReadingLevel == "" {
		s.ReadingLevel = defaults.ReadingLevel
	}
	if s.CustomWordFilters == nil {
		s.CustomWordFilters = []string{}
	}
	if s.SessionLengthMinutes <= 0 {
		s.SessionLengthMinutes = defaults.SessionLengthMinutes
	}
	if s.QuietHoursStart == "" {
		s.QuietHoursStart = defaults.QuietHoursStart
	}
	if s.QuietHoursEnd == "" {
		s.QuietHoursEnd = defaults.QuietHoursEnd
	}
	if s.CalmTimerMinutes <= 0 {
		s.CalmTimerMinutes = defaults.CalmTimerMinutes
	}
}
