package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"littlestar/internal/models"
	"littlestar/internal/repository"
	"littlestar/internal/service"
	"littlestar/internal/store"
)

// AdminHandler serves the parent dashboard endpoints: PIN login, settings and
// profile editing, the content libraries, usage review and story history.
type AdminHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	store        *store.Store
	history      *repository.HistoryRepository
	tracker      *service.EngagementTracker
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *service.AuthService, emailService *service.EmailService, store *store.Store, history *repository.HistoryRepository, tracker *service.EngagementTracker) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		emailService: emailService,
		store:        store,
		history:      history,
		tracker:      tracker,
	}
}

// Login validates the parent PIN and sets the session cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding login request", err)
		return
	}

	token, err := h.authService.Login(req.PIN)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			respondWithError(w, http.StatusUnauthorized, "Incorrect PIN", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error during login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Logout clears the session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChangePIN updates the parent PIN after verifying the current one.
func (h *AdminHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPIN string `json:"current_pin"`
		NewPIN     string `json:"new_pin"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding PIN change", err)
		return
	}

	if err := h.authService.ChangePIN(req.CurrentPIN, req.NewPIN); err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			respondWithError(w, http.StatusUnauthorized, "Incorrect PIN", "", nil)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error(), "Error changing PIN", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSettings returns the current settings with the PIN redacted.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading settings", err)
		return
	}
	settings.AdminPIN = ""
	settings.APIKey = ""
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings overwrites the settings document. The PIN and API key are
// managed through their own endpoints and preserved here.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var incoming models.Settings
	if err := decodeJSON(r, &incoming); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding settings", err)
		return
	}

	current, err := h.store.Settings()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading settings", err)
		return
	}
	incoming.AdminPIN = current.AdminPIN
	incoming.APIKey = current.APIKey

	if err := h.store.SaveSettings(incoming); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error saving settings", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetProfile returns the child profile.
func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Profile()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading profile", err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile overwrites the child profile.
func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.ChildProfile
	if err := decodeJSON(r, &profile); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding profile", err)
		return
	}
	if profile.Name == "" || profile.Age < 3 || profile.Age > 12 {
		respondWithError(w, http.StatusBadRequest, "Profile needs a name and an age between 3 and 12", "", nil)
		return
	}

	if err := h.store.SaveProfile(profile); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error saving profile", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetAffirmations returns the full affirmation library.
func (h *AdminHandler) GetAffirmations(w http.ResponseWriter, r *http.Request) {
	affirmations, err := h.store.Affirmations()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading affirmations", err)
		return
	}
	respondJSON(w, http.StatusOK, affirmations)
}

// UpdateAffirmations overwrites the affirmation library.
func (h *AdminHandler) UpdateAffirmations(w http.ResponseWriter, r *http.Request) {
	var affirmations models.Affirmations
	if err := decodeJSON(r, &affirmations); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding affirmations", err)
		return
	}
	if err := h.store.SaveAffirmations(affirmations); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error saving affirmations", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetLessons returns the lesson library.
func (h *AdminHandler) GetLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.store.Lessons()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading lessons", err)
		return
	}
	respondJSON(w, http.StatusOK, lessons)
}

// UpdateLessons overwrites the lesson library.
func (h *AdminHandler) UpdateLessons(w http.ResponseWriter, r *http.Request) {
	var lessons []models.Lesson
	if err := decodeJSON(r, &lessons); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding lessons", err)
		return
	}
	if err := h.store.SaveLessons(lessons); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error saving lessons", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetUsage returns the usage ledger.
func (h *AdminHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.store.Usage()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading usage", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"minutes_today": ledger.MinutesOn(time.Now()),
		"days":          ledger,
	})
}

// ResetUsage clears today's usage so the child can continue.
func (h *AdminHandler) ResetUsage(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ResetUsageDay(time.Now()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error resetting usage", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetHistory returns recent stories, newest first.
func (h *AdminHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	stories, err := h.history.RecentStories(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading story history", err)
		return
	}
	respondJSON(w, http.StatusOK, stories)
}

// SendSummary emails the parent today's wins and unlocked strengths.
func (h *AdminHandler) SendSummary(w http.ResponseWriter, r *http.Request) {
	if !h.emailService.IsEnabled() {
		respondWithError(w, http.StatusConflict, "Email is not configured", "", nil)
		return
	}

	now := time.Now()
	snapshot, err := h.tracker.Snapshot(now)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading engagement snapshot", err)
		return
	}
	profile, err := h.store.Profile()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading profile", err)
		return
	}

	if err := h.emailService.SendDailySummary(r.Context(), profile.Name, now, snapshot.WinsToday, snapshot.Strengths); err != nil {
		respondWithError(w, http.StatusBadGateway, "Could not send the summary email", "Error sending summary", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
