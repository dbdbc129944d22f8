package handlers

import (
	"log"
	"net/http"

	"littlestar/internal/models"
	"littlestar/internal/service"
	"littlestar/internal/store"
)

// ChildHandler serves the child-facing endpoints. Everything here returns
// child-safe messages; technical detail goes to the log only.
type ChildHandler struct {
	sessions *service.SessionOrchestrator
	store    *store.Store
}

// NewChildHandler creates a new child handler
func NewChildHandler(sessions *service.SessionOrchestrator, store *store.Store) *ChildHandler {
	return &ChildHandler{
		sessions: sessions,
		store:    store,
	}
}

// activityRequest is the body for activity endpoints. All fields optional;
// each activity kind reads only its own.
type activityRequest struct {
	Length        string `json:"length,omitempty"`
	Topic         string `json:"topic,omitempty"`
	Tone          string `json:"tone,omitempty"`
	Feeling       string `json:"feeling,omitempty"`
	CharacterName string `json:"character_name,omitempty"`
	Question      string `json:"question,omitempty"`
	TimeOfDay     string `json:"time_of_day,omitempty"`
}

type activityResponse struct {
	Status     string                    `json:"status"`
	Text       string                    `json:"text,omitempty"`
	Message    string                    `json:"message,omitempty"`
	StoryID    string                    `json:"story_id,omitempty"`
	Engagement models.EngagementSnapshot `json:"engagement,omitempty"`
}

// Enter checks the usage gate and charges one session of minutes.
func (h *ChildHandler) Enter(w http.ResponseWriter, r *http.Request) {
	decision, err := h.sessions.EnterChildMode()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error entering child mode", err)
		return
	}

	if !decision.Allowed {
		respondJSON(w, http.StatusForbidden, map[string]string{
			"status": "denied",
			"reason": string(decision.Reason),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Activity runs one activity end to end. The kind comes from the path.
func (h *ChildHandler) Activity(w http.ResponseWriter, r *http.Request) {
	kind := models.ActivityKind(r.PathValue("kind"))
	if !kind.Valid() {
		respondWithError(w, http.StatusNotFound, "Unknown activity", "", nil)
		return
	}

	var req activityRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request", "Error decoding activity request", err)
			return
		}
	}

	result, err := h.sessions.Perform(r.Context(), kind, service.Options{
		Length:        req.Length,
		Topic:         req.Topic,
		Tone:          req.Tone,
		Feeling:       req.Feeling,
		CharacterName: req.CharacterName,
		Question:      req.Question,
		TimeOfDay:     req.TimeOfDay,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error performing activity", err)
		return
	}

	status := http.StatusOK
	if result.Status == service.StatusDenied {
		status = http.StatusForbidden
	}
	respondJSON(w, status, activityResponse{
		Status:     string(result.Status),
		Text:       result.Text,
		Message:    result.Message,
		StoryID:    result.StoryID,
		Engagement: result.Engagement,
	})
}

// Progress returns today's wins and unlocked strengths.
func (h *ChildHandler) Progress(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.sessions.Progress()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading progress", err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// Affirmations returns the static affirmation library for a feeling, used by
// the feelings picker before (or instead of) a generated response.
func (h *ChildHandler) Affirmations(w http.ResponseWriter, r *http.Request) {
	affirmations, err := h.store.Affirmations()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading affirmations", err)
		return
	}

	feeling := r.URL.Query().Get("feeling")
	if feeling == "" {
		respondJSON(w, http.StatusOK, affirmations)
		return
	}
	lines, ok := affirmations[feeling]
	if !ok {
		lines = affirmations["other"]
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"feeling":      feeling,
		"affirmations": lines,
	})
}

// Lessons returns the lesson library for the lesson picker.
func (h *ChildHandler) Lessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.store.Lessons()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Error loading lessons", err)
		return
	}
	respondJSON(w, http.StatusOK, lessons)
}

// ReadAloud synthesizes speech for text the child already received.
func (h *ChildHandler) ReadAloud(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Nothing to read", "Error decoding read-aloud request", err)
		return
	}

	audio, err := h.sessions.ReadAloud(r.Context(), req.Text)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Reading aloud isn't working right now", "Error synthesizing speech", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("Error writing audio response: %v", err)
	}
}
