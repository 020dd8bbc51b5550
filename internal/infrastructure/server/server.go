package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/infrastructure/config"
	"github.com/Jepennn/Lexa/internal/repository"
)

// Server is the JSON surface the popup and side-panel contexts talk to:
// dictionaries, entries and settings. Rendering stays with the clients.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *logrus.Logger

	store    repository.EntryStore
	settings repository.Settings
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logrus.Logger, store repository.EntryStore, settings repository.Settings) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		store:    store,
		settings: settings,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dictionaries", s.listDictionaries)
	mux.HandleFunc("POST /api/dictionaries", s.createDictionary)
	mux.HandleFunc("DELETE /api/dictionaries/{id}", s.deleteDictionary)
	mux.HandleFunc("GET /api/dictionaries/{id}/entries", s.listEntries)
	mux.HandleFunc("POST /api/dictionaries/{id}/entries", s.addEntry)
	mux.HandleFunc("DELETE /api/dictionaries/{id}/entries/{entryID}", s.deleteEntry)
	mux.HandleFunc("GET /api/settings", s.getSettings)
	mux.HandleFunc("PUT /api/settings", s.putSettings)
	mux.HandleFunc("POST /api/settings/onboarding", s.markOnboardingSeen)

	handler := Logger()(cors.AllowAll().Handler(mux))

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// StartHTTP starts the HTTP server
func (s *Server) StartHTTP() error {
	s.logger.Infof("HTTP server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type dictionaryPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type entryPayload struct {
	ID           string `json:"id"`
	DictionaryID string `json:"dictionaryId"`
	Text         string `json:"text"`
	Translation  string `json:"translation"`
	CreatedAt    int64  `json:"createdAt"`
}

type settingsPayload struct {
	SourceLang        string `json:"sourceLang"`
	TargetLang        string `json:"targetLang"`
	VoiceMode         bool   `json:"voiceMode"`
	DictionaryMode    bool   `json:"dictionaryMode"`
	HasSeenOnboarding bool   `json:"hasSeenOnboarding"`
}

func (s *Server) listDictionaries(w http.ResponseWriter, r *http.Request) {
	dictionaries, err := s.store.ListDictionaries(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	payload := lo.Map(dictionaries, func(d entity.Dictionary, _ int) dictionaryPayload {
		return toDictionaryPayload(d)
	})
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) createDictionary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
		Color       string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	created, err := s.store.CreateDictionary(r.Context(), req.Name, req.Description,
		entity.DictionaryIcon(req.Icon), entity.DictionaryColor(req.Color))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toDictionaryPayload(*created))
}

func (s *Server) deleteDictionary(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDictionary(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	payload := lo.Map(entries, func(e entity.Entry, _ int) entryPayload {
		return toEntryPayload(e)
	})
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) addEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text        string `json:"text"`
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	if req.Text == "" {
		s.writeJSON(w, http.StatusBadRequest, errorPayload{Error: entity.ErrEmptyEntryText.Error()})
		return
	}
	created, err := s.store.AddEntry(r.Context(), r.PathValue("id"), req.Text, req.Translation)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toEntryPayload(*created))
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEntry(r.Context(), r.PathValue("id"), r.PathValue("entryID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSettingsPayload(settings))
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid request body"})
		return
	}
	settings := entity.UserSettings{
		SourceLang:        req.SourceLang,
		TargetLang:        req.TargetLang,
		VoiceMode:         req.VoiceMode,
		DictionaryMode:    req.DictionaryMode,
		HasSeenOnboarding: req.HasSeenOnboarding,
	}
	if err := s.settings.Save(r.Context(), settings); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toSettingsPayload(settings))
}

func (s *Server) markOnboardingSeen(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.MarkOnboardingSeen(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorPayload struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrEmptyDictionaryName),
		errors.Is(err, entity.ErrInvalidDictionaryIcon),
		errors.Is(err, entity.ErrInvalidDictionaryColor),
		errors.Is(err, entity.ErrEmptyEntryText):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Errorf("request failed: %v", err)
	}
	s.writeJSON(w, status, errorPayload{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Errorf("encode response: %v", err)
	}
}

func toDictionaryPayload(d entity.Dictionary) dictionaryPayload {
	return dictionaryPayload{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        string(d.Icon),
		Color:       string(d.Color),
		CreatedAt:   d.CreatedAt.UnixMilli(),
		UpdatedAt:   d.UpdatedAt.UnixMilli(),
	}
}

func toEntryPayload(e entity.Entry) entryPayload {
	return entryPayload{
		ID:           e.ID,
		DictionaryID: e.DictionaryID,
		Text:         e.Text,
		Translation:  e.Translation,
		CreatedAt:    e.CreatedAt.UnixMilli(),
	}
}

func toSettingsPayload(s entity.UserSettings) settingsPayload {
	return settingsPayload{
		SourceLang:        s.SourceLang,
		TargetLang:        s.TargetLang,
		VoiceMode:         s.VoiceMode,
		DictionaryMode:    s.DictionaryMode,
		HasSeenOnboarding: s.HasSeenOnboarding,
	}
}
