// player/api/handler.go
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/naijascout/scout-services/player/service"
	"github.com/naijascout/scout-services/player/validation"
	"github.com/naijascout/scout-services/shared/api"
	"github.com/naijascout/scout-services/shared/apperr"
	"github.com/naijascout/scout-services/shared/models"
	"go.uber.org/zap"
)

const (
	// maxBodyBytes caps player payloads.
	maxBodyBytes = 1 << 20

	defaultRequestTimeout = 5 * time.Second
	defaultStatsTimeout   = 30 * time.Second
	healthTimeout         = 2 * time.Second
)

var (
	errBodyTooLarge   = errors.New("request body too large")
	errBodyUnreadable = errors.New("invalid request body")
)

// PlayerAPIHandlers holds references to the services that handle business logic.
type PlayerAPIHandlers struct {
	PlayerService *service.PlayerService
	QueryService  *service.QueryService
	StatsService  *service.StatsService
	Logger        *zap.Logger

	// RequestTimeout bounds every player request except the overview, which uses StatsTimeout.
	RequestTimeout time.Duration
	StatsTimeout   time.Duration
}

// NewPlayerAPIHandlers is the constructor for the API handlers.
func NewPlayerAPIHandlers(ps *service.PlayerService, qs *service.QueryService, ss *service.StatsService, logger *zap.Logger) *PlayerAPIHandlers {
	return &PlayerAPIHandlers{
		PlayerService:  ps,
		QueryService:   qs,
		StatsService:   ss,
		Logger:         logger,
		RequestTimeout: defaultRequestTimeout,
		StatsTimeout:   defaultStatsTimeout,
	}
}

type healthResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// --- Handler Methods ---

// ListPlayersHandler handles GET /players.
func (pah *PlayerAPIHandlers) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ListQuery(r.URL.Query())
	if err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pah.RequestTimeout)
	defer cancel()

	page, err := pah.QueryService.ListPlayers(ctx, q)
	if err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}
	if err := api.WriteJSON(w, http.StatusOK, page.Response()); err != nil {
		pah.Logger.Error("Failed to write player list", zap.Error(err))
	}
}

// GetPlayerHandler handles GET /players/{id}.
func (pah *PlayerAPIHandlers) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), pah.RequestTimeout)
	defer cancel()

	player, err := pah.PlayerService.GetPlayer(ctx, id)
	if err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}
	api.WriteData(w, http.StatusOK, player)
}

// CreatePlayerHandler handles POST /players.
func (pah *PlayerAPIHandlers) CreatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	in, err := readPlayer(w, r)
	if err != nil {
		pah.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pah.RequestTimeout)
	defer cancel()

	player, err := pah.PlayerService.CreatePlayer(ctx, in)
	if err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}
	api.WriteData(w, http.StatusCreated, player)
}

// UpdatePlayerHandler handles PUT /players/{id}.
func (pah *PlayerAPIHandlers) UpdatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	in, err := readPlayer(w, r)
	if err != nil {
		// A bad id is reported alongside the body problems.
		_, idErr := validation.PlayerID(id)
		pah.writeError(w, apperr.JoinValidation(idErr, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pah.RequestTimeout)
	defer cancel()

	player, err := pah.PlayerService.UpdatePlayer(ctx, id, in)
	if err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}
	api.WriteData(w, http.StatusOK, player)
}

// DeletePlayerHandler handles DELETE /players/{id}.
func (pah *PlayerAPIHandlers) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), pah.RequestTimeout)
	defer cancel()

	if err := pah.PlayerService.DeletePlayer(ctx, id); err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}
	if err := api.WriteJSON(w, http.StatusOK, api.MessageResponse{Success: true, Message: "Player deleted successfully"}); err != nil {
		pah.Logger.Error("Failed to write delete response", zap.Error(err))
	}
}

// PlayerStatsHandler handles GET /players/stats/overview.
func (pah *PlayerAPIHandlers) PlayerStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pah.StatsTimeout)
	defer cancel()

	stats, err := pah.StatsService.Overview(ctx)
	if err != nil {
		api.WriteAppError(w, pah.Logger, err)
		return
	}
	api.WriteData(w, http.StatusOK, stats)
}

// HealthHandler reports whether the store answers a ping.
func (pah *PlayerAPIHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Success: true, Message: "NaijaScout API is running", Timestamp: time.Now().UTC()}
	status := http.StatusOK
	if err := pah.PlayerService.Ping(ctx); err != nil {
		pah.Logger.Warn("Health check failed", zap.Error(err))
		resp.Success = false
		resp.Message = "Player store unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := api.WriteJSON(w, status, resp); err != nil {
		pah.Logger.Error("Failed to write health response", zap.Error(err))
	}
}

// NotFoundHandler answers every unmatched route.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteNotFound(w, fmt.Sprintf("Route %s not found", r.URL.Path))
}

// MethodNotAllowedHandler answers a known path with an unsupported method.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	api.WriteError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path))
}

// readPlayer reads the body, capped at maxBodyBytes, and decodes it.
func readPlayer(w http.ResponseWriter, r *http.Request) (*models.PlayerInput, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errBodyUnreadable
	}
	return validation.DecodePlayer(body)
}

func (pah *PlayerAPIHandlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		api.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, errBodyUnreadable):
		api.WriteBadRequest(w, "Invalid request body")
	default:
		api.WriteAppError(w, pah.Logger, err)
	}
}

// RegisterRoutes registers the player routes on router, normally the API prefix subrouter.
func (pah *PlayerAPIHandlers) RegisterRoutes(router *mux.Router) {
	// Registered before /players/{id} so "stats" is never taken for an id.
	router.HandleFunc("/players/stats/overview", pah.PlayerStatsHandler).Methods(http.MethodGet)

	router.HandleFunc("/players", pah.ListPlayersHandler).Methods(http.MethodGet)
	router.HandleFunc("/players", pah.CreatePlayerHandler).Methods(http.MethodPost)
	router.HandleFunc("/players/{id}", pah.GetPlayerHandler).Methods(http.MethodGet)
	router.HandleFunc("/players/{id}", pah.UpdatePlayerHandler).Methods(http.MethodPut)
	router.HandleFunc("/players/{id}", pah.DeletePlayerHandler).Methods(http.MethodDelete)
}

// RegisterServiceRoutes mounts the player API under prefix plus the unprefixed
// health and metrics endpoints and the JSON fallbacks.
func (pah *PlayerAPIHandlers) RegisterServiceRoutes(root *mux.Router, prefix string, metricsHandler http.Handler) {
	pah.RegisterRoutes(root.PathPrefix(prefix).Subrouter())

	root.HandleFunc("/health", pah.HealthHandler).Methods(http.MethodGet)
	if prefix != "" {
		root.HandleFunc(prefix+"/health", pah.HealthHandler).Methods(http.MethodGet)
	}
	if metricsHandler != nil {
		root.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	root.NotFoundHandler = http.HandlerFunc(NotFoundHandler)
	root.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowedHandler)
}
