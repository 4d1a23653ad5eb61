package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/rpgroster/internal/api/apierr"
	"github.com/mcoot/rpgroster/internal/api/request"
	"github.com/mcoot/rpgroster/internal/api/response"
	"github.com/mcoot/rpgroster/internal/middleware"
	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/services/player"
	"github.com/mcoot/rpgroster/internal/services/validation"
)

// PlayerHandler handles the /rest/players endpoints
type PlayerHandler struct {
	players *player.Service
	logger  *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players *player.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		players: players,
		logger:  logger,
	}
}

// List handles GET /rest/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := request.ParseQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	players, err := h.players.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Count handles GET /rest/players/count
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	c, err := request.ParseCriteria(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.players.Count(r.Context(), c)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, n)
}

// Create handles POST /rest/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	patch, err := decodePatch(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.players.Create(r.Context(), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Get handles GET /rest/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.players.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Update handles POST and PATCH /rest/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	patch, err := decodePatch(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.players.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Delete handles DELETE /rest/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := playerID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.players.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Empty(w)
}

func playerID(r *http.Request) (model.PlayerID, error) {
	return validation.ParseID(mux.Vars(r)["id"])
}

func decodePatch(r *http.Request) (model.PlayerPatch, error) {
	req, err := request.DecodePlayer(r.Body)
	if err != nil {
		return model.PlayerPatch{}, err
	}
	return req.ToPatch()
}

// writeError writes err, logging anything that is not a client error
func (h *PlayerHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if status := apierr.Status(err); status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
			slog.String("status", strconv.Itoa(status)),
		)
	}
	apierr.WriteError(w, err)
}
