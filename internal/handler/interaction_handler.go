package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/service"

	"github.com/go-chi/chi/v5"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

func NewInteractionHandler(s *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: s}
}

// @Summary Registrar interacción con un juego
// @Description Upsert de la interacción del usuario autenticado. Los campos que no vengan en el body se borran del documento.
// @Tags interactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.InteractionRequest true "interacción"
// @Success 200 {object} models.InteractionDoc
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /me/interactions [post]
func (h *InteractionHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var req models.InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	it, err := h.svc.Upsert(r.Context(), userID, req)
	if err != nil {
		if err == service.ErrGameNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(it)
}

// @Summary Mis interacciones
// @Tags interactions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.InteractionDoc
// @Router /me/interactions [get]
func (h *InteractionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	items, err := h.svc.GetMine(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.InteractionDoc{}
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Mi interacción con un juego
// @Tags interactions
// @Security BearerAuth
// @Produce json
// @Param gameId path int true "gameId"
// @Success 200 {object} models.InteractionDoc
// @Failure 404 {object} map[string]string
// @Router /me/interactions/{gameId} [get]
func (h *InteractionHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())
	gameID, _ := strconv.Atoi(chi.URLParam(r, "gameId"))

	it, err := h.svc.GetOne(r.Context(), userID, gameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if it == nil {
		http.NotFound(w, r)
		return
	}
	_ = json.NewEncoder(w).Encode(it)
}
