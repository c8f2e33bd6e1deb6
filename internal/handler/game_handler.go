package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/service"

	"github.com/go-chi/chi/v5"
)

type GameHandler struct {
	svc *service.GameService
}

func NewGameHandler(s *service.GameService) *GameHandler {
	return &GameHandler{svc: s}
}

// @Summary Obtener juego por id
// @Tags games
// @Produce json
// @Param id path int true "gameId"
// @Success 200 {object} models.GameDoc
// @Failure 404 {object} map[string]string
// @Router /games/{id} [get]
func (h *GameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	g, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if err == service.ErrGameNotFound {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(g)
}

// @Summary Buscar juegos
// @Tags games
// @Produce json
// @Param q query string false "búsqueda por nombre"
// @Param category query string false "filtrar por categoría"
// @Param limit query int false "límite (default: 20, máx 100)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.GameDoc
// @Router /games [get]
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	games, err := h.svc.Search(r.Context(), q, category, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if games == nil {
		games = []models.GameDoc{}
	}
	_ = json.NewEncoder(w).Encode(games)
}

// @Summary Crear juego (ADMIN)
// @Tags games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.GameCreateRequest true "datos del juego"
// @Success 201 {object} models.GameDoc
// @Failure 400 {object} map[string]string
// @Router /games [post]
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.GameCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Create(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(g)
}

// @Summary Actualizar juego (ADMIN)
// @Tags games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "gameId"
// @Param body body models.GameUpdateRequest true "campos a actualizar"
// @Success 200 {object} models.GameDoc
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /games/{id} [put]
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req models.GameUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if err == service.ErrGameNotFound {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(g)
}
