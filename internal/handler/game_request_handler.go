package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sajeme/SRI/internal/models"
	"github.com/sajeme/SRI/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GameRequestHandler struct {
	svc *service.GameRequestService
}

func NewGameRequestHandler(s *service.GameRequestService) *GameRequestHandler {
	return &GameRequestHandler{svc: s}
}

// @Summary Solicitar alta de un juego
// @Description El usuario propone un juego; queda pendiente hasta que un admin decida.
// @Tags game-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.GameCreateRequest true "datos del juego propuesto"
// @Success 201 {object} models.GameRequest
// @Failure 400 {object} map[string]string
// @Router /game-requests [post]
func (h *GameRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	var req models.GameCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gr, err := h.svc.Create(r.Context(), userID, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(gr)
}

// @Summary Mis solicitudes de juego
// @Tags game-requests
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|approved|rejected"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.GameRequest
// @Router /game-requests/mine [get]
func (h *GameRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := UserIDFromContext(r.Context())

	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	reqs, err := h.svc.ListMine(r.Context(), userID, status, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reqs == nil {
		reqs = []models.GameRequest{}
	}
	_ = json.NewEncoder(w).Encode(reqs)
}

// @Summary Listar todas las solicitudes (ADMIN)
// @Tags game-requests
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending|approved|rejected"
// @Param limit query int false "límite (default: 20)"
// @Param offset query int false "offset (default: 0)"
// @Success 200 {array} models.GameRequest
// @Router /game-requests [get]
func (h *GameRequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := r.URL.Query().Get("status")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20
	}

	reqs, err := h.svc.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reqs == nil {
		reqs = []models.GameRequest{}
	}
	_ = json.NewEncoder(w).Encode(reqs)
}

// @Summary Aprobar solicitud (ADMIN)
// @Description Crea el juego en el catálogo y marca la solicitud como aprobada.
// @Tags game-requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "id de la solicitud"
// @Success 200 {object} models.GameRequest
// @Failure 400 {object} map[string]string
// @Router /game-requests/{id}/approve [post]
func (h *GameRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	gr, err := h.svc.Approve(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(gr)
}

// @Summary Rechazar solicitud (ADMIN)
// @Tags game-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "id de la solicitud"
// @Param body body models.RejectGameRequest true "motivo"
// @Success 200 {object} models.GameRequest
// @Failure 400 {object} map[string]string
// @Router /game-requests/{id}/reject [post]
func (h *GameRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	var body models.RejectGameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	gr, err := h.svc.Reject(r.Context(), id, body.Reason)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(gr)
}
