package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sajeme/SRI/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// recommend corre la estrategia pedida y escribe la respuesta completa
// (items + flag de fallback). Todas las rutas por algoritmo pasan por aquí.
func (h *RecommendHandler) recommend(w http.ResponseWriter, r *http.Request, algo service.Algo) {
	w.Header().Set("Content-Type", "application/json")

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	refresh := r.URL.Query().Get("refresh") == "true"

	rec, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:  userID,
		Algo:    algo,
		N:       n,
		Refresh: refresh,
	})
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(rec)
}

func writeRecommendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidParams):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNoRecommendations):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrEngineUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// @Summary Recomendaciones por reglas de asociación
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.Recommendation
// @Router /recommendations/association/{id} [get]
func (h *RecommendHandler) Association(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, service.AlgoAssociation)
}

// @Summary Recomendaciones por contenido (TF-IDF)
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.Recommendation
// @Router /recommendations/content-based/{id} [get]
func (h *RecommendHandler) ContentBased(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, service.AlgoContent)
}

// @Summary Recomendaciones cold-start (perfil + edad)
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.Recommendation
// @Router /recommendations/cold-start/{id} [get]
func (h *RecommendHandler) ColdStart(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, service.AlgoColdStart)
}

// @Summary Filtrado colaborativo user-based (KNN)
// @Tags collaborative
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.Recommendation
// @Router /collaborative/user-based/{id} [get]
func (h *RecommendHandler) UserBased(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, service.AlgoUserKNN)
}

// @Summary Filtrado colaborativo item-based (KNN)
// @Tags collaborative
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.Recommendation
// @Router /collaborative/item-based/{id} [get]
func (h *RecommendHandler) ItemBased(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, service.AlgoItemKNN)
}

// @Summary Filtrado colaborativo por factores latentes (SVD)
// @Tags collaborative
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} models.Recommendation
// @Router /collaborative/svd/{id} [get]
func (h *RecommendHandler) SVD(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, service.AlgoSVD)
}

// @Summary Juegos similares a uno dado
// @Tags collaborative
// @Produce json
// @Param gameId path int true "gameId"
// @Param n query int false "cantidad de vecinos"
// @Success 200 {object} models.SimilarGamesResponse
// @Failure 404 {object} map[string]string
// @Router /collaborative/similar-games/{gameId} [get]
func (h *RecommendHandler) SimilarGames(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	gameID, _ := strconv.Atoi(chi.URLParam(r, "gameId"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	resp, err := h.svc.SimilarGames(r.Context(), gameID, n)
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ====== Boosting ======

type boostRequest struct {
	Category       string  `json:"category"`
	DateStart      string  `json:"dateStart"` // YYYY-MM-DD
	DateEnd        string  `json:"dateEnd"`   // YYYY-MM-DD
	CategoryBoost  float64 `json:"categoryBoost"`
	DateBoost      float64 `json:"dateBoost"`
	StrictCategory bool    `json:"strictCategory"`
	StrictDate     bool    `json:"strictDate"`
	N              int     `json:"n"`
}

// @Summary Ranking con boosting configurable
// @Description Ordena el catálogo por rating medio aplicando multiplicadores por categoría y ventana de fechas.
// @Tags boost
// @Accept json
// @Produce json
// @Param body body boostRequest true "parámetros de boosting"
// @Success 200 {array} models.RecItem
// @Failure 400 {object} map[string]string
// @Router /recommendations/boost [post]
func (h *RecommendHandler) Boost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req boostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := h.svc.Boost(r.Context(), service.BoostRequest{
		Category:       req.Category,
		DateStart:      req.DateStart,
		DateEnd:        req.DateEnd,
		CategoryBoost:  req.CategoryBoost,
		DateBoost:      req.DateBoost,
		StrictCategory: req.StrictCategory,
		StrictDate:     req.StrictDate,
		N:              req.N,
	})
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Preset: mejores juegos de rol
// @Description Ranking global con la categoría "rol" potenciada (x2.0, sin filtro estricto: los demás juegos siguen en la lista, solo que sin boost).
// @Tags boost
// @Produce json
// @Param n query int false "cantidad de resultados"
// @Success 200 {array} models.RecItem
// @Router /recommend/rpg [get]
func (h *RecommendHandler) RecommendRPG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	items, err := h.svc.Boost(r.Context(), service.BoostRequest{
		Category:      "rol",
		CategoryBoost: 2.0,
		N:             n,
	})
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Preset: lanzamientos en ventana con acción potenciada
// @Description Solo juegos publicados dentro de la ventana (filtro de fecha estricto); dentro de ella, "acción" recibe boost x1.5 y la coincidencia de fecha x1.8, pero no se excluye ninguna otra categoría.
// @Tags boost
// @Produce json
// @Param dateStart query string true "YYYY-MM-DD"
// @Param dateEnd query string true "YYYY-MM-DD"
// @Param n query int false "cantidad de resultados"
// @Success 200 {array} models.RecItem
// @Failure 400 {object} map[string]string
// @Router /recommend/action-window [get]
func (h *RecommendHandler) RecommendActionWindow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	items, err := h.svc.Boost(r.Context(), service.BoostRequest{
		Category:      "acción",
		DateStart:     r.URL.Query().Get("dateStart"),
		DateEnd:       r.URL.Query().Get("dateEnd"),
		CategoryBoost: 1.5,
		DateBoost:     1.8,
		StrictDate:    true,
		N:             n,
	})
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// ====== Rankings globales ======

// @Summary Juegos más jugados
// @Tags games
// @Produce json
// @Param limit query int false "límite"
// @Success 200 {array} models.RecItem
// @Router /games/most-played [get]
func (h *RecommendHandler) MostPlayed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.svc.MostPlayed(r.Context(), limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Juegos mejor valorados
// @Tags games
// @Produce json
// @Param limit query int false "límite"
// @Success 200 {array} models.RecItem
// @Router /games/top-rated [get]
func (h *RecommendHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.svc.TopRated(r.Context(), limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Historial de recomendaciones del usuario
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param limit query int false "límite (default: 20)"
// @Success 200 {array} models.Recommendation
// @Router /users/{id}/recommendations/history [get]
func (h *RecommendHandler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	recs, err := h.svc.History(r.Context(), userID, int64(limit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(recs)
}

// ====== WebSocket ======

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Recomendaciones en tiempo real (WebSocket)
// @Tags recommend
// @Produce json
// @Param id path int true "userId"
// @Param algo query string false "association|content|user-knn|item-knn|svd|cold-start (default: content)"
// @Param n query int false "cantidad de resultados (5-10)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/ws/recommendations [get]
func (h *RecommendHandler) RecommendationsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "No se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	refresh := r.URL.Query().Get("refresh") == "true"

	algo := service.Algo(r.URL.Query().Get("algo"))
	if algo == "" {
		algo = service.AlgoContent
	}

	// Mensaje inicial
	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "Conexión WS abierta, iniciando cálculo…",
	})

	// Fases del pipeline (el ajuste es por petición, esto da feedback
	// mientras el modelo entrena)
	for _, fase := range []string{"cargando dataset", "ajustando modelo", "rankeando"} {
		conn.WriteJSON(map[string]any{
			"type": "progress",
			"msg":  fase,
		})
	}

	rec, err := h.svc.Recommend(r.Context(), service.RecRequest{
		UserID:  userID,
		Algo:    algo,
		N:       n,
		Refresh: refresh,
	})
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":        "recommendations",
		"userId":      userID,
		"algo":        string(algo),
		"fallback":    rec.Fallback,
		"items":       rec.Items,
		"generatedAt": time.Now(),
	})
}
