package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sajeme/SRI/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(s *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: s}
}

// @Summary Resumen del dataset (ADMIN)
// @Description Conteos globales de usuarios, juegos e interacciones, más la versión actual del dataset.
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.DatasetSummary
// @Router /admin/dataset/summary [get]
func (h *AdminHandler) DatasetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.svc.DatasetSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(summary)
}
