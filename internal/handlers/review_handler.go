package handlers

import (
	"net/http"

	"bnbBack/internal/logger"
	"bnbBack/internal/models"
	"bnbBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
	Logger  logger.Logger
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid apartment id")
		return
	}

	var input models.ReviewInput
	if err := decodeJSONBody(r, &input); err != nil {
		respondError(w, h.Logger, err)
		return
	}

	if err := h.Service.CreateReview(r.Context(), apartmentID, input); err != nil {
		respondError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
