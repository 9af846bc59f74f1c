package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"bnbBack/internal/logger"
	"bnbBack/internal/models"
	"bnbBack/internal/services"
)

const defaultMaxUploadBytes = 10 << 20

type ApartmentHandler struct {
	Service        *services.ApartmentService
	Logger         logger.Logger
	MaxUploadBytes int64
}

func (h *ApartmentHandler) GetApartments(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.Service.GetApartments(r.Context())
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewApartmentList(apartments))
}

func (h *ApartmentHandler) GetApartmentByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid apartment id")
		return
	}

	detail, err := h.Service.GetApartmentDetail(r.Context(), id)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": detail})
}

func (h *ApartmentHandler) VoteApartment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid apartment id")
		return
	}

	ranking, err := h.Service.VoteApartment(r.Context(), id)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewApartmentList(ranking))
}

func (h *ApartmentHandler) GetServiceTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Service.GetServiceTags(r.Context())
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewServiceTagList(tags))
}

// CreateApartment accepts a multipart form with a single "image" file and
// the listing fields. The owner comes from the verified token.
func (h *ApartmentHandler) CreateApartment(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	input, err := parseApartmentForm(r.MultipartForm)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	header, err := singleImage(r.MultipartForm)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	var image *models.Attachment
	if header != nil {
		var file multipart.File
		image, file, err = openImage(header)
		if err != nil {
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				respondError(w, h.Logger, err)
				return
			}
			writeError(w, http.StatusBadRequest, "Failed to read image")
			return
		}
		defer file.Close()
	}

	id, err := h.Service.CreateApartment(r.Context(), ownerID, input, image)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":          true,
		"new_apartment_id": id,
	})
}
