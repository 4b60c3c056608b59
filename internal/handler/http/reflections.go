package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/service"
	"github.com/MKhiriev/clearnext/models"
	"github.com/go-chi/chi/v5"
)

const reflectionIDParam = "reflection_id"

func (h *Handler) submitReflection(w http.ResponseWriter, r *http.Request) {
	var req models.ReflectionRequest
	if !readRequest(w, r, &req) {
		return
	}

	submission, err := h.services.ReflectionService.SubmitReflection(r.Context(), req)
	if err != nil {
		var rejected *service.ReflectionRejectedError
		if errors.As(err, &rejected) {
			logger.FromRequest(r).Debug().Err(err).Msg("reflection rejected")
			writeFailure(w, r, http.StatusBadRequest, rejected.Message, rejected.Details)
			return
		}

		writeError(w, r, err, "submitting reflection")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Reflection submitted successfully", submission)
}

// validateReflection runs the reflection checks without storing anything.
func (h *Handler) validateReflection(w http.ResponseWriter, r *http.Request) {
	var req models.ReflectionRequest
	if !readRequest(w, r, &req) {
		return
	}

	valid, message, details := h.services.ReflectionService.ValidateReflection(r.Context(), req)
	if !valid {
		message = msgValidationFailed
	}

	writeSuccess(w, r, http.StatusOK, message, models.ReflectionCheck{
		IsValid:           valid,
		ValidationDetails: details,
	})
}

func (h *Handler) listUserReflections(w http.ResponseWriter, r *http.Request) {
	reflections, err := h.services.ReflectionService.ListUserReflections(r.Context(), chi.URLParam(r, userIDParam))
	if err != nil {
		writeError(w, r, err, "getting user reflections")
		return
	}
	if reflections == nil {
		reflections = []models.Reflection{}
	}

	writeSuccess(w, r, http.StatusOK, "User reflections retrieved", models.ReflectionsData{
		Reflections:      reflections,
		TotalReflections: len(reflections),
	})
}

func (h *Handler) getReflection(w http.ResponseWriter, r *http.Request) {
	reflection, err := h.services.ReflectionService.GetReflection(r.Context(), chi.URLParam(r, reflectionIDParam))
	if err != nil {
		writeError(w, r, err, "getting reflection")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Reflection retrieved", models.ReflectionData{Reflection: reflection})
}
