package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/models"
	"github.com/go-chi/chi/v5"
)

const userIDParam = "user_id"

func (h *Handler) createGuest(w http.ResponseWriter, r *http.Request) {
	var req models.GuestRequest
	if !readRequest(w, r, &req) {
		return
	}

	user, err := h.services.UserService.CreateGuest(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "creating guest user")
		return
	}

	h.writeUserWithToken(w, r, user, "Guest user created successfully", "creating guest user")
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !readRequest(w, r, &req) {
		return
	}

	user, err := h.services.UserService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "registering user")
		return
	}

	h.writeUserWithToken(w, r, user, "User registered successfully", "registering user")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !readRequest(w, r, &req) {
		return
	}

	user, err := h.services.UserService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "during login")
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.UserID).Msg("user successfully logged in")

	h.writeUserWithToken(w, r, user, "Login successful", "during login")
}

// writeUserWithToken issues a token for user, puts it into the Authorization
// header and writes the user result.
func (h *Handler) writeUserWithToken(w http.ResponseWriter, r *http.Request, user models.User, message, action string) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err, action)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	writeSuccess(w, r, http.StatusOK, message, models.UserResult{
		UserID:   user.UserID,
		UserType: user.UserType,
		User:     user,
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetUser(r.Context(), chi.URLParam(r, userIDParam))
	if err != nil {
		writeError(w, r, err, "getting user")
		return
	}

	writeSuccess(w, r, http.StatusOK, "User found", models.UserData{User: user})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserUpdateRequest
	if !readRequest(w, r, &req) {
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), chi.URLParam(r, userIDParam), req)
	if err != nil {
		writeError(w, r, err, "updating user")
		return
	}

	writeSuccess(w, r, http.StatusOK, "User updated successfully", models.UserData{User: user})
}

func (h *Handler) journeySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.JourneyService.Summary(r.Context(), chi.URLParam(r, userIDParam))
	if err != nil {
		writeError(w, r, err, "building journey summary")
		return
	}

	writeSuccess(w, r, http.StatusOK, "Journey summary retrieved", models.JourneyData{Summary: summary})
}
