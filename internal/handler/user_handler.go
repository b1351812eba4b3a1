package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type UpdateDisplayNameRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
}

type VerificationResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), userID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	var req UpdateDisplayNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateDisplayName(r.Context(), userID(r), req.DisplayName)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateProfilePhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxImageSize); err != nil {
		WriteError(w, "Failed to process the uploaded file", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		WriteError(w, "Could not read the photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	user, err := h.UserService.UpdateProfilePhoto(r.Context(), userID(r), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) SendEmailVerification(w http.ResponseWriter, r *http.Request) {
	token, err := h.UserService.SendEmailVerification(r.Context(), userID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	// Mail delivery is not wired, the token travels in the response.
	WriteSuccess(w, VerificationResponse{
		Message: "Verification token issued",
		Token:   token,
	}, http.StatusAccepted)
}

func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	user, err := h.UserService.VerifyEmail(r.Context(), token)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteAccount(r.Context(), userID(r)); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Account deleted"}, http.StatusOK)
}
