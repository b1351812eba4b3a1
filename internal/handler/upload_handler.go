package handlers

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
)

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxImageSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("File is too large (max %s)",
				humanize.Bytes(uint64(h.Cfg.MaxImageSize))), http.StatusBadRequest)
		} else {
			WriteError(w, "Failed to process the uploaded file", http.StatusBadRequest)
		}
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Could not read the image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.UploadService.UploadImage(r.Context(), userID(r), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusCreated)
}

func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxVideoSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, fmt.Sprintf("File is too large (max %s)",
				humanize.Bytes(uint64(h.Cfg.MaxVideoSize))), http.StatusBadRequest)
		} else {
			WriteError(w, "Failed to process the uploaded file", http.StatusBadRequest)
		}
		return
	}

	file, fileHeader, err := r.FormFile("video")
	if err != nil {
		WriteError(w, "Could not read the video file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.UploadService.UploadVideo(r.Context(), userID(r), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, result, http.StatusCreated)
}
