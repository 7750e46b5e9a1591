package handlers

import (
	"net/http"

	"hostelhub/models"
)

func (h *Handlers) ListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.ListGallery(r.Context())
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Images fetched successfully", images)
}

func (h *Handlers) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req models.GalleryImageRequest
	if !decode(w, r, &req) {
		return
	}

	image, err := h.svc.AddGalleryImage(r.Context(), session(r), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "Image added successfully", image)
}

func (h *Handlers) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r)
	if !ok {
		return
	}

	image, err := h.svc.DeleteGalleryImage(r.Context(), session(r), id)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Image deleted successfully", image)
}
