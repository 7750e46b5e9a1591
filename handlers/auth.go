package handlers

import (
	"net/http"

	"hostelhub/models"
)

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.SignUp(r.Context(), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "User created successfully", student)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", resp)
}

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.svc.AdminLogin(r.Context(), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", resp)
}

func (h *Handlers) AdminExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.svc.AdminExists(r.Context())
	if err != nil {
		sendFailure(w, err)
		return
	}
	msg := "Success"
	if !exists {
		msg = "No admin found"
	}
	sendJSON(w, http.StatusOK, msg, map[string]bool{"exists": exists})
}

// CreateAdmin bootstraps the first staff account without a token; later accounts need an admin.
func (h *Handlers) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if !decode(w, r, &req) {
		return
	}

	admin, err := h.svc.CreateAdmin(r.Context(), session(r), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "Admin created successfully", admin)
}
