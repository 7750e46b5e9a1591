package handlers

import (
	"net/http"

	"hostelhub/models"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	student, err := h.svc.GetProfile(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "User found", student)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.UpdateProfile(r.Context(), session(r), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Profile updated successfully", student)
}

func (h *Handlers) GetParent(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.ParentInfo(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", info)
}

func (h *Handlers) CreateRegistrationRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.CreateRegistrationRequest(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "Request created successfully", req)
}

// GetRegistrationStatus answers with a null request when the student never applied.
func (h *Handlers) GetRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.RegistrationStatus(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	if req == nil {
		sendJSON(w, http.StatusOK, "No requests found", nil)
		return
	}
	sendJSON(w, http.StatusOK, "Success", req)
}

func (h *Handlers) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.ComplaintRequest
	if !decode(w, r, &req) {
		return
	}

	complaint, err := h.svc.CreateComplaint(r.Context(), session(r), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "Complaint submitted", complaint)
}

func (h *Handlers) MyComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.svc.MyComplaints(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Complaints", complaints)
}

func (h *Handlers) ActivePaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.svc.ActivePaymentMethods(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Payment methods retrieved", methods)
}
