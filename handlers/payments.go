package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hostelhub/models"
)

func (h *Handlers) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitPaymentRequest
	if !decode(w, r, &req) {
		return
	}

	payment, err := h.svc.Submit(r.Context(), session(r), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "Payment uploaded", payment)
}

func (h *Handlers) MyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListForStudent(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", payments)
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.ListAll(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", payments)
}

// ApprovePayment takes an optional room number; registration payments require one.
func (h *Handlers) ApprovePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r)
	if !ok {
		return
	}

	var req models.ApprovePaymentRequest
	if err := decodeOptional(r, &req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid data", nil)
		return
	}

	payment, err := h.svc.Approve(r.Context(), session(r), id, req.RoomNumber)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Payment status updated", payment)
}

func (h *Handlers) RejectPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r)
	if !ok {
		return
	}

	payment, err := h.svc.Reject(r.Context(), session(r), id)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Payment status updated", payment)
}

func (h *Handlers) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r)
	if !ok {
		return
	}

	receipt, err := h.svc.Receipt(r.Context(), session(r), id)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", receipt)
}

func decodeOptional(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
