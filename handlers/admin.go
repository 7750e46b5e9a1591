package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"hostelhub/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.ListStudents(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	if len(students) == 0 {
		sendJSON(w, http.StatusOK, "No students found", students)
		return
	}
	sendJSON(w, http.StatusOK, "Success", students)
}

func (h *Handlers) AssignRoom(w http.ResponseWriter, r *http.Request) {
	var req models.RoomRequest
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.AssignRoom(r.Context(), session(r), pathID(r), req.RoomNumber)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Room updated successfully", student)
}

func (h *Handlers) SetAmount(w http.ResponseWriter, r *http.Request) {
	var req models.AmountRequest
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.SetAmountOwed(r.Context(), session(r), pathID(r), req.Amount)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Amount updated successfully", student)
}

func (h *Handlers) SetAttendance(w http.ResponseWriter, r *http.Request) {
	var req models.AttendanceRequest
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.SetAmountByAttendance(r.Context(), session(r), pathID(r), req.DaysPresent)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Amount updated successfully", student)
}

func (h *Handlers) ResetAmount(w http.ResponseWriter, r *http.Request) {
	student, err := h.svc.ResetAmountOwed(r.Context(), session(r), pathID(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Amount updated successfully", student)
}

func (h *Handlers) RecordCash(w http.ResponseWriter, r *http.Request) {
	var req models.CashPaymentRequest
	if !decode(w, r, &req) {
		return
	}

	payment, err := h.svc.RecordCashPayment(r.Context(), session(r), pathID(r), req.Amount)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, "Payment status updated", payment)
}

func (h *Handlers) SendReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SendReminder(r.Context(), session(r), pathID(r)); err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Email sent successfully", nil)
}

func (h *Handlers) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListRegistrationRequests(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	if len(requests) == 0 {
		sendJSON(w, http.StatusOK, "No requests found", requests)
		return
	}
	sendJSON(w, http.StatusOK, "Success", requests)
}

func (h *Handlers) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.ApproveRegistration(r.Context(), session(r), pathID(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Request updated successfully", req)
}

func (h *Handlers) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.RejectRegistration(r.Context(), session(r), pathID(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Request updated successfully", req)
}

func (h *Handlers) ListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.svc.ListComplaints(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Complaints", complaints)
}

func (h *Handlers) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r)
	if !ok {
		return
	}
	var req models.ComplaintStatusRequest
	if !decode(w, r, &req) {
		return
	}

	complaint, err := h.svc.UpdateComplaintStatus(r.Context(), session(r), id, req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Success", complaint)
}

func (h *Handlers) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.svc.ListPaymentMethods(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Payment methods retrieved", methods)
}

func (h *Handlers) UpsertPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentMethodRequest
	if !decode(w, r, &req) {
		return
	}

	method, created, err := h.svc.UpsertPaymentMethod(r.Context(), session(r), req)
	if err != nil {
		sendFailure(w, err)
		return
	}
	if created {
		sendJSON(w, http.StatusCreated, "Payment method added", method)
		return
	}
	sendJSON(w, http.StatusOK, "Payment method updated", method)
}

func (h *Handlers) TogglePaymentMethod(w http.ResponseWriter, r *http.Request) {
	method, err := h.svc.TogglePaymentMethod(r.Context(), session(r), pathID(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Method updated", method)
}

func (h *Handlers) PaymentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.PaymentStats(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Stats retrieved", stats)
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context(), session(r))
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, "Stats retrieved", overview)
}

// ExportPayments renders the workbook into memory first so a failure still gets the JSON envelope.
func (h *Handlers) ExportPayments(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportPaymentsReport(r.Context(), session(r), &buf); err != nil {
		sendFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="payments.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("write payments report", "error", err)
	}
}

func (h *Handlers) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.svc.ListAuditLogs(r.Context(), session(r), page, limit)
	if err != nil {
		sendFailure(w, err)
		return
	}
	sendJSON(w, http.StatusOK, fmt.Sprintf("%d audit entries", len(logs)), logs)
}
