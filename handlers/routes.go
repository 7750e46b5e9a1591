package handlers

import (
	"net/http"

	"hostelhub/middleware"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint. Authentication only resolves the caller; each operation
// enforces its own role.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Authenticate)

	// Public
	api.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/auth/signup", h.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/admin/login", h.AdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/admin/exists", h.AdminExists).Methods(http.MethodGet)
	api.HandleFunc("/admin/setup", h.CreateAdmin).Methods(http.MethodPost)
	api.HandleFunc("/gallery", h.ListGallery).Methods(http.MethodGet)

	// Student
	api.HandleFunc("/student/profile", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/student/profile", h.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/student/parent", h.GetParent).Methods(http.MethodGet)
	api.HandleFunc("/student/payments", h.MyPayments).Methods(http.MethodGet)
	api.HandleFunc("/student/payments", h.SubmitPayment).Methods(http.MethodPost)
	api.HandleFunc("/student/payments/{id:[0-9]+}/receipt", h.Receipt).Methods(http.MethodGet)
	api.HandleFunc("/student/registration", h.GetRegistrationStatus).Methods(http.MethodGet)
	api.HandleFunc("/student/registration", h.CreateRegistrationRequest).Methods(http.MethodPost)
	api.HandleFunc("/student/complaints", h.MyComplaints).Methods(http.MethodGet)
	api.HandleFunc("/student/complaints", h.CreateComplaint).Methods(http.MethodPost)
	api.HandleFunc("/payment-methods/active", h.ActivePaymentMethods).Methods(http.MethodGet)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/students", h.ListStudents).Methods(http.MethodGet)
	admin.HandleFunc("/students/{id}/room", h.AssignRoom).Methods(http.MethodPut)
	admin.HandleFunc("/students/{id}/amount", h.SetAmount).Methods(http.MethodPut)
	admin.HandleFunc("/students/{id}/attendance", h.SetAttendance).Methods(http.MethodPut)
	admin.HandleFunc("/students/{id}/amount/reset", h.ResetAmount).Methods(http.MethodPost)
	admin.HandleFunc("/students/{id}/cash", h.RecordCash).Methods(http.MethodPost)
	admin.HandleFunc("/students/{id}/remind", h.SendReminder).Methods(http.MethodPost)
	admin.HandleFunc("/payments", h.ListPayments).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{id:[0-9]+}/approve", h.ApprovePayment).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}/reject", h.RejectPayment).Methods(http.MethodPost)
	admin.HandleFunc("/payments/{id:[0-9]+}/receipt", h.Receipt).Methods(http.MethodGet)
	admin.HandleFunc("/registrations", h.ListRegistrations).Methods(http.MethodGet)
	admin.HandleFunc("/registrations/{id}/approve", h.ApproveRegistration).Methods(http.MethodPost)
	admin.HandleFunc("/registrations/{id}/reject", h.RejectRegistration).Methods(http.MethodPost)
	admin.HandleFunc("/complaints", h.ListComplaints).Methods(http.MethodGet)
	admin.HandleFunc("/complaints/{id:[0-9]+}/status", h.UpdateComplaintStatus).Methods(http.MethodPut)
	admin.HandleFunc("/payment-methods", h.ListPaymentMethods).Methods(http.MethodGet)
	admin.HandleFunc("/payment-methods", h.UpsertPaymentMethod).Methods(http.MethodPut)
	admin.HandleFunc("/payment-methods/{id}/toggle", h.TogglePaymentMethod).Methods(http.MethodPost)
	admin.HandleFunc("/gallery", h.AddGalleryImage).Methods(http.MethodPost)
	admin.HandleFunc("/gallery/{id:[0-9]+}", h.DeleteGalleryImage).Methods(http.MethodDelete)
	admin.HandleFunc("/stats", h.PaymentStats).Methods(http.MethodGet)
	admin.HandleFunc("/overview", h.Overview).Methods(http.MethodGet)
	admin.HandleFunc("/reports/payments.xlsx", h.ExportPayments).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", h.GetAuditLogs).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, http.StatusNotFound, "Not found", nil)
	})
	return r
}
