package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"hostelhub/middleware"
	"hostelhub/services"

	"github.com/gorilla/mux"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Error bool        `json:"error"`
	Msg   string      `json:"msg"`
	Data  interface{} `json:"data,omitempty"`
}

type Handlers struct {
	svc    *services.Service
	logger *slog.Logger
}

func NewHandlers(svc *services.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{svc: svc, logger: logger}
}

func sendJSON(w http.ResponseWriter, status int, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Msg: msg, Data: data})
}

func sendError(w http.ResponseWriter, status int, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: true, Msg: msg, Data: data})
}

// sendFailure maps a service error onto its HTTP status.
func sendFailure(w http.ResponseWriter, err error) {
	var data interface{}
	if fields := services.FieldsOf(err); len(fields) > 0 {
		data = fields
	}
	sendError(w, statusFor(services.KindOf(err)), services.Message(err), data)
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid data", nil)
		return false
	}
	return true
}

func session(r *http.Request) *services.Session {
	return middleware.SessionFromContext(r.Context())
}

func pathID(r *http.Request) string {
	return mux.Vars(r)["id"]
}

func pathUint(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(pathID(r), 10, 64)
	if err != nil || id == 0 {
		sendError(w, http.StatusBadRequest, "Invalid data", nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.svc.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now(),
		"service":   "HostelHub",
		"version":   "1.0.0",
	})
}
