package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hostelhub/database"
	"hostelhub/models"
	"hostelhub/services"
	"hostelhub/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	if err := utils.InitializeEncryption("HostelHubTestKey0123456789abcdef"); err != nil {
		panic(err)
	}
	if err := utils.InitializeJWT("test-secret-that-is-long-enough-for-hs256"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type envelope struct {
	Error bool            `json:"error"`
	Msg   string          `json:"msg"`
	Data  json.RawMessage `json:"data"`
}

type testServer struct {
	router *mux.Router
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc := services.New(services.Deps{DB: db, Logger: discard, Now: func() time.Time { return now }})
	return &testServer{router: NewRouter(NewHandlers(svc, discard)), db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/admin/setup", "", map[string]string{
		"name": "Warden", "email": "warden@hostel.test", "password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/auth/admin/login", "", map[string]string{
		"email": "warden@hostel.test", "password": "supersecret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp.Token
}

func (s *testServer) studentToken(t *testing.T, email, phone string) (string, string) {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Asha", "email": email, "phone": phone, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	return resp.Token, resp.ID
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestSignUpErrorsUseEnvelope(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, env.Error)
	assert.Equal(t, "Invalid credentials", env.Msg)

	body := map[string]string{"name": "Asha", "email": "asha@example.com", "phone": "9876543210", "password": "password123"}
	rec, _ = s.do(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/auth/signup", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email or Phone number already exists", env.Msg)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRoleEnforcement(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	student, _ := s.studentToken(t, "asha@example.com", "9876543210")

	rec, env := s.do(t, http.MethodGet, "/api/admin/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Msg)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/students", student, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/students", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/student/profile", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/student/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/setup", student, map[string]string{
		"name": "Intruder", "email": "intruder@hostel.test", "password": "supersecret",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegistrationAndPaymentFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	student, studentID := s.studentToken(t, "asha@example.com", "9876543210")

	rec, env := s.do(t, http.MethodGet, "/api/student/registration", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No requests found", env.Msg)

	rec, env = s.do(t, http.MethodPost, "/api/student/registration", student, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var request models.RegistrationRequest
	require.NoError(t, json.Unmarshal(env.Data, &request))

	rec, env = s.do(t, http.MethodPost, "/api/student/registration", student, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Registration request already sent.", env.Msg)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/registrations/"+request.ID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/admin/payment-methods", admin, map[string]string{
		"type": "UPI", "upi_id": "hostel@okaxis", "beneficiary_name": "Hostel Trust",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/student/payments", student, map[string]interface{}{
		"payment_method":  "UPI",
		"screenshot_refs": []string{"proofs/reg.png"},
		"amount":          6000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var payment models.Payment
	require.NoError(t, json.Unmarshal(env.Data, &payment))
	assert.Equal(t, models.KindRegistration, payment.Kind)

	approvePath := fmt.Sprintf("/api/admin/payments/%d/approve", payment.ID)
	rec, env = s.do(t, http.MethodPost, approvePath, admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Room number is required", env.Msg)

	rec, _ = s.do(t, http.MethodPost, approvePath, admin, map[string]string{"room_number": "B-204"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPost, approvePath, admin, map[string]string{"room_number": "B-204"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Payment already processed", env.Msg)

	rec, env = s.do(t, http.MethodGet, "/api/student/profile", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.Student
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, studentID, profile.ID)
	assert.True(t, profile.IsRegistered)
	require.NotNil(t, profile.RoomNumber)
	assert.Equal(t, "B-204", *profile.RoomNumber)

	rec, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/student/payments/%d/receipt", payment.ID), student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var receipt models.Receipt
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, "Six thousand rupees only", receipt.AmountInWords)
	assert.Equal(t, "B-204", receipt.RoomNumber)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/payments/9999/reject", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminLedgerEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	_, studentID := s.studentToken(t, "asha@example.com", "9876543210")

	rec, env := s.do(t, http.MethodPut, "/api/admin/students/"+studentID+"/attendance", admin, map[string]int{"days_present": 12})
	require.Equal(t, http.StatusOK, rec.Code)
	var st models.Student
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 2400.0, st.AmountToPay)

	rec, env = s.do(t, http.MethodPut, "/api/admin/students/"+studentID+"/attendance", admin, map[string]int{"days_present": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please enter the day student was present in the hostel", env.Msg)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/students/"+studentID+"/amount/reset", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/students/"+studentID+"/cash", admin, map[string]float64{"amount": 3500})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/admin/students", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.StudentWithStatus
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Paid", rows[0].Status)

	rec, _ = s.do(t, http.MethodPut, "/api/admin/students/missing/room", admin, map[string]string{"room_number": "A-1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/admin/students/"+studentID+"/remind", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats models.PaymentStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 3500.0, stats.TotalRevenue)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/audit-logs?page=1&limit=5", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportPaymentsDownload(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reports/payments.xlsx", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestGalleryEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	rec, env := s.do(t, http.MethodPost, "/api/admin/gallery", admin, map[string]string{
		"public_url": "gallery/front.jpg",
		"secure_url": "https://cdn.example.com/gallery/front.jpg",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var img models.GalleryImage
	require.NoError(t, json.Unmarshal(env.Data, &img))

	rec, env = s.do(t, http.MethodGet, "/api/gallery", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var images []models.GalleryImage
	require.NoError(t, json.Unmarshal(env.Data, &images))
	assert.Len(t, images, 1)

	rec, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/gallery/%d", img.ID), admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/gallery/%d", img.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Image not found", env.Msg)
}

func TestStatusForKinds(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, statusFor(services.KindUnauthorized))
	assert.Equal(t, http.StatusBadRequest, statusFor(services.KindValidation))
	assert.Equal(t, http.StatusConflict, statusFor(services.KindConflict))
	assert.Equal(t, http.StatusNotFound, statusFor(services.KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(services.KindUnexpected))
}

func TestStaleTokenStillReachesPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/gallery", "garbage", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Error)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/exists", "garbage", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := map[string]string{"name": "Asha", "email": "asha@example.com", "phone": "9876543210", "password": "password123"}
	rec, _ = s.do(t, http.MethodPost, "/api/auth/signup", "garbage", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/auth/login", "garbage", map[string]string{
		"email": "asha@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, env.Error)

	rec, env = s.do(t, http.MethodGet, "/api/student/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Msg)
}
