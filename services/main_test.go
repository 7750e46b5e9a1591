package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"hostelhub/config"
	"hostelhub/database"
	"hostelhub/mail"
	"hostelhub/models"
	"hostelhub/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := utils.InitializeEncryption("HostelHubTestKey0123456789abcdef"); err != nil {
		panic(err)
	}
	if err := utils.InitializeJWT("test-secret-that-is-long-enough-for-hs256"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type recordingStore struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (s *recordingStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, ref)
	return s.err
}

type memoryCache struct {
	mu          sync.Mutex
	items       map[string]models.Student
	invalidated []string
}

func newMemoryCache() *memoryCache { return &memoryCache{items: map[string]models.Student{}} }

func (c *memoryCache) Get(_ context.Context, id string) (*models.Student, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return &st, true
}

func (c *memoryCache) Set(_ context.Context, st *models.Student) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[st.ID] = *st
}

func (c *memoryCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}

type fixture struct {
	svc    *Service
	db     *gorm.DB
	mailer *recordingMailer
	store  *recordingStore
	cache  *memoryCache
	now    time.Time
	admin  *Session
}

func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:     openTestDB(t),
		mailer: &recordingMailer{},
		store:  &recordingStore{},
		cache:  newMemoryCache(),
		now:    testNow,
	}
	f.svc = New(Deps{
		DB:     f.db,
		Fees:   config.DefaultFees(),
		Cache:  f.cache,
		Mailer: f.mailer,
		Media:  f.store,
		Now:    func() time.Time { return f.now },
	})

	staff, err := f.svc.CreateAdmin(context.Background(), nil, models.CreateAdminRequest{
		Name:     "Warden",
		Email:    "warden@hostel.test",
		Password: "supersecret",
	})
	require.NoError(t, err)
	f.admin = &Session{ID: staff.ID, Email: staff.Email, Role: models.RoleAdmin, IPAddress: "127.0.0.1"}
	return f
}

var phoneSeq int

// signUp creates a student and returns its session.
func (f *fixture) signUp(t *testing.T, name string) *Session {
	t.Helper()
	phoneSeq++
	st, err := f.svc.SignUp(context.Background(), models.SignUpRequest{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@student.test", name, phoneSeq),
		Phone:    fmt.Sprintf("98765%05d", phoneSeq),
		Password: "password123",
	})
	require.NoError(t, err)
	return &Session{ID: st.ID, Email: st.Email, Role: models.RoleStudent}
}

func (f *fixture) student(t *testing.T, id string) models.Student {
	t.Helper()
	var st models.Student
	require.NoError(t, f.db.First(&st, "id = ?", id).Error)
	return st
}

// acceptUPI makes sure an active UPI method exists so students can pay with it.
func (f *fixture) acceptUPI(t *testing.T) {
	t.Helper()
	m := models.PaymentMethod{Type: models.MethodUPI, UPIID: "hostel@okaxis", BeneficiaryName: "Hostel Trust", IsActive: true}
	require.NoError(t, f.db.Where(models.PaymentMethod{Type: models.MethodUPI}).FirstOrCreate(&m).Error)
}

func (f *fixture) submit(t *testing.T, sess *Session, amount float64) *models.Payment {
	t.Helper()
	f.acceptUPI(t)
	p, err := f.svc.Submit(context.Background(), sess, models.SubmitPaymentRequest{
		PaymentMethod:  "UPI",
		ScreenshotRefs: []string{"proofs/" + uuid.NewString() + ".png"},
		Amount:         amount,
		ReferenceNo:    "UTR123",
	})
	require.NoError(t, err)
	return p
}

// registered walks a student through request approval and the registration fee.
func (f *fixture) registered(t *testing.T, sess *Session, room string) {
	t.Helper()
	ctx := context.Background()
	req, err := f.svc.CreateRegistrationRequest(ctx, sess)
	require.NoError(t, err)
	_, err = f.svc.ApproveRegistration(ctx, f.admin, req.ID)
	require.NoError(t, err)
	p := f.submit(t, sess, f.svc.Fees().RegistrationFee)
	_, err = f.svc.Approve(ctx, f.admin, p.ID, room)
	require.NoError(t, err)
}
