// Package services holds the hostel billing and registration engine. Every exported operation
// checks the caller itself and reports failures as *Error.
package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"hostelhub/cache"
	"hostelhub/config"
	"hostelhub/database"
	"hostelhub/mail"
	"hostelhub/media"
	"hostelhub/models"
	"hostelhub/utils"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Fees   config.Fees
	Cache  cache.StudentCache
	Mailer mail.Mailer
	Media  media.Store
	Logger *slog.Logger
	Now    func() time.Time
}

type Service struct {
	db     *gorm.DB
	fees   config.Fees
	cache  cache.StudentCache
	mailer mail.Mailer
	media  media.Store
	logger *slog.Logger
	now    func() time.Time
}

func New(d Deps) *Service {
	s := &Service{
		db:     d.DB,
		fees:   d.Fees,
		cache:  d.Cache,
		mailer: d.Mailer,
		media:  d.Media,
		logger: d.Logger,
		now:    d.Now,
	}
	if s.fees == (config.Fees{}) {
		s.fees = config.DefaultFees()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.mailer == nil {
		s.mailer = mail.LogMailer{Logger: s.logger}
	}
	if s.media == nil {
		s.media = media.Noop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Service) Fees() config.Fees { return s.fees }

// Ping checks that the store answers.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// unexpected logs the underlying failure and hides it from the caller.
func (s *Service) unexpected(op string, err error) *Error {
	s.logger.Error("operation failed", "op", op, "error", err)
	return &Error{Kind: KindUnexpected, Msg: MsgUnexpected, cause: err}
}

// fail passes *Error values through and wraps everything else as unexpected.
func (s *Service) fail(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return s.unexpected(op, err)
}

func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return errValidationFields(utils.FormatValidationError(err))
	}
	return nil
}

func (s *Service) audit(tx *gorm.DB, sess *Session, action, resource, details string) error {
	entry := models.AuditLog{
		Action:    action,
		Resource:  resource,
		Details:   details,
		CreatedAt: s.now(),
	}
	if sess != nil {
		entry.ActorID = sess.ID
		entry.IPAddress = sess.IPAddress
		entry.UserAgent = sess.UserAgent
	}
	return tx.Create(&entry).Error
}

func (s *Service) findStudent(tx *gorm.DB, id string) (*models.Student, error) {
	var student models.Student
	if err := tx.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Student not found")
		}
		return nil, err
	}
	return &student, nil
}

func isUnique(err error) bool { return database.IsUniqueViolation(err) }
