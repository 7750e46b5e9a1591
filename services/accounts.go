package services

import (
	"context"
	"errors"
	"strings"

	"hostelhub/models"
	"hostelhub/utils"

	"gorm.io/gorm"
)

const msgDuplicateStudent = "Email or Phone number already exists"

func (s *Service) SignUp(ctx context.Context, req models.SignUpRequest) (*models.Student, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = strings.ToLower(utils.SanitizeString(req.Email))
	req.Phone = utils.SanitizeString(req.Phone)

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errValidation("Invalid credentials")
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if !utils.ValidatePhone(req.Phone) {
		return nil, errValidation("Invalid phone number")
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Student{}).
		Where("email = ? OR phone = ?", req.Email, req.Phone).
		Count(&count).Error; err != nil {
		return nil, s.unexpected("signup.lookup", err)
	}
	if count > 0 {
		return nil, errConflict(msgDuplicateStudent)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, s.unexpected("signup.hash", err)
	}

	student := models.Student{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    hashedPassword,
		AmountToPay: s.fees.MonthlyFee,
	}
	if err := db.Create(&student).Error; err != nil {
		if isUnique(err) {
			return nil, errConflict(msgDuplicateStudent)
		}
		return nil, s.unexpected("signup.create", err)
	}

	s.logger.Info("student registered", "student_id", student.ID, "email", student.Email)
	return &student, nil
}

// Login authenticates a student and issues a session token.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var student models.Student
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Error{Kind: KindUnauthorized, Msg: "Invalid credentials"}
		}
		return nil, s.unexpected("login.lookup", err)
	}
	if !utils.CheckPasswordHash(req.Password, student.Password) {
		return nil, &Error{Kind: KindUnauthorized, Msg: "Invalid credentials"}
	}

	token, err := utils.GenerateToken(student.ID, student.Email, string(models.RoleStudent))
	if err != nil {
		return nil, s.unexpected("login.token", err)
	}
	return &models.LoginResponse{Token: token, ID: student.ID, Name: student.Name, Role: models.RoleStudent}, nil
}

// AdminLogin authenticates hostel staff.
func (s *Service) AdminLogin(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var staff models.HostelStaff
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Error{Kind: KindUnauthorized, Msg: "Invalid credentials"}
		}
		return nil, s.unexpected("admin_login.lookup", err)
	}
	if !utils.CheckPasswordHash(req.Password, staff.Password) {
		return nil, &Error{Kind: KindUnauthorized, Msg: "Invalid credentials"}
	}

	token, err := utils.GenerateToken(staff.ID, staff.Email, string(staff.Role))
	if err != nil {
		return nil, s.unexpected("admin_login.token", err)
	}
	s.logger.Info("admin logged in", "admin_id", staff.ID)
	return &models.LoginResponse{Token: token, ID: staff.ID, Name: staff.Name, Role: staff.Role}, nil
}

func (s *Service) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.HostelStaff{}).Count(&count).Error; err != nil {
		return false, s.unexpected("admin_exists", err)
	}
	return count > 0, nil
}

// CreateAdmin creates a staff account. The very first admin needs no session; after
// that only an admin may add another. The admin count is re-read inside the insert
// transaction, so two anonymous bootstrap calls cannot both succeed.
func (s *Service) CreateAdmin(ctx context.Context, sess *Session, req models.CreateAdminRequest) (*models.HostelStaff, error) {
	req.Name = utils.SanitizeString(req.Name)
	req.Email = strings.ToLower(utils.SanitizeString(req.Email))
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errValidation("Invalid credentials")
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	exists, err := s.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := requireAdmin(sess); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, s.unexpected("create_admin.hash", err)
	}

	staff := models.HostelStaff{Name: req.Name, Email: req.Email, Password: hashedPassword, Role: models.RoleAdmin}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("LOCK TABLE " + models.HostelStaff{}.TableName() + " IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
				return err
			}
		}

		var admins int64
		if err := tx.Model(&models.HostelStaff{}).Count(&admins).Error; err != nil {
			return err
		}
		if admins > 0 {
			if err := requireAdmin(sess); err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.HostelStaff{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errConflict("Admin with this email already exists")
		}

		if err := tx.Create(&staff).Error; err != nil {
			return err
		}
		return s.audit(tx, sess, "CREATE", "ADMIN", "Admin account created: "+staff.Email)
	})
	if err != nil {
		if isUnique(err) {
			return nil, errConflict("Admin with this email already exists")
		}
		return nil, s.fail("create_admin", err)
	}
	return &staff, nil
}

func (s *Service) GetProfile(ctx context.Context, sess *Session) (*models.Student, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	if cached, ok := s.cache.Get(ctx, sess.ID); ok {
		return cached, nil
	}

	var student models.Student
	if err := s.db.WithContext(ctx).Preload("Parent").First(&student, "id = ?", sess.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("User not found")
		}
		return nil, s.unexpected("get_profile", err)
	}
	s.cache.Set(ctx, &student)
	return &student, nil
}

// UpdateProfile stores the caller's profile fields, attaches a parent the first time one is
// given, and marks the profile complete once every required field is present.
func (s *Service) UpdateProfile(ctx context.Context, sess *Session, req models.ProfileUpdateRequest) (*models.Student, error) {
	if err := requireStudent(sess); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	parentPhone := utils.SanitizeString(req.Parent.Phone)
	if parentPhone != "" && !utils.ValidatePhone(parentPhone) {
		return nil, errValidation("Invalid parent phone number")
	}

	var student models.Student
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.findStudent(tx, sess.ID)
		if err != nil {
			return err
		}

		if err := tx.Model(found).Updates(map[string]interface{}{
			"address":  utils.SanitizeString(req.Address),
			"category": utils.SanitizeString(req.Category),
			"course":   utils.SanitizeString(req.Course),
			"college":  utils.SanitizeString(req.College),
		}).Error; err != nil {
			return err
		}

		parentName := utils.SanitizeString(req.Parent.Name)
		if parentName != "" || parentPhone != "" {
			var existing int64
			if err := tx.Model(&models.Parent{}).Where("student_id = ?", sess.ID).Count(&existing).Error; err != nil {
				return err
			}
			if existing == 0 {
				parent := models.Parent{StudentID: sess.ID, Name: parentName, Phone: parentPhone}
				if email := utils.SanitizeString(req.Parent.Email); email != "" {
					parent.Email = &email
				}
				if err := tx.Create(&parent).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Preload("Parent").First(&student, "id = ?", sess.ID).Error; err != nil {
			return err
		}
		if complete := student.HasCompleteProfile(); complete != student.ProfileSetup {
			if err := tx.Model(&student).Update("profile_setup", complete).Error; err != nil {
				return err
			}
			student.ProfileSetup = complete
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("update_profile", err)
	}

	s.cache.Invalidate(ctx, sess.ID)
	return &student, nil
}

func (s *Service) ParentInfo(ctx context.Context, sess *Session) (models.ParentInfo, error) {
	if err := requireStudent(sess); err != nil {
		return models.ParentInfo{}, err
	}

	var parent models.Parent
	err := s.db.WithContext(ctx).Where("student_id = ?", sess.ID).First(&parent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ParentInfo{}, nil
		}
		return models.ParentInfo{}, s.unexpected("parent_info", err)
	}

	info := models.ParentInfo{Name: parent.Name, Phone: parent.Phone}
	if parent.Email != nil {
		info.Email = *parent.Email
	}
	return info, nil
}
