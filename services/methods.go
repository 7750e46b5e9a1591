package services

import (
	"context"
	"errors"
	"strings"

	"hostelhub/models"
	"hostelhub/utils"

	"gorm.io/gorm"
)

func checkMethodFields(req *models.PaymentMethodRequest) error {
	switch req.Type {
	case models.MethodUPI:
		if req.UPIID == "" || req.BeneficiaryName == "" {
			return errValidation("Invalid data")
		}
		if !utils.ValidateUPI(req.UPIID) {
			return errValidation("Invalid UPI id")
		}
	case models.MethodNetBanking:
		if req.AccountNumber == "" || req.IFSC == "" || req.BankName == "" || req.BeneficiaryName == "" {
			return errValidation("Invalid data")
		}
		if !utils.ValidateIFSC(req.IFSC) {
			return errValidation("Invalid IFSC code")
		}
		req.IFSC = strings.ToUpper(req.IFSC)
	case models.MethodQR:
		if req.QRCode == "" {
			return errValidation("Invalid data")
		}
	}
	return nil
}

// revealed returns a copy of m with the account number decrypted for display.
func revealed(m models.PaymentMethod) (models.PaymentMethod, error) {
	plain, err := utils.DecryptAccountNumber(m.AccountNumber)
	if err != nil {
		return m, err
	}
	m.AccountNumber = plain
	return m, nil
}

func revealAll(methods []models.PaymentMethod) ([]models.PaymentMethod, error) {
	out := make([]models.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		r, err := revealed(m)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) ListPaymentMethods(ctx context.Context, sess *Session) ([]models.PaymentMethod, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	var methods []models.PaymentMethod
	if err := s.db.WithContext(ctx).Order("type ASC").Find(&methods).Error; err != nil {
		return nil, s.unexpected("list_payment_methods", err)
	}
	out, err := revealAll(methods)
	if err != nil {
		return nil, s.unexpected("list_payment_methods.decrypt", err)
	}
	return out, nil
}

// ActivePaymentMethods lists what a signed-in caller may pay with.
func (s *Service) ActivePaymentMethods(ctx context.Context, sess *Session) ([]models.PaymentMethod, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	var methods []models.PaymentMethod
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("type ASC").Find(&methods).Error; err != nil {
		return nil, s.unexpected("active_payment_methods", err)
	}
	out, err := revealAll(methods)
	if err != nil {
		return nil, s.unexpected("active_payment_methods.decrypt", err)
	}
	return out, nil
}

// UpsertPaymentMethod keeps at most one method per type: an existing one is updated in place.
// The bool result is true when a new method was created.
func (s *Service) UpsertPaymentMethod(ctx context.Context, sess *Session, req models.PaymentMethodRequest) (*models.PaymentMethod, bool, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, false, err
	}
	req.Type = models.MethodType(strings.ToUpper(utils.SanitizeString(string(req.Type))))
	if req.Type == "" {
		return nil, false, errValidation("Invalid data")
	}
	if err := validate(req); err != nil {
		return nil, false, err
	}
	if err := checkMethodFields(&req); err != nil {
		return nil, false, err
	}

	encryptedAccount, err := utils.EncryptAccountNumber(req.AccountNumber)
	if err != nil {
		return nil, false, s.unexpected("upsert_payment_method.encrypt", err)
	}

	var method models.PaymentMethod
	created := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("type = ?", req.Type).First(&method).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			method = models.PaymentMethod{Type: req.Type, IsActive: true}
		case err != nil:
			return err
		}

		method.UPIID = req.UPIID
		method.BeneficiaryName = req.BeneficiaryName
		method.AccountNumber = encryptedAccount
		method.IFSC = req.IFSC
		method.BankName = req.BankName
		method.QRCode = req.QRCode

		if err := tx.Save(&method).Error; err != nil {
			return err
		}
		action := "UPDATE"
		if created {
			action = "CREATE"
		}
		return s.audit(tx, sess, action, "PAYMENT_METHOD", "Payment method "+string(req.Type))
	})
	if err != nil {
		if isUnique(err) {
			return nil, false, errConflict("Payment method already exists")
		}
		return nil, false, s.fail("upsert_payment_method", err)
	}

	out, err := revealed(method)
	if err != nil {
		return nil, false, s.unexpected("upsert_payment_method.decrypt", err)
	}
	return &out, created, nil
}

// TogglePaymentMethod flips whether students can see a method.
func (s *Service) TogglePaymentMethod(ctx context.Context, sess *Session, id string) (*models.PaymentMethod, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	var method models.PaymentMethod
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&method, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Method not found")
			}
			return err
		}
		method.IsActive = !method.IsActive
		if err := tx.Model(&method).Update("is_active", method.IsActive).Error; err != nil {
			return err
		}
		state := "deactivated"
		if method.IsActive {
			state = "activated"
		}
		return s.audit(tx, sess, "UPDATE", "PAYMENT_METHOD", "Payment method "+string(method.Type)+" "+state)
	})
	if err != nil {
		return nil, s.fail("toggle_payment_method", err)
	}

	out, err := revealed(method)
	if err != nil {
		return nil, s.unexpected("toggle_payment_method.decrypt", err)
	}
	return &out, nil
}
