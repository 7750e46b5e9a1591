package services

import "hostelhub/models"

// Session is the resolved caller of an operation. A nil *Session is an anonymous caller.
type Session struct {
	ID        string
	Email     string
	Role      models.Role
	IPAddress string
	UserAgent string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

func requireSession(sess *Session) error {
	if sess == nil || sess.ID == "" {
		return errUnauthorized()
	}
	return nil
}

func requireAdmin(sess *Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if sess.Role != models.RoleAdmin {
		return errUnauthorized()
	}
	return nil
}

// requireStudent admits only students. Student operations read the student id from the
// session and never from the request.
func requireStudent(sess *Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if sess.Role != models.RoleStudent {
		return errUnauthorized()
	}
	return nil
}
