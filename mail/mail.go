// Package mail delivers reminder emails through a transactional email provider.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hostelhub/models"

	"github.com/resend/resend-go/v2"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Resend struct {
	client *resend.Client
	from   string
}

func NewResend(apiKey, from string) *Resend {
	return &Resend{client: resend.NewClient(apiKey), from: from}
}

func (r *Resend) Send(ctx context.Context, msg Message) error {
	_, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used when no API key is set.
type LogMailer struct {
	Logger *slog.Logger
}

func (l LogMailer) Send(_ context.Context, msg Message) error {
	l.Logger.Info("email not sent, no provider configured", "to", msg.To, "subject", msg.Subject)
	return nil
}

const reminderSubject = "Monthly hostel fee payment reminder"

// ReminderMessage builds the fee reminder for a student. The due date is the last day of now's month.
func ReminderMessage(student *models.Student, now time.Time) Message {
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", student.Name)
	b.WriteString("This is a reminder that your monthly hostel fee payment is due. Below are the details:\n\n")
	fmt.Fprintf(&b, "  Due Date: %s\n", lastDay.Format("Mon Jan 02 2006"))
	fmt.Fprintf(&b, "  Amount to be Paid: ₹ %.0f\n\n", student.AmountToPay)
	b.WriteString("Please make the payment at the earliest to avoid any inconvenience.\n\n")
	b.WriteString("For any questions or assistance, kindly contact the hostel warden's office.\n\n")
	b.WriteString("Note: This is an automated email. Please do not reply to this email.\n\n")
	b.WriteString("Thank you,\nHostel Administration\n")

	return Message{To: student.Email, Subject: reminderSubject, Text: b.String()}
}
