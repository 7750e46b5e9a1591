package mail

import (
	"testing"
	"time"

	"hostelhub/models"

	"github.com/stretchr/testify/assert"
)

func TestReminderMessageUsesLastDayOfMonth(t *testing.T) {
	student := &models.Student{Name: "Asha", Email: "asha@example.com", AmountToPay: 2400}
	now := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

	msg := ReminderMessage(student, now)

	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, reminderSubject, msg.Subject)
	assert.Contains(t, msg.Text, "Dear Asha")
	assert.Contains(t, msg.Text, "Due Date: Thu Feb 29 2024")
	assert.Contains(t, msg.Text, "₹ 2400")
}

func TestReminderMessageDecemberRollsOver(t *testing.T) {
	now := time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC)
	msg := ReminderMessage(&models.Student{Name: "Ravi", AmountToPay: 3500}, now)
	assert.Contains(t, msg.Text, "Due Date: Tue Dec 31 2024")
}
