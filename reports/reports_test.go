package reports

import (
	"bytes"
	"testing"
	"time"

	"hostelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "Three thousand five hundred rupees only", AmountInWords(3500))
	assert.Equal(t, "Six thousand rupees only", AmountInWords(6000))
	assert.Equal(t, "Two hundred rupees and fifty paise only", AmountInWords(200.5))
}

func TestPeriod(t *testing.T) {
	m, y := 3, 2024
	assert.Equal(t, "March 2024", Period(&m, &y))
	assert.Equal(t, "One-time", Period(nil, nil))
}

func TestWritePaymentsWorkbook(t *testing.T) {
	room := "A-12"
	rep := PaymentsReport{
		GeneratedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Stats: models.PaymentStats{
			TotalRevenue:    7000,
			PendingPayments: 1,
			RevenueTrend: []models.MonthRevenue{
				{Year: 2024, Month: 2, Label: "Feb 2024", Revenue: 3500},
				{Year: 2024, Month: 3, Label: "Mar 2024", Revenue: 9500},
			},
		},
		Students: []models.StudentWithStatus{
			{Student: models.Student{Name: "Asha", Email: "asha@example.com", Phone: "9876543210", RoomNumber: &room, AmountToPay: 3500, IsRegistered: true}, Status: "Paid"},
			{Student: models.Student{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543211", AmountToPay: 3500}, Status: "Unpaid"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePaymentsWorkbook(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(studentsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Asha", name)

	room2, _ := f.GetCellValue(studentsSheet, "D2")
	assert.Equal(t, "A-12", room2)

	status, _ := f.GetCellValue(studentsSheet, "G3")
	assert.Equal(t, "Unpaid", status)

	label, _ := f.GetCellValue(revenueSheet, "A3")
	assert.Equal(t, "Mar 2024", label)

	total, _ := f.GetCellValue(revenueSheet, "B5")
	assert.Equal(t, "7000", total)
}
