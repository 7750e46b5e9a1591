// Package reports renders payment data for download: spreadsheets for the office and amounts in
// words for receipts.
package reports

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"hostelhub/models"

	"github.com/divan/num2words"
	"github.com/xuri/excelize/v2"
)

const (
	studentsSheet = "Students"
	revenueSheet  = "Revenue"
)

type PaymentsReport struct {
	GeneratedAt time.Time
	Stats       models.PaymentStats
	Students    []models.StudentWithStatus
}

// AmountInWords spells a rupee amount the way it is printed on receipts.
func AmountInWords(amount float64) string {
	rupees := int(amount)
	paise := int(math.Round((amount - float64(rupees)) * 100))
	words := capitalize(num2words.Convert(rupees)) + " rupees"
	if paise > 0 {
		words += " and " + num2words.Convert(paise) + " paise"
	}
	return words + " only"
}

// Period formats a month/year pair, or "One-time" when the payment has none.
func Period(month, year *int) string {
	if month == nil || year == nil {
		return "One-time"
	}
	return fmt.Sprintf("%s %d", time.Month(*month).String(), *year)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// WritePaymentsWorkbook writes the student status and revenue sheets as XLSX.
func WritePaymentsWorkbook(w io.Writer, rep PaymentsReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", studentsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Name", "Email", "Phone", "Room", "Amount To Pay", "Registered", "Status", "Last Payment"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(studentsSheet, cell, header)
	}
	for i, st := range rep.Students {
		row := i + 2
		room := ""
		if st.RoomNumber != nil {
			room = *st.RoomNumber
		}
		f.SetCellValue(studentsSheet, fmt.Sprintf("A%d", row), st.Name)
		f.SetCellValue(studentsSheet, fmt.Sprintf("B%d", row), st.Email)
		f.SetCellValue(studentsSheet, fmt.Sprintf("C%d", row), st.Phone)
		f.SetCellValue(studentsSheet, fmt.Sprintf("D%d", row), room)
		f.SetCellValue(studentsSheet, fmt.Sprintf("E%d", row), st.AmountToPay)
		f.SetCellValue(studentsSheet, fmt.Sprintf("F%d", row), yesNo(st.IsRegistered))
		f.SetCellValue(studentsSheet, fmt.Sprintf("G%d", row), st.Status)
		if len(st.Payments) > 0 {
			f.SetCellValue(studentsSheet, fmt.Sprintf("H%d", row), st.Payments[0].CreatedAt.Format("02.01.2006"))
		}
	}

	if _, err := f.NewSheet(revenueSheet); err != nil {
		return fmt.Errorf("create revenue sheet: %w", err)
	}
	f.SetCellValue(revenueSheet, "A1", "Month")
	f.SetCellValue(revenueSheet, "B1", "Revenue")
	for i, m := range rep.Stats.RevenueTrend {
		row := i + 2
		f.SetCellValue(revenueSheet, fmt.Sprintf("A%d", row), m.Label)
		f.SetCellValue(revenueSheet, fmt.Sprintf("B%d", row), m.Revenue)
	}
	summary := len(rep.Stats.RevenueTrend) + 3
	f.SetCellValue(revenueSheet, fmt.Sprintf("A%d", summary), "Total monthly fee revenue")
	f.SetCellValue(revenueSheet, fmt.Sprintf("B%d", summary), rep.Stats.TotalRevenue)
	f.SetCellValue(revenueSheet, fmt.Sprintf("A%d", summary+1), "Pending payments")
	f.SetCellValue(revenueSheet, fmt.Sprintf("B%d", summary+1), rep.Stats.PendingPayments)
	f.SetCellValue(revenueSheet, fmt.Sprintf("A%d", summary+2), "Generated at")
	f.SetCellValue(revenueSheet, fmt.Sprintf("B%d", summary+2), rep.GeneratedAt.Format("02.01.2006 15:04"))

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
