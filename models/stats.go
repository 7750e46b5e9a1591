package models

type MonthRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type PaymentStats struct {
	TotalRevenue    float64        `json:"total_revenue"`
	PendingPayments int64          `json:"pending_payments"`
	RevenueTrend    []MonthRevenue `json:"revenue_trend"`
}

type ComplaintCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Closed     int `json:"closed"`
	Total      int `json:"total"`
}

type Overview struct {
	TotalStudents  int             `json:"total_students"`
	PaidStudents   int             `json:"paid_students"`
	UnpaidStudents int             `json:"unpaid_students"`
	Complaints     ComplaintCounts `json:"complaints"`
}
