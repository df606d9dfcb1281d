package model

// PaymentStatus describes how far along a site's payments are.
type PaymentStatus string

const (
	// PaymentStatusPaid means the site has been paid in full.
	PaymentStatusPaid PaymentStatus = "Paid"
	// PaymentStatusPartial means the site has received partial payment.
	PaymentStatusPartial PaymentStatus = "Partially Paid"
	// PaymentStatusPending means no payment has been received yet.
	PaymentStatusPending PaymentStatus = "Pending"
)

// Payment is an incoming payment recorded on the Main tab.
type Payment struct {
	ID      string
	Date    string
	Site    string
	Mode    string
	Remarks string
	User    string
	Amount  float64
}

// Expense is any Main-tab transaction not classified as a payment.
type Expense struct {
	ID          string
	Date        string
	Category    string
	Description string
	User        string
	Amount      float64
}

// PaymentHistory is one payment attributed to a client or a labourer.
// Task is optional; the sheet carries no task column, so it is only set on
// locally constructed entries.
type PaymentHistory struct {
	ID          string
	Date        string
	Site        string
	Task        string
	Description string
	User        string
	Amount      float64
}

// Labour is a worker from the Labour tab. Paid and Balance are always
// recomputed from the reconstructed payment history; the sheet's own
// Paid/Balance columns are ignored.
type Labour struct {
	ID             string
	Name           string
	Role           string
	Salary         float64
	Paid           float64
	Balance        float64
	PaymentHistory []PaymentHistory
}

// Client is a party from the Parties tab. TotalPaid is recomputed from
// history; Balance is taken as-is from the sheet.
type Client struct {
	ID             string
	Name           string
	Contact        string
	SiteName       string
	TotalPaid      float64
	Balance        float64
	PaymentHistory []PaymentHistory
}

// Site is a project site from the Sites tab.
type Site struct {
	ID            string
	SiteName      string
	PaymentStatus PaymentStatus
	StartDate     string
	EndDate       string
	Progress      float64
	ProjectValue  float64
}

// ExpenseCategory is a distinct category name observed across Main-tab rows.
type ExpenseCategory struct {
	ID   string
	Name string
}

// UserBalance aggregates payments and expenses per operator.
type UserBalance struct {
	User             string
	TotalPayments    float64
	TotalExpenses    float64
	Balance          float64
	TransactionCount int
}
