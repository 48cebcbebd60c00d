package types

// PaymentStatus values recorded in the payments collection. Status changes are
// appended as new rows; the last row for a payment_id is the current state.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Subscription is a confirmed channel membership. Immutable once written.
type Subscription struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Tariff    string `json:"tariff"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PaymentID string `json:"payment_id"`
}

// Payment is one row of the payment history. payment_id is assigned by the
// gateway (or by Telegram for Stars payments) and is unique per payment.
type Payment struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Tariff    string `json:"tariff"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Question is a support question from a user. Answer stays nil until an
// operator answers it, and is set exactly once after that.
type Question struct {
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username"`
	Message   string  `json:"message"`
	Email     *string `json:"email,omitempty"`
	FileURL   *string `json:"file_url,omitempty"`
	Answer    *string `json:"answer"`
	IsAdmin   bool    `json:"is_admin"`
	CreatedAt string  `json:"created_at"`
}

// Answered reports whether the question has left the unanswered state.
func (q Question) Answered() bool {
	return q.Answer != nil && *q.Answer != ""
}
