package domain

import (
	"fmt"
	"time"
)

// Payment is money received for a booking. There is no gateway: Process
// applies a local rule only.
type Payment struct {
	ID     string
	Amount float64
	Method PaymentMethod
	Status PaymentStatus
	Date   time.Time
}

// NewPayment constructs a PENDING payment dated at.
func NewPayment(id string, amount float64, method PaymentMethod, at time.Time) *Payment {
	return &Payment{ID: id, Amount: amount, Method: method, Status: PaymentPending, Date: at}
}

// Process completes the payment when the amount is positive and the method
// is known, and marks it FAILED otherwise.
func (p *Payment) Process() bool {
	if p.Amount > 0 && p.Method.Valid() {
		p.Status = PaymentCompleted
		return true
	}
	p.Status = PaymentFailed
	return false
}

func (p *Payment) String() string {
	return fmt.Sprintf("Payment #%s: $%.2f via %s - Status: %s",
		p.ID, p.Amount, p.Method.DisplayName(), p.Status.DisplayName())
}
