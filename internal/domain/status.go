package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BookingStatus is the lifecycle state of a Booking. It is persisted by name.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// bookingStatusAliases maps alternate spellings found in older data files.
var bookingStatusAliases = map[string]BookingStatus{
	"CANCELED": BookingCancelled,
}

// BookingStatuses lists every status in display order.
func BookingStatuses() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}
}

// ParseBookingStatus resolves a status by enum name, case-insensitively.
// "CANCELED" is accepted as an alias of CANCELLED.
func ParseBookingStatus(s string) (BookingStatus, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := bookingStatusAliases[name]; ok {
		return alias, nil
	}
	st := BookingStatus(name)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
	}
	return st, nil
}

// Valid reports whether s is one of the declared statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// DisplayName returns the human-readable label, e.g. "Confirmed".
func (s BookingStatus) DisplayName() string {
	return titleCase(string(s))
}

func (s BookingStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *BookingStatus) UnmarshalText(b []byte) error {
	st, err := ParseBookingStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodPayPal       PaymentMethod = "PAYPAL"
	MethodCash         PaymentMethod = "CASH"
)

// PaymentMethods lists every method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodPayPal, MethodCash}
}

// ParsePaymentMethod resolves a method by enum name, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, s)
	}
	return m, nil
}

// Valid reports whether m is one of the declared methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodPayPal, MethodCash:
		return true
	}
	return false
}

// DisplayName returns the human-readable label, e.g. "Credit Card".
func (m PaymentMethod) DisplayName() string {
	if m == MethodPayPal {
		return "PayPal"
	}
	return titleCase(string(m))
}

func (m PaymentMethod) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	pm, err := ParsePaymentMethod(string(b))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// PaymentStatus is the processing state of a Payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus resolves a payment status by enum name, case-insensitively.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown payment status %q", ErrValidation, s)
	}
	return st, nil
}

// Valid reports whether s is one of the declared payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// DisplayName returns the human-readable label, e.g. "Refunded".
func (s PaymentStatus) DisplayName() string {
	return titleCase(string(s))
}

func (s PaymentStatus) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *PaymentStatus) UnmarshalText(b []byte) error {
	st, err := ParsePaymentStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// titleCase turns an enum name like "BANK_TRANSFER" into "Bank Transfer".
// A Caser is stateful, so one is built per call.
func titleCase(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(name), "_", " "))
}
