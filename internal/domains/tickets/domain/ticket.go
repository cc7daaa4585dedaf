package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/shared/validation"
)

// SalesTicket records a sale from creation to completion or cancellation.
type SalesTicket struct {
	ID                  int64
	TicketNumber        string `validate:"notblank,max=20"`
	CustomerName        string `validate:"notblank,max=50"`
	TotalAmount         decimal.Decimal
	CreatedDate         time.Time
	CompletedDate       *time.Time
	Status              Status
	Notes               string `validate:"max=500"`
	SalesRepresentative string `validate:"notblank,max=50"`
	IsPaid              bool
	DiscountAmount      *decimal.Decimal
	TaxAmount           *decimal.Decimal
}

// NewSalesTicket builds a New, unpaid ticket created at now with a generated number.
func NewSalesTicket(customer, representative string, total decimal.Decimal, now time.Time) (*SalesTicket, error) {
	t := &SalesTicket{
		TicketNumber:        GenerateTicketNumber(now),
		CustomerName:        strings.TrimSpace(customer),
		SalesRepresentative: strings.TrimSpace(representative),
		TotalAmount:         total,
		CreatedDate:         now,
		Status:              StatusNew,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// GenerateTicketNumber returns ST-YYMMDD-XXXX where XXXX is random upper-case hex.
func GenerateTicketNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("ST-%s-%s", now.UTC().Format("060102"), suffix)
}

// Validate enforces the field constraints, including non-negative amounts.
func (t *SalesTicket) Validate() error {
	return validation.Collect(t, func(fields map[string]string) {
		if t.TotalAmount.IsNegative() {
			fields["TotalAmount"] = "must be greater than or equal to 0"
		}
		if t.DiscountAmount != nil && t.DiscountAmount.IsNegative() {
			fields["DiscountAmount"] = "must be greater than or equal to 0"
		}
		if t.TaxAmount != nil && t.TaxAmount.IsNegative() {
			fields["TaxAmount"] = "must be greater than or equal to 0"
		}
		if _, err := ParseStatus(string(t.Status)); err != nil {
			fields["Status"] = "must be one of [New InProgress Completed Cancelled]"
		}
	})
}

// NetAmount is total minus discount plus tax; absent amounts count as zero.
func (t SalesTicket) NetAmount() decimal.Decimal {
	net := t.TotalAmount
	if t.DiscountAmount != nil {
		net = net.Sub(*t.DiscountAmount)
	}
	if t.TaxAmount != nil {
		net = net.Add(*t.TaxAmount)
	}
	return net
}

// TransitionTo moves the ticket to next. Re-entering the current status changes nothing;
// entering Completed stamps CompletedDate the first time only.
func (t *SalesTicket) TransitionTo(next Status, now time.Time) error {
	if !t.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, t.Status, next)
	}
	if t.Status == next {
		return nil
	}
	t.Status = next
	if next == StatusCompleted && t.CompletedDate == nil {
		completed := now
		t.CompletedDate = &completed
	}
	return nil
}

// MarkPaid flags the ticket as paid.
func (t *SalesTicket) MarkPaid() {
	t.IsPaid = true
}

// CreatedWithin reports whether the ticket was created in [start, end].
func (t SalesTicket) CreatedWithin(start, end time.Time) bool {
	return !t.CreatedDate.Before(start) && !t.CreatedDate.After(end)
}

// Clone copies the ticket including the values behind its optional fields.
func (t SalesTicket) Clone() SalesTicket {
	out := t
	if t.CompletedDate != nil {
		completed := *t.CompletedDate
		out.CompletedDate = &completed
	}
	if t.DiscountAmount != nil {
		discount := *t.DiscountAmount
		out.DiscountAmount = &discount
	}
	if t.TaxAmount != nil {
		tax := *t.TaxAmount
		out.TaxAmount = &tax
	}
	return out
}
