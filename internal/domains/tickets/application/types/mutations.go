package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTicketInput carries the fields accepted when opening a ticket. An empty
// TicketNumber asks for a generated one.
type CreateTicketInput struct {
	TicketNumber        string
	CustomerName        string
	SalesRepresentative string
	TotalAmount         decimal.Decimal
	DiscountAmount      *decimal.Decimal
	TaxAmount           *decimal.Decimal
	Notes               string
}

// TicketMutationInput lists the editable fields. Status changes go through UpdateTicketStatus.
type TicketMutationInput struct {
	CustomerName        *string
	SalesRepresentative *string
	Notes               *string
	TotalAmount         *decimal.Decimal
	DiscountAmount      *decimal.Decimal
	TaxAmount           *decimal.Decimal
}

// DateRange bounds a creation-date search, both ends inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}
