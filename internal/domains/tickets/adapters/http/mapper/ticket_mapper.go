package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
)

// SalesTicket is the transport representation of a ticket, net amount included.
type SalesTicket struct {
	ID                  int64            `json:"id"`
	TicketNumber        string           `json:"ticketNumber"`
	CustomerName        string           `json:"customerName"`
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	DiscountAmount      *decimal.Decimal `json:"discountAmount,omitempty"`
	TaxAmount           *decimal.Decimal `json:"taxAmount,omitempty"`
	NetAmount           decimal.Decimal  `json:"netAmount"`
	CreatedDate         time.Time        `json:"createdDate"`
	CompletedDate       *time.Time       `json:"completedDate,omitempty"`
	Status              string           `json:"status"`
	Notes               string           `json:"notes,omitempty"`
	SalesRepresentative string           `json:"salesRepresentative"`
	IsPaid              bool             `json:"isPaid"`
}

type CreateTicket struct {
	TicketNumber        string           `json:"ticketNumber"`
	CustomerName        string           `json:"customerName"`
	SalesRepresentative string           `json:"salesRepresentative"`
	TotalAmount         decimal.Decimal  `json:"totalAmount"`
	DiscountAmount      *decimal.Decimal `json:"discountAmount"`
	TaxAmount           *decimal.Decimal `json:"taxAmount"`
	Notes               string           `json:"notes"`
}

type PatchTicket struct {
	CustomerName        *string          `json:"customerName"`
	SalesRepresentative *string          `json:"salesRepresentative"`
	Notes               *string          `json:"notes"`
	TotalAmount         *decimal.Decimal `json:"totalAmount"`
	DiscountAmount      *decimal.Decimal `json:"discountAmount"`
	TaxAmount           *decimal.Decimal `json:"taxAmount"`
}

type StatusChange struct {
	Status string `json:"status" binding:"required"`
}

// SalesTotal reports revenue for a date window.
type SalesTotal struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Total decimal.Decimal `json:"total"`
}

func ToCreateInput(p CreateTicket) types.CreateTicketInput {
	return types.CreateTicketInput{
		TicketNumber:        p.TicketNumber,
		CustomerName:        p.CustomerName,
		SalesRepresentative: p.SalesRepresentative,
		TotalAmount:         p.TotalAmount,
		DiscountAmount:      p.DiscountAmount,
		TaxAmount:           p.TaxAmount,
		Notes:               p.Notes,
	}
}

func ToMutationInput(p PatchTicket) types.TicketMutationInput {
	return types.TicketMutationInput{
		CustomerName:        p.CustomerName,
		SalesRepresentative: p.SalesRepresentative,
		Notes:               p.Notes,
		TotalAmount:         p.TotalAmount,
		DiscountAmount:      p.DiscountAmount,
		TaxAmount:           p.TaxAmount,
	}
}

func FromDomain(t *domain.SalesTicket) SalesTicket {
	return SalesTicket{
		ID:                  t.ID,
		TicketNumber:        t.TicketNumber,
		CustomerName:        t.CustomerName,
		TotalAmount:         t.TotalAmount,
		DiscountAmount:      t.DiscountAmount,
		TaxAmount:           t.TaxAmount,
		NetAmount:           t.NetAmount(),
		CreatedDate:         t.CreatedDate,
		CompletedDate:       t.CompletedDate,
		Status:              string(t.Status),
		Notes:               t.Notes,
		SalesRepresentative: t.SalesRepresentative,
		IsPaid:              t.IsPaid,
	}
}

func FromDomainList(list []*domain.SalesTicket) []SalesTicket {
	out := make([]SalesTicket, 0, len(list))
	for _, t := range list {
		out = append(out, FromDomain(t))
	}
	return out
}
