package recordserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	tickethttpmapper "github.com/Apurer/recordkeeper/internal/domains/tickets/adapters/http/mapper"
	ticketstypes "github.com/Apurer/recordkeeper/internal/domains/tickets/application/types"
	ticketsdomain "github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	ticketsports "github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	apierrors "github.com/Apurer/recordkeeper/internal/shared/errors"
)

var errRangeRequired = errors.New("from and to are required")

// TicketAPI wires HTTP transport with the sales tickets bounded context and its checkout workflow.
type TicketAPI struct {
	service  ticketsports.Service
	checkout ticketsports.CheckoutOrchestrator
}

// NewTicketAPI creates a TicketAPI. checkout may be nil, in which case the checkout route
// answers 501.
func NewTicketAPI(service ticketsports.Service, checkout ticketsports.CheckoutOrchestrator) TicketAPI {
	return TicketAPI{service: service, checkout: checkout}
}

// Post /v1/tickets
// Open a sales ticket
func (api *TicketAPI) CreateTicket(c *gin.Context) {
	var payload tickethttpmapper.CreateTicket
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ticket, err := api.service.CreateTicket(c.Request.Context(), tickethttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tickethttpmapper.FromDomain(ticket))
}

// Get /v1/tickets
// List tickets newest first, optionally filtered by status or creation window
func (api *TicketAPI) ListTickets(c *gin.Context) {
	ctx := c.Request.Context()
	start, end, hasRange, ok := queryDateRange(c)
	if !ok {
		return
	}
	var (
		tickets []*ticketsdomain.SalesTicket
		err     error
	)
	switch status := c.Query("status"); {
	case status != "":
		tickets, err = api.service.ListTicketsByStatus(ctx, ticketsdomain.Status(status))
		if err == nil && hasRange {
			tickets = createdWithin(tickets, start, end)
		}
	case hasRange:
		tickets, err = api.service.ListTicketsByDateRange(ctx, ticketstypes.DateRange{Start: start, End: end})
	default:
		tickets, err = api.service.ListTickets(ctx)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickethttpmapper.FromDomainList(tickets))
}

func createdWithin(tickets []*ticketsdomain.SalesTicket, start, end time.Time) []*ticketsdomain.SalesTicket {
	out := tickets[:0]
	for _, ticket := range tickets {
		if ticket.CreatedWithin(start, end) {
			out = append(out, ticket)
		}
	}
	return out
}

// Get /v1/tickets/sales
// Sum the net amount of completed tickets created within a window
func (api *TicketAPI) TotalSales(c *gin.Context) {
	start, end, hasRange, ok := queryDateRange(c)
	if !ok {
		return
	}
	if !hasRange {
		respondError(c, http.StatusBadRequest, errRangeRequired)
		return
	}
	total, err := api.service.TotalSales(c.Request.Context(), ticketstypes.DateRange{Start: start, End: end})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickethttpmapper.SalesTotal{From: start, To: end, Total: total})
}

// Get /v1/tickets/number/:number
func (api *TicketAPI) GetTicketByNumber(c *gin.Context) {
	number := c.Param("number")
	ticket, err := api.service.GetTicketByNumber(c.Request.Context(), number)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ticket == nil {
		respondNotFound(c, "ticket", number)
		return
	}
	c.JSON(http.StatusOK, tickethttpmapper.FromDomain(ticket))
}

// Get /v1/tickets/:ticketId
func (api *TicketAPI) GetTicketByID(c *gin.Context) {
	id, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}
	api.respondTicket(c, id)
}

// Patch /v1/tickets/:ticketId
// Update customer, representative, notes or amounts
func (api *TicketAPI) UpdateTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}
	var payload tickethttpmapper.PatchTicket
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	ticket, err := api.service.UpdateTicket(c.Request.Context(), id, tickethttpmapper.ToMutationInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ticket == nil {
		respondNotFound(c, "ticket", id)
		return
	}
	c.JSON(http.StatusOK, tickethttpmapper.FromDomain(ticket))
}

// Put /v1/tickets/:ticketId/status
// Move a ticket through its lifecycle
func (api *TicketAPI) UpdateTicketStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}
	var payload tickethttpmapper.StatusChange
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	api.transition(c, id, func(ctx context.Context) (bool, error) {
		return api.service.UpdateTicketStatus(ctx, id, ticketsdomain.Status(payload.Status))
	})
}

// Post /v1/tickets/:ticketId/start
func (api *TicketAPI) StartTicket(c *gin.Context) {
	api.transitionByID(c, api.service.StartTicket)
}

// Post /v1/tickets/:ticketId/complete
func (api *TicketAPI) CompleteTicket(c *gin.Context) {
	api.transitionByID(c, api.service.CompleteTicket)
}

// Post /v1/tickets/:ticketId/cancel
func (api *TicketAPI) CancelTicket(c *gin.Context) {
	api.transitionByID(c, api.service.CancelTicket)
}

// Post /v1/tickets/:ticketId/pay
// Record payment for a ticket
func (api *TicketAPI) MarkTicketAsPaid(c *gin.Context) {
	api.transitionByID(c, api.service.MarkTicketAsPaid)
}

// Post /v1/tickets/:ticketId/checkout
// Pay and complete a ticket through the checkout workflow
func (api *TicketAPI) CheckoutTicket(c *gin.Context) {
	id, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}
	if api.checkout == nil {
		apierrors.Respond(c, apierrors.ErrNotImplemented.WithDetail("ticket checkout is not configured"))
		return
	}
	ticket, err := api.checkout.CheckoutTicket(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ticket == nil {
		respondNotFound(c, "ticket", id)
		return
	}
	c.JSON(http.StatusOK, tickethttpmapper.FromDomain(ticket))
}

func (api *TicketAPI) transitionByID(c *gin.Context, op func(context.Context, int64) (bool, error)) {
	id, ok := parseIDParam(c, "ticketId")
	if !ok {
		return
	}
	api.transition(c, id, func(ctx context.Context) (bool, error) {
		return op(ctx, id)
	})
}

// transition runs op and answers with the ticket as it stands afterwards.
func (api *TicketAPI) transition(c *gin.Context, id int64, op func(context.Context) (bool, error)) {
	found, err := op(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		respondNotFound(c, "ticket", id)
		return
	}
	api.respondTicket(c, id)
}

func (api *TicketAPI) respondTicket(c *gin.Context, id int64) {
	ticket, err := api.service.GetTicketByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if ticket == nil {
		respondNotFound(c, "ticket", id)
		return
	}
	c.JSON(http.StatusOK, tickethttpmapper.FromDomain(ticket))
}
