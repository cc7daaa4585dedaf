package memory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/recordkeeper/internal/domains/tickets/domain"
	"github.com/Apurer/recordkeeper/internal/domains/tickets/ports"
	"github.com/Apurer/recordkeeper/internal/shared/entitystore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps sales tickets in process memory keyed by id and ticket number.
type Repository struct {
	store *entitystore.Store[domain.SalesTicket]
}

func NewRepository(opts ...entitystore.Option) *Repository {
	schema := entitystore.Schema[domain.SalesTicket]{
		ID:         func(t domain.SalesTicket) int64 { return t.ID },
		SetID:      func(t *domain.SalesTicket, id int64) { t.ID = id },
		NaturalKey: func(t domain.SalesTicket) string { return strings.TrimSpace(t.TicketNumber) },
		Created: func(t *domain.SalesTicket, at time.Time) {
			if t.CreatedDate.IsZero() {
				t.CreatedDate = at
			}
		},
		Clone: domain.SalesTicket.Clone,
	}
	return &Repository{store: entitystore.New(schema, opts...)}
}

func (r *Repository) Add(_ context.Context, ticket *domain.SalesTicket) (*domain.SalesTicket, error) {
	if ticket == nil {
		return nil, errors.New("ticket is nil")
	}
	saved, err := r.store.Add(*ticket)
	if err != nil {
		return nil, translate(err)
	}
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.SalesTicket, error) {
	ticket, ok := r.store.GetByID(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &ticket, nil
}

func (r *Repository) GetByNumber(_ context.Context, number string) (*domain.SalesTicket, error) {
	key := strings.TrimSpace(number)
	ticket, ok := r.store.FindOne(func(t domain.SalesTicket) bool { return t.TicketNumber == key })
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &ticket, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.SalesTicket, error) {
	return r.listWhere(nil), nil
}

func (r *Repository) ListByStatus(_ context.Context, status domain.Status) ([]*domain.SalesTicket, error) {
	return r.listWhere(func(t domain.SalesTicket) bool { return t.Status == status }), nil
}

func (r *Repository) ListByDateRange(_ context.Context, start, end time.Time) ([]*domain.SalesTicket, error) {
	return r.listWhere(func(t domain.SalesTicket) bool { return t.CreatedWithin(start, end) }), nil
}

func (r *Repository) TotalSales(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.store.ListWhere(func(t domain.SalesTicket) bool {
		return t.Status == domain.StatusCompleted && t.CreatedWithin(start, end)
	}, nil) {
		total = total.Add(t.NetAmount())
	}
	return total, nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate ports.Mutation) (*domain.SalesTicket, error) {
	if mutate == nil {
		return nil, errors.New("mutation is nil")
	}
	updated, found, err := r.store.UpdateFields(id, func(t *domain.SalesTicket) error {
		created := t.CreatedDate
		if err := mutate(t); err != nil {
			return err
		}
		t.CreatedDate = created
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// Len reports how many tickets were ever opened.
func (r *Repository) Len() int {
	return r.store.Len()
}

func (r *Repository) listWhere(pred func(domain.SalesTicket) bool) []*domain.SalesTicket {
	list := r.store.ListWhere(pred, newestFirst)
	out := make([]*domain.SalesTicket, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out
}

func newestFirst(a, b domain.SalesTicket) int {
	return b.CreatedDate.Compare(a.CreatedDate)
}

func translate(err error) error {
	if errors.Is(err, entitystore.ErrConflict) {
		return ports.ErrConflict
	}
	return err
}
