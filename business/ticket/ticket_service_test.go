package ticket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myTourGuide/domain"
)

type fakeTicketRepo struct {
	tickets map[uint64]domain.Ticket
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	ticket.ID = uint64(len(f.tickets) + 1)
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) FindByID(ctx context.Context, id uint64) (domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.Ticket{}, errors.New("ticket not found")
	}
	return ticket, nil
}

func (f *fakeTicketRepo) FindByScenicID(ctx context.Context, scenicID uint64) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.ScenicID == scenicID {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) FindHot(ctx context.Context, limit int) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.IsHot && ticket.Bookable && len(out) < limit {
			out = append(out, ticket)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return errors.New("ticket not found")
	}
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.tickets[id]; !ok {
		return errors.New("ticket not found")
	}
	delete(f.tickets, id)
	return nil
}

type fakeSpots struct{ names map[uint64]string }

func (f fakeSpots) FindByID(ctx context.Context, id uint64) (domain.ScenicSpot, error) {
	name, ok := f.names[id]
	if !ok {
		return domain.ScenicSpot{}, errors.New("scenic spot not found")
	}
	return domain.ScenicSpot{ID: id, Name: name}, nil
}

type fakeSales struct {
	counts map[uint64]int
	err    error
}

func (f fakeSales) SalesCountByTicketIDs(ctx context.Context, ticketIDs []uint64) (map[uint64]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

func seededService(sales fakeSales) (*ticketService, *fakeTicketRepo) {
	repo := &fakeTicketRepo{tickets: map[uint64]domain.Ticket{
		1: {ID: 1, ScenicID: 10, TicketName: "Adult", Price: 50, Stock: 100, Bookable: true},
		2: {ID: 2, ScenicID: 10, TicketName: "Child", Price: 25, Stock: 100, Bookable: true, IsHot: true},
		3: {ID: 3, ScenicID: 11, TicketName: "Combo", Price: 80, Stock: 20, Bookable: true},
	}}
	spots := fakeSpots{names: map[uint64]string{10: "West Lake", 11: "Old Town"}}
	return NewTicketService(repo, spots, sales), repo
}

func TestGetTicketsByScenicIDEnriched(t *testing.T) {
	svc, _ := seededService(fakeSales{counts: map[uint64]int{1: 7, 2: 42}})

	details, err := svc.GetTicketsByScenicID(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, details, 2)

	for _, d := range details {
		assert.Equal(t, "West Lake", d.ScenicName)
		switch d.ID {
		case 1:
			assert.Equal(t, 7, d.SalesCount)
		case 2:
			assert.Equal(t, 42, d.SalesCount)
		}
	}
}

func TestGetTicketByIDSurvivesSalesFailure(t *testing.T) {
	svc, _ := seededService(fakeSales{err: errors.New("aggregate failed")})

	detail, err := svc.GetTicketByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Old Town", detail.ScenicName)
	assert.Zero(t, detail.SalesCount)
}

func TestGetHotTickets(t *testing.T) {
	svc, _ := seededService(fakeSales{counts: map[uint64]int{}})

	details, err := svc.GetHotTickets(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, details, 1)
	assert.Equal(t, uint64(2), details[0].ID)
}

func TestCreateTicketValidation(t *testing.T) {
	svc, _ := seededService(fakeSales{counts: map[uint64]int{}})

	_, err := svc.CreateTicket(context.Background(), &domain.Ticket{ScenicID: 10})
	assert.EqualError(t, err, "ticket name is required")

	_, err = svc.CreateTicket(context.Background(), &domain.Ticket{TicketName: "x"})
	assert.EqualError(t, err, "scenic ID is required")

	_, err = svc.CreateTicket(context.Background(), &domain.Ticket{TicketName: "x", ScenicID: 10, Price: -1})
	assert.EqualError(t, err, "price cannot be negative")

	_, err = svc.CreateTicket(context.Background(), &domain.Ticket{TicketName: "x", ScenicID: 99})
	assert.EqualError(t, err, "scenic spot not found")

	created, err := svc.CreateTicket(context.Background(), &domain.Ticket{TicketName: "Evening", ScenicID: 10, Price: 30, Stock: 5})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestDeleteTicket(t *testing.T) {
	svc, repo := seededService(fakeSales{counts: map[uint64]int{}})

	require.NoError(t, svc.DeleteTicket(context.Background(), 1))
	_, ok := repo.tickets[1]
	assert.False(t, ok)

	err := svc.DeleteTicket(context.Background(), 1)
	assert.EqualError(t, err, "ticket not found")
}
