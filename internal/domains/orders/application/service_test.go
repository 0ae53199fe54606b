package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cafe-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/cafe-api/internal/domains/orders/domain"
	"github.com/Apurer/cafe-api/internal/domains/orders/ports"
)

type fakeCatalog struct {
	products map[int64]ports.PricedProduct
	calls    int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]ports.PricedProduct{
		1: {ID: 1, Name: "Latte", UnitPrice: decimal.RequireFromString("4.50")},
		2: {ID: 2, Name: "Croissant", UnitPrice: decimal.RequireFromString("3.00")},
		3: {ID: 3, Name: "Drip", UnitPrice: decimal.RequireFromString("0.10")},
	}}
}

func (f *fakeCatalog) Prices(_ context.Context, ids []int64) (map[int64]ports.PricedProduct, error) {
	f.calls++
	out := map[int64]ports.PricedProduct{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeDirectory struct {
	guests  map[string]int64
	members map[int64]bool
	nextID  int64
	creates int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{guests: map[string]int64{}, members: map[int64]bool{100: true}, nextID: 500}
}

func (f *fakeDirectory) ResolveGuest(_ context.Context, contact ports.GuestContact) (ports.Owner, error) {
	email := strings.ToLower(strings.TrimSpace(contact.Email))
	if !strings.Contains(email, "@") {
		return ports.Owner{}, ports.ErrInvalidContact
	}
	if id, ok := f.guests[email]; ok {
		return ports.Owner{ID: id, Role: "GUEST"}, nil
	}
	f.nextID++
	f.creates++
	f.guests[email] = f.nextID
	return ports.Owner{ID: f.nextID, Role: "GUEST"}, nil
}

func (f *fakeDirectory) Member(_ context.Context, id int64) (ports.Owner, error) {
	if !f.members[id] {
		return ports.Owner{}, ports.ErrOwnerNotFound
	}
	return ports.Owner{ID: id, Role: "CUSTOMER"}, nil
}

type recordingPublisher struct {
	events []domain.OrderPlaced
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, event domain.OrderPlaced) error {
	p.events = append(p.events, event)
	return p.err
}

type fixture struct {
	svc       *Service
	repo      *memory.Repository
	catalog   *fakeCatalog
	directory *fakeDirectory
	events    *recordingPublisher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		repo:      memory.NewRepository(),
		catalog:   newFakeCatalog(),
		directory: newFakeDirectory(),
		events:    &recordingPublisher{},
	}
	clock := func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	f.svc = NewService(f.repo, f.catalog, f.directory,
		WithEventPublisher(f.events),
		WithIdempotencyStore(memory.NewIdempotencyStore()),
		WithClock(clock))
	return f
}

func guestInput(email string, lines ...domain.CartLine) ports.GuestCheckoutInput {
	return ports.GuestCheckoutInput{
		Contact: ports.GuestContact{Email: email, FirstName: "Ada", LastName: "Lovelace"},
		Lines:   lines,
	}
}

func orderCount(t *testing.T, repo *memory.Repository) int64 {
	t.Helper()
	agg, err := repo.Aggregates(context.Background())
	require.NoError(t, err)
	return agg.TotalOrders
}

func TestGuestCheckout_PersistsConfirmedOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.GuestCheckout(ctx, guestInput("ada@example.com",
		domain.CartLine{ProductID: 1, Quantity: 2},
		domain.CartLine{ProductID: 2, Quantity: 1}))
	require.NoError(t, err)

	order := result.Order
	assert.False(t, result.Replayed)
	assert.Equal(t, domain.StatusConfirmed, order.Status)
	assert.Equal(t, "12.00", order.TotalCost.StringFixed(2))
	assert.Equal(t, int64(501), order.OwnerID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Latte", order.Items[0].ProductName)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("4.50")))

	require.Len(t, f.events.events, 1)
	assert.Equal(t, domain.ChannelGuest, f.events.events[0].Channel)
	assert.Equal(t, "12.00", f.events.events[0].TotalCost)
}

func TestGuestCheckout_ReusesIdentityForSameEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.GuestCheckout(ctx, guestInput("ada@example.com", domain.CartLine{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	second, err := f.svc.GuestCheckout(ctx, guestInput("  ADA@example.com ", domain.CartLine{ProductID: 2, Quantity: 1}))
	require.NoError(t, err)

	assert.Equal(t, first.Order.OwnerID, second.Order.OwnerID)
	assert.NotEqual(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, 1, f.directory.creates)
}

func TestGuestCheckout_InvalidCartWritesNothing(t *testing.T) {
	cases := map[string][]domain.CartLine{
		"empty":         nil,
		"zero quantity": {{ProductID: 1, Quantity: 0}},
		"negative":      {{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: -3}},
		"bad product":   {{ProductID: 0, Quantity: 1}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.GuestCheckout(context.Background(), guestInput("ada@example.com", lines...))
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.directory.creates)
			assert.Zero(t, f.catalog.calls)
			assert.Zero(t, orderCount(t, f.repo))
		})
	}
}

func TestGuestCheckout_UnknownProductCreatesNoIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GuestCheckout(context.Background(), guestInput("ada@example.com",
		domain.CartLine{ProductID: 1, Quantity: 1},
		domain.CartLine{ProductID: 99, Quantity: 1}))
	require.ErrorIs(t, err, ErrProductNotFound)
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.ProductID)

	assert.Zero(t, f.directory.creates)
	assert.Zero(t, orderCount(t, f.repo))
	assert.Empty(t, f.events.events)
}

func TestGuestCheckout_RequiresEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GuestCheckout(context.Background(), guestInput("  ", domain.CartLine{ProductID: 1, Quantity: 1}))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.GuestCheckout(context.Background(), guestInput("not-an-email", domain.CartLine{ProductID: 1, Quantity: 1}))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, orderCount(t, f.repo))
}

func TestGuestCheckout_PersistenceFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.repo.FailCreate(errors.New("connection reset"))

	_, err := f.svc.GuestCheckout(context.Background(), guestInput("ada@example.com", domain.CartLine{ProductID: 1, Quantity: 1}))
	require.Error(t, err)
	assert.Empty(t, f.events.events)
}

func TestGuestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")

	result, err := f.svc.GuestCheckout(context.Background(), guestInput("ada@example.com", domain.CartLine{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	assert.NotZero(t, result.Order.ID)
}

func TestMemberCheckout_PendingOrderOwnedByCaller(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.MemberCheckout(context.Background(), ports.MemberCheckoutInput{
		MemberID: 100,
		Lines:    []domain.CartLine{{ProductID: 3, Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, result.Order.Status)
	assert.Equal(t, int64(100), result.Order.OwnerID)
	assert.True(t, result.Order.TotalCost.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, domain.ChannelMember, f.events.events[0].Channel)
}

func TestMemberCheckout_UnknownProductCreatesNoOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.MemberCheckout(context.Background(), ports.MemberCheckoutInput{
		MemberID: 100,
		Lines:    []domain.CartLine{{ProductID: 1, Quantity: 1}, {ProductID: 42, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, orderCount(t, f.repo))
}

func TestMemberCheckout_UnknownIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.MemberCheckout(context.Background(), ports.MemberCheckoutInput{
		MemberID: 7,
		Lines:    []domain.CartLine{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrIdentityNotFound)
	assert.Zero(t, orderCount(t, f.repo))
}

func TestOrderAccess_OwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result, err := f.svc.MemberCheckout(ctx, ports.MemberCheckoutInput{MemberID: 100, Lines: []domain.CartLine{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)
	id := result.Order.ID

	summary, err := f.svc.GetSummary(ctx, id, 100)
	require.NoError(t, err)
	assert.Nil(t, summary.Items)

	detail, err := f.svc.GetDetail(ctx, id, 100)
	require.NoError(t, err)
	assert.Len(t, detail.Items, 1)

	// A foreign order and a missing order are indistinguishable.
	_, foreignErr := f.svc.GetDetail(ctx, id, 101)
	_, missingErr := f.svc.GetDetail(ctx, id+1000, 100)
	assert.ErrorIs(t, foreignErr, ErrOrderNotFound)
	assert.ErrorIs(t, missingErr, ErrOrderNotFound)
	assert.Equal(t, foreignErr.Error(), missingErr.Error())

	_, err = f.svc.GetSummary(ctx, 0, 100)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderAccess_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result, err := f.svc.MemberCheckout(ctx, ports.MemberCheckoutInput{MemberID: 100, Lines: []domain.CartLine{{ProductID: 1, Quantity: 2}}})
	require.NoError(t, err)

	f.catalog.products[1] = ports.PricedProduct{ID: 1, Name: "Latte", UnitPrice: decimal.RequireFromString("9.99")}

	detail, err := f.svc.GetDetail(ctx, result.Order.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, "4.50", detail.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "9.00", detail.TotalCost.StringFixed(2))
}

func TestCheckout_IdempotencyKeyReplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := guestInput("ada@example.com", domain.CartLine{ProductID: 1, Quantity: 1})
	input.IdempotencyKey = "retry-1"

	first, err := f.svc.GuestCheckout(ctx, input)
	require.NoError(t, err)
	second, err := f.svc.GuestCheckout(ctx, input)
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Len(t, second.Order.Items, 1)
	assert.Equal(t, int64(1), orderCount(t, f.repo))
	assert.Len(t, f.events.events, 1)

	input.Lines = []domain.CartLine{{ProductID: 2, Quantity: 1}}
	_, err = f.svc.GuestCheckout(ctx, input)
	assert.ErrorIs(t, err, ErrIdempotencyConflict)
}

type slowRepository struct {
	*memory.Repository
	delay time.Duration
}

func (r slowRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	time.Sleep(r.delay)
	return r.Repository.Create(ctx, order)
}

func TestCheckout_ConcurrentRetriesPlaceOneOrder(t *testing.T) {
	repo := memory.NewRepository()
	svc := NewService(slowRepository{Repository: repo, delay: 50 * time.Millisecond}, newFakeCatalog(), newFakeDirectory(),
		WithIdempotencyStore(memory.NewIdempotencyStore()))
	input := ports.MemberCheckoutInput{MemberID: 100, IdempotencyKey: "retry-1", Lines: []domain.CartLine{{ProductID: 1, Quantity: 2}}}

	var wg sync.WaitGroup
	results := make([]*ports.CheckoutResult, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.MemberCheckout(context.Background(), input)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, results[0].Order.ID, results[1].Order.ID)
	assert.NotEqual(t, results[0].Replayed, results[1].Replayed)
	assert.Equal(t, int64(1), orderCount(t, repo))
}

func TestCheckout_FailedCheckoutReleasesKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := ports.MemberCheckoutInput{MemberID: 100, IdempotencyKey: "retry-2", Lines: []domain.CartLine{{ProductID: 9, Quantity: 1}}}

	_, err := f.svc.MemberCheckout(ctx, input)
	require.ErrorIs(t, err, ErrProductNotFound)

	f.catalog.products[9] = ports.PricedProduct{ID: 9, Name: "Mocha", UnitPrice: decimal.RequireFromString("5.00")}
	result, err := f.svc.MemberCheckout(ctx, input)
	require.NoError(t, err)
	assert.False(t, result.Replayed)
	assert.Equal(t, int64(1), orderCount(t, f.repo))
}

func TestCheckout_KeyHeldByRunningCheckout(t *testing.T) {
	store := memory.NewIdempotencyStore()
	repo := memory.NewRepository()
	svc := NewService(repo, newFakeCatalog(), newFakeDirectory(),
		WithIdempotencyStore(store),
		WithReplayWait(30*time.Millisecond))
	input := ports.MemberCheckoutInput{MemberID: 100, IdempotencyKey: "retry-3", Lines: []domain.CartLine{{ProductID: 1, Quantity: 1}}}
	hash, err := FingerprintMemberCheckout(input)
	require.NoError(t, err)
	_, reserved, err := store.Reserve(context.Background(), memberScopedKey(input), hash)
	require.NoError(t, err)
	require.True(t, reserved)

	_, err = svc.MemberCheckout(context.Background(), input)
	assert.ErrorIs(t, err, ErrCheckoutInProgress)
	assert.Equal(t, int64(0), orderCount(t, repo))
}

func TestCheckout_IdempotencyKeysAreScopedPerCaller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.directory.members[200] = true

	a, err := f.svc.MemberCheckout(ctx, ports.MemberCheckoutInput{MemberID: 100, IdempotencyKey: "same", Lines: []domain.CartLine{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)
	b, err := f.svc.MemberCheckout(ctx, ports.MemberCheckoutInput{MemberID: 200, IdempotencyKey: "same", Lines: []domain.CartLine{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)

	assert.NotEqual(t, a.Order.ID, b.Order.ID)
	assert.False(t, b.Replayed)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	result, err := f.svc.MemberCheckout(ctx, ports.MemberCheckoutInput{MemberID: 100, Lines: []domain.CartLine{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, result.Order.ID, domain.StatusPickup)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPickup, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, result.Order.ID, domain.StatusCancelled)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, result.Order.ID, domain.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, 9999, domain.StatusPickup)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	open, err := f.svc.ListOrders(ctx, domain.OpenStatuses())
	require.NoError(t, err)
	assert.Empty(t, open)
}
