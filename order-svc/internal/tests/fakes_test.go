package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"food-platform/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var errBackendDown = errors.New("connection refused")

type fakeIdentity struct {
	mu        sync.Mutex
	users     map[int]domain.User
	addresses map[int][]domain.Address
	down      bool
	failWrite bool
	// beforeWrite runs ahead of every wallet write, outside the mutex.
	beforeWrite func(userID int, balance decimal.Decimal)
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		users:     map[int]domain.User{},
		addresses: map[int][]domain.Address{},
	}
}

func (f *fakeIdentity) addUser(id int, wallet string, addressIDs ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = domain.User{ID: id, Wallet: decimal.RequireFromString(wallet), Role: "customer"}
	for _, a := range addressIDs {
		f.addresses[id] = append(f.addresses[id], domain.Address{ID: a, UserID: id})
	}
}

func (f *fakeIdentity) wallet(id int) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].Wallet
}

func (f *fakeIdentity) GetUser(_ context.Context, userID int) domain.Lookup[domain.User] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return domain.Unavailable[domain.User](errBackendDown)
	}
	u, ok := f.users[userID]
	if !ok {
		return domain.NotFound[domain.User]()
	}
	return domain.Found(u)
}

func (f *fakeIdentity) GetAllAddresses(_ context.Context, userID int) ([]domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, errBackendDown
	}
	return append([]domain.Address{}, f.addresses[userID]...), nil
}

func (f *fakeIdentity) UpdateWalletBalance(_ context.Context, userID int, balance decimal.Decimal) error {
	if f.beforeWrite != nil {
		f.beforeWrite(userID, balance)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down || f.failWrite {
		return errBackendDown
	}
	u := f.users[userID]
	u.Wallet = balance
	f.users[userID] = u
	return nil
}

type fakeCatalog struct {
	mu          sync.Mutex
	restaurants map[int]domain.Restaurant
	items       map[int]domain.MenuItem
	down        bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		restaurants: map[int]domain.Restaurant{},
		items:       map[int]domain.MenuItem{},
	}
}

func (f *fakeCatalog) addRestaurant(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restaurants[id] = domain.Restaurant{ID: id, Name: "Restaurant"}
}

func (f *fakeCatalog) setItem(id, restaurantID int, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id] = domain.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         "Item",
		Price:        decimal.RequireFromString(price),
		Available:    true,
	}
}

func (f *fakeCatalog) GetRestaurant(_ context.Context, restaurantID int) domain.Lookup[domain.Restaurant] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return domain.Unavailable[domain.Restaurant](errBackendDown)
	}
	r, ok := f.restaurants[restaurantID]
	if !ok {
		return domain.NotFound[domain.Restaurant]()
	}
	return domain.Found(r)
}

func (f *fakeCatalog) GetMenuItem(_ context.Context, foodItemID int) domain.Lookup[domain.MenuItem] {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return domain.Unavailable[domain.MenuItem](errBackendDown)
	}
	item, ok := f.items[foodItemID]
	if !ok {
		return domain.NotFound[domain.MenuItem]()
	}
	return domain.Found(item)
}

type memCartRepo struct {
	mu     sync.Mutex
	nextID int
	lines  map[int]domain.CartLine
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{lines: map[int]domain.CartLine{}}
}

func (r *memCartRepo) ListByUser(_ context.Context, userID int) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.CartLine{}
	for _, l := range r.lines {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCartRepo) GetByUserAndFoodItem(_ context.Context, userID, foodItemID int) (*domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lines {
		if l.UserID == userID && l.FoodItemID == foodItemID {
			line := l
			return &line, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCartRepo) Insert(_ context.Context, line *domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	line.ID = r.nextID
	r.lines[line.ID] = *line
	return nil
}

func (r *memCartRepo) Update(_ context.Context, line *domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lines[line.ID]; !ok {
		return domain.ErrNotFound
	}
	r.lines[line.ID] = *line
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, userID, foodItemID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.lines {
		if l.UserID == userID && l.FoodItemID == foodItemID {
			delete(r.lines, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memCartRepo) DeleteByUser(_ context.Context, userID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, l := range r.lines {
		if l.UserID == userID {
			delete(r.lines, id)
			n++
		}
	}
	return n, nil
}

type memOrderRepo struct {
	mu         sync.Mutex
	nextID     int
	orders     map[int]domain.Order
	failCreate bool
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[int]domain.Order{}}
}

// Create stores the encoded snapshot so reads go through the same JSON
// round trip as the Postgres repository.
func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errBackendDown
	}
	raw, err := domain.EncodeSnapshot(order.Items)
	if err != nil {
		return err
	}
	items, err := domain.DecodeSnapshot(raw)
	if err != nil {
		return err
	}
	r.nextID++
	order.ID = r.nextID
	stored := *order
	stored.Items = items
	r.orders[order.ID] = stored
	return nil
}

func (r *memOrderRepo) Get(_ context.Context, orderID int) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func (r *memOrderRepo) filter(keep func(domain.Order) bool) []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID int) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (r *memOrderRepo) ListByRestaurant(_ context.Context, restaurantID int) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.RestaurantID == restaurantID }), nil
}

func (r *memOrderRepo) UpdateStatusGuard(_ context.Context, orderID int, from, to domain.OrderStatus, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.Status != from {
		return 0, nil
	}
	o.Status = to
	o.UpdatedAt = at
	r.orders[orderID] = o
	return 1, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event domain.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
