package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/navigation"
	"github.com/Skotchmaster/storefront/internal/session"
)

// ErrAlreadyAuthenticated is returned by Login and Register while a user is
// signed in. Switching users goes through Logout, which empties the cart.
var ErrAlreadyAuthenticated = errors.New("already logged in")

type Catalog interface {
	catalog.Source
	FetchByID(ctx context.Context, id int) (*models.Product, error)
	Allows(p models.Product) bool
}

// Instance is everything one running client owns: its session, cart,
// navigation stack and home screen product view.
type Instance struct {
	ID       uuid.UUID
	Session  *session.Store
	Cart     *cart.Store
	Nav      *navigation.Navigator
	Products *catalog.View
	Catalog  Catalog

	lastSeen atomic.Int64
}

func NewInstance(id uuid.UUID, c Catalog, auth session.Authenticator) *Instance {
	s := session.NewStore(auth)
	inst := &Instance{
		ID:       id,
		Session:  s,
		Cart:     cart.NewStore(),
		Nav:      navigation.New(s),
		Products: catalog.NewView(c),
		Catalog:  c,
	}
	inst.touch(time.Now())
	return inst
}

func (i *Instance) Login(ctx context.Context, email, password string) error {
	if i.Session.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}
	return i.Session.Login(ctx, email, password)
}

func (i *Instance) Register(ctx context.Context, name, email, password string) error {
	if i.Session.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}
	return i.Session.Register(ctx, name, email, password)
}

// Logout ends the session and empties the cart.
func (i *Instance) Logout() {
	i.Session.Logout()
	i.Cart.Clear()
}

// Product resolves id from the last-known list first, then the catalog.
// Products the keyword policy hides from the list are reported not found.
func (i *Instance) Product(ctx context.Context, id int) (models.Product, error) {
	if p, ok := i.Products.Find(id); ok {
		return p, nil
	}
	p, err := i.Catalog.FetchByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !i.Catalog.Allows(*p) {
		return models.Product{}, &catalog.FetchError{Op: "fetch_by_id", Kind: catalog.KindNotFound, Err: catalog.ErrNotFound}
	}
	return *p, nil
}

func (i *Instance) touch(t time.Time) { i.lastSeen.Store(t.UnixNano()) }

func (i *Instance) LastSeen() time.Time { return time.Unix(0, i.lastSeen.Load()) }

type Registry struct {
	catalog Catalog
	auth    session.Authenticator
	ttl     time.Duration
	limit   int
	now     func() time.Time

	mu        sync.Mutex
	instances map[uuid.UUID]*Instance
}

func NewRegistry(c Catalog, auth session.Authenticator, ttl time.Duration) *Registry {
	return &Registry{
		catalog:   c,
		auth:      auth,
		ttl:       ttl,
		now:       time.Now,
		instances: make(map[uuid.UUID]*Instance),
	}
}

// WithLimit caps the number of live instances; 0 means no cap.
func (r *Registry) WithLimit(n int) *Registry {
	r.limit = n
	return r
}

// Create registers a fresh instance. When the registry is full the instance
// seen least recently is dropped first.
func (r *Registry) Create() *Instance {
	inst := NewInstance(uuid.New(), r.catalog, r.auth)
	inst.touch(r.now())

	r.mu.Lock()
	defer r.mu.Unlock()
	for r.limit > 0 && len(r.instances) >= r.limit {
		r.evictOldestLocked()
	}
	r.instances[inst.ID] = inst
	return inst
}

func (r *Registry) evictOldestLocked() {
	var (
		oldest uuid.UUID
		seen   time.Time
		found  bool
	)
	for id, inst := range r.instances {
		if t := inst.LastSeen(); !found || t.Before(seen) {
			oldest, seen, found = id, t, true
		}
	}
	delete(r.instances, oldest)
}

func (r *Registry) Get(id uuid.UUID) (*Instance, bool) {
	r.mu.Lock()
	inst, ok := r.instances[id]
	r.mu.Unlock()
	if ok {
		inst.touch(r.now())
	}
	return inst, ok
}

func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.instances, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Sweep drops instances idle for longer than the TTL.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, inst := range r.instances {
		if inst.LastSeen().Before(cutoff) {
			delete(r.instances, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
