package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Source interface {
	FetchAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
}

type Snapshot struct {
	Seq      uint64           `json:"seq"`
	Loaded   bool             `json:"loaded"`
	Query    string           `json:"query"`
	Degraded bool             `json:"degraded"`
	Products []models.Product `json:"products"`
}

// View is the home screen's product list: the last-known full catalog plus
// the currently visible (searched) subset. Every load or search takes a new
// sequence number and cancels the previous in-flight request; a response that
// is no longer the latest is dropped with ErrSuperseded.
type View struct {
	src Source

	mu       sync.Mutex
	seq      uint64
	loaded   bool
	cancel   context.CancelFunc
	all      []models.Product
	visible  []models.Product
	query    string
	degraded bool
}

func NewView(src Source) *View {
	return &View{src: src}
}

func (v *View) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}
	v.seq++
	reqCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	return v.seq, reqCtx, cancel
}

// commit applies fn if seq is still the latest request. Caller must not hold mu.
func (v *View) commit(seq uint64, fn func()) (Snapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq {
		return v.snapshotLocked(), ErrSuperseded
	}
	v.cancel = nil
	fn()
	return v.snapshotLocked(), nil
}

// Load refetches the full catalog and resets the visible list to it. On
// failure the previous list stays in place.
func (v *View) Load(ctx context.Context) (Snapshot, error) {
	seq, reqCtx, cancel := v.begin(ctx)
	defer cancel()

	products, err := v.src.FetchAll(reqCtx)
	if err != nil {
		snap, cErr := v.commit(seq, func() {})
		if cErr != nil {
			return snap, cErr
		}
		return snap, err
	}

	return v.commit(seq, func() {
		v.all = products
		v.loaded = true
		v.visible = products
		v.query = ""
		v.degraded = false
	})
}

// Search runs query against the catalog. A blank query shows the full list.
// When the remote search fails the last-known list is filtered locally and
// the snapshot is marked degraded.
func (v *View) Search(ctx context.Context, query string) (Snapshot, error) {
	l := logging.FromContext(ctx).With("component", "catalog.view")
	query = strings.TrimSpace(query)

	seq, reqCtx, cancel := v.begin(ctx)
	defer cancel()

	if query == "" {
		return v.commit(seq, func() {
			v.visible = v.all
			v.query = ""
			v.degraded = false
		})
	}

	products, err := v.src.Search(reqCtx, query)
	if err != nil {
		if ctx.Err() != nil {
			return v.Snapshot(), ctx.Err()
		}
		if errors.Is(err, context.Canceled) {
			// cancelled by a newer request
			return v.commit(seq, func() {})
		}
		l.Warn("search_degraded", "query", query, "error", err)
		return v.commit(seq, func() {
			v.visible = MatchLocal(v.all, query)
			v.query = query
			v.degraded = true
		})
	}

	return v.commit(seq, func() {
		v.visible = products
		v.query = query
		v.degraded = false
	})
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Find looks a product up in the last-known full list.
func (v *View) Find(id int) (models.Product, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range v.all {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (v *View) snapshotLocked() Snapshot {
	products := make([]models.Product, len(v.visible))
	copy(products, v.visible)
	return Snapshot{
		Seq:      v.seq,
		Loaded:   v.loaded,
		Query:    v.query,
		Degraded: v.degraded,
		Products: products,
	}
}
