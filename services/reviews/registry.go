package reviews

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry tracks in-flight crawls so a brand is never crawled twice at
// once and a running crawl can be cancelled from the API.
type Registry struct {
	mu      sync.Mutex
	running map[string]context.CancelFunc
}

func NewRegistry() *Registry {
	return &Registry{running: make(map[string]context.CancelFunc)}
}

// Begin reserves the brand and returns a context cancelled either by the
// parent or by Cancel. The returned done func must be called when the
// crawl finishes.
func (r *Registry) Begin(ctx context.Context, brand string) (context.Context, func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.running[brand]; ok {
		return nil, nil, fmt.Errorf("a crawl for brand %q is already running", brand)
	}

	ctx, cancel := context.WithCancel(ctx)
	r.running[brand] = cancel

	done := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if stored, ok := r.running[brand]; ok {
			stored()
			delete(r.running, brand)
		}
	}
	return ctx, done, nil
}

// Cancel stops the brand's running crawl. Returns false when none is
// running.
func (r *Registry) Cancel(brand string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancel, ok := r.running[brand]
	if !ok {
		return false
	}
	cancel()
	return true
}

// Running lists the brands with a crawl in flight, sorted for stable
// output.
func (r *Registry) Running() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	brands := make([]string, 0, len(r.running))
	for brand := range r.running {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return brands
}
