package embedding

import (
	"context"
	"sync"
	"sync/atomic"
)

// LazyProvider defers construction of the underlying provider until first use.
// Building a provider can be expensive (model pull, warm-up probe), so the
// load is guarded by a mutex: concurrent first callers block on the same
// initialization instead of racing to load twice. A failed load is not
// cached; the next caller attempts it again.
type LazyProvider struct {
	build func(ctx context.Context) (EmbeddingProvider, error)

	mu       sync.Mutex
	provider EmbeddingProvider
	loaded   atomic.Bool
}

func NewLazyProvider(build func(ctx context.Context) (EmbeddingProvider, error)) *LazyProvider {
	return &LazyProvider{build: build}
}

// Loaded reports whether the underlying provider has been initialized.
// It never triggers a load, so health checks stay cheap.
func (p *LazyProvider) Loaded() bool {
	return p.loaded.Load()
}

// Warm forces initialization. Readiness probes call this to pull the load
// forward instead of paying for it on the first user query.
func (p *LazyProvider) Warm(ctx context.Context) error {
	_, err := p.get(ctx)
	return err
}

func (p *LazyProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	provider, err := p.get(ctx)
	if err != nil {
		return nil, err
	}
	return provider.Generate(ctx, text)
}

func (p *LazyProvider) get(ctx context.Context) (EmbeddingProvider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider != nil {
		return p.provider, nil
	}

	provider, err := p.build(ctx)
	if err != nil {
		return nil, err
	}

	p.provider = provider
	p.loaded.Store(true)
	return provider, nil
}
