package zipcode

import (
	"context"
	"sync"
)

// LazyDataset loads a dataset on first use. Concurrent first callers share a
// single load and all observe the same dataset or error.
type LazyDataset struct {
	loader Loader
	name   string

	once    sync.Once
	dataset *Dataset
	err     error
}

// NewLazyDataset creates a LazyDataset that loads name through loader.
func NewLazyDataset(loader Loader, name string) *LazyDataset {
	return &LazyDataset{loader: loader, name: name}
}

// Get returns the dataset, loading it if this is the first call. The context
// of the first caller governs the load. A failed load is not retried.
func (l *LazyDataset) Get(ctx context.Context) (*Dataset, error) {
	l.once.Do(func() {
		l.dataset, l.err = l.loader.Load(ctx, l.name)
	})
	return l.dataset, l.err
}
