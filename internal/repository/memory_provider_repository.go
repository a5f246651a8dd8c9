package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"hvac-finder/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type memoryEntry struct {
	seq      uint64
	provider *model.Provider
}

// memoryProviderDirectory implements ProviderDirectory in process memory.
// Providers are cloned on the way in and out so callers only change stored
// state through UpdateProvider.
type memoryProviderDirectory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*memoryEntry
	byZip   map[string]map[uuid.UUID]struct{}
	nextSeq uint64
	logger  zerolog.Logger
}

// NewMemoryProviderDirectory creates an empty in-memory provider directory.
func NewMemoryProviderDirectory(logger zerolog.Logger) ProviderDirectory {
	return &memoryProviderDirectory{
		entries: make(map[uuid.UUID]*memoryEntry),
		byZip:   make(map[string]map[uuid.UUID]struct{}),
		logger:  logger.With().Str("repository", "provider-memory").Logger(),
	}
}

// AddProvider inserts a clone of provider.
func (d *memoryProviderDirectory) AddProvider(ctx context.Context, provider *model.Provider) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entries[provider.ID]; exists {
		d.logger.Warn().Str("provider_id", provider.ID.String()).Msg("provider already exists")
		return model.ErrDuplicateProvider
	}

	d.nextSeq++
	d.entries[provider.ID] = &memoryEntry{seq: d.nextSeq, provider: provider.Clone()}
	d.indexServiceAreas(provider)

	d.logger.Debug().
		Str("provider_id", provider.ID.String()).
		Int("service_areas", len(provider.ServiceAreas())).
		Msg("provider added")

	return nil
}

// UpdateProvider replaces the stored copy of provider, keeping its insertion order.
func (d *memoryProviderDirectory) UpdateProvider(ctx context.Context, provider *model.Provider) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, exists := d.entries[provider.ID]
	if !exists {
		return model.ErrProviderNotFound
	}

	entry.provider = provider.Clone()
	d.indexServiceAreas(provider)

	d.logger.Debug().Str("provider_id", provider.ID.String()).Msg("provider updated")

	return nil
}

// FindByID returns a clone of the stored provider, or nil.
func (d *memoryProviderDirectory) FindByID(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entry, exists := d.entries[id]
	if !exists {
		d.logger.Debug().Str("provider_id", id.String()).Msg("provider not found")
		return nil, nil
	}
	return entry.provider.Clone(), nil
}

// FindByPostalCode returns active providers covering zipCode.
func (d *memoryProviderDirectory) FindByPostalCode(ctx context.Context, zipCode string) ([]*model.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := d.byZip[zipCode]
	matches := make([]*memoryEntry, 0, len(ids))
	for id := range ids {
		entry := d.entries[id]
		if entry.provider.IsActive {
			matches = append(matches, entry)
		}
	}

	return sortedClones(matches), nil
}

// FindAllActive returns every active provider.
func (d *memoryProviderDirectory) FindAllActive(ctx context.Context) ([]*model.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	matches := make([]*memoryEntry, 0, len(d.entries))
	for _, entry := range d.entries {
		if entry.provider.IsActive {
			matches = append(matches, entry)
		}
	}

	return sortedClones(matches), nil
}

// Count returns the number of stored providers.
func (d *memoryProviderDirectory) Count(ctx context.Context) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.entries), nil
}

// indexServiceAreas must be called with mu held for writing. Service areas
// are never removed, so the index only grows.
func (d *memoryProviderDirectory) indexServiceAreas(provider *model.Provider) {
	for _, sa := range provider.ServiceAreas() {
		ids, ok := d.byZip[sa.ZipCode]
		if !ok {
			ids = make(map[uuid.UUID]struct{})
			d.byZip[sa.ZipCode] = ids
		}
		ids[provider.ID] = struct{}{}
	}
}

// sortedClones orders entries by company name (byte-wise) then insertion
// order and returns clones of their providers.
func sortedClones(entries []*memoryEntry) []*model.Provider {
	slices.SortFunc(entries, func(a, b *memoryEntry) int {
		if c := strings.Compare(a.provider.CompanyName, b.provider.CompanyName); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	providers := make([]*model.Provider, len(entries))
	for i, entry := range entries {
		providers[i] = entry.provider.Clone()
	}
	return providers
}
