package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"todoshell/pkg/filter"
	"todoshell/pkg/utils"
)

const filterKey = "filter"

// FilterStorage persists the todo view filter
type FilterStorage struct {
	storage Storage
}

func NewFilterStorage(s Storage) *FilterStorage {
	return &FilterStorage{storage: s}
}

// LoadFilter returns the stored filter, or the default filter when none is stored
func (f *FilterStorage) LoadFilter(ctx context.Context) (filter.Filter, error) {
	raw, ok, err := getRecord(ctx, f.storage, filterKey)
	if err != nil {
		return filter.Filter{}, err
	}
	if !ok {
		return filter.Default(), nil
	}

	var out filter.Filter
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return filter.Filter{}, fmt.Errorf("decode stored filter: %w", err)
	}
	return out, nil
}

func (f *FilterStorage) SaveFilter(ctx context.Context, flt filter.Filter) error {
	b, err := json.Marshal(flt)
	if err != nil {
		return err
	}
	utils.Log("Saving filter: %s", b)
	return f.storage.Set(ctx, filterKey, string(b))
}

func (f *FilterStorage) ClearFilter(ctx context.Context) error {
	return f.storage.Remove(ctx, filterKey)
}
