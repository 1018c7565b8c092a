package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/domain/rider"
)

type RiderRepository struct {
	mu    sync.RWMutex
	items []rider.Rider
}

func NewRiderRepository(items []rider.Rider) *RiderRepository {
	return &RiderRepository{items: append([]rider.Rider(nil), items...)}
}

func (r *RiderRepository) ListBySeason(_ context.Context, year int, division game.Division, filter rider.Filter) ([]rider.Rider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]rider.Rider, 0, len(r.items))
	for _, item := range r.items {
		if item.Year != year || item.Division != division {
			continue
		}
		if filter.Nationality != "" && item.Nationality != filter.Nationality {
			continue
		}
		if filter.ProTeamName != "" && item.ProTeamName != filter.ProTeamName {
			continue
		}
		if filter.MinPrice > 0 && item.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && item.Price > filter.MaxPrice {
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price > out[j].Price
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *RiderRepository) PricesByName(_ context.Context, year int, division game.Division) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prices := make(map[string]int)
	for _, item := range r.items {
		if item.Year != year || item.Division != division {
			continue
		}
		prices[item.Name] = item.Price
	}

	return prices, nil
}
