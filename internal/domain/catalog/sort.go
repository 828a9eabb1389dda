package catalog

import (
	"sort"
	"time"
)

var epoch = time.Unix(0, 0).UTC()

// SortServices は order 昇順に安定ソートします（同値はストアが返した順のまま）。
func SortServices(items []Service) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

// SortPortfolioNewestFirst は createdAt 降順に安定ソートします。
// createdAt が無いものは epoch 扱いで末尾に回ります。
func SortPortfolioNewestFirst(items []PortfolioItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAtOrEpoch(items[i]).After(createdAtOrEpoch(items[j]))
	})
}

func createdAtOrEpoch(p PortfolioItem) time.Time {
	if p.CreatedAt == nil || p.CreatedAt.IsZero() {
		return epoch
	}
	return *p.CreatedAt
}
