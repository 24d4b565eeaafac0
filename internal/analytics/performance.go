package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/db/models"
)

// ProductPerformance aggregates order items by product and ranks the top N
// by revenue. Product rows supply display names for items whose snapshot
// name has drifted.
func ProductPerformance(items []models.OrderItem, products []models.Product, topN int) *ProductPerformanceReport {
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	type agg struct {
		revenue  int
		quantity int
		orders   map[uuid.UUID]bool
		name     string
	}
	byProduct := map[uuid.UUID]*agg{}
	for _, item := range items {
		a, ok := byProduct[item.ProductID]
		if !ok {
			name := names[item.ProductID]
			if name == "" {
				name = item.Name
			}
			a = &agg{orders: map[uuid.UUID]bool{}, name: name}
			byProduct[item.ProductID] = a
		}
		a.revenue += item.TotalCents
		a.quantity += item.Quantity
		a.orders[item.OrderID] = true
	}

	rows := make([]ProductPerformanceRow, 0, len(byProduct))
	for productID, a := range byProduct {
		rows = append(rows, ProductPerformanceRow{
			ProductID:     productID,
			Name:          a.name,
			RevenueCents:  a.revenue,
			QuantitySold:  a.quantity,
			DistinctOrder: len(a.orders),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RevenueCents != rows[j].RevenueCents {
			return rows[i].RevenueCents > rows[j].RevenueCents
		}
		return rows[i].ProductID.String() < rows[j].ProductID.String()
	})

	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	return &ProductPerformanceReport{Products: rows}
}
