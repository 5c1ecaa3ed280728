package panel

import (
	"context"
	"sort"

	"golang.org/x/sync/singleflight"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// MonthAll selects every month in the dashboard aggregation.
const MonthAll = "all"

// Dashboard is a pure derived view over the full order set: it buckets orders
// by creation month and counts them per status. It recomputes entirely from
// the last fetch; concurrent loads share one backend call via singleflight.
type Dashboard struct {
	client OrdersClient
	sfg    singleflight.Group
}

func NewDashboard(client OrdersClient) *Dashboard {
	return &Dashboard{client: client}
}

// Load fetches the unfiltered, unpaginated order set. The flight is keyed by
// session so one user's fetch is never handed to another.
func (d *Dashboard) Load(ctx context.Context) ([]domain.Order, error) {
	sessionID, _, _ := session.FromContext(ctx)
	v, err, _ := d.sfg.Do("orders:"+sessionID, func() (interface{}, error) {
		page, err := d.client.ListOrders(ctx, backend.OrderQuery{All: true})
		if err != nil {
			return nil, err
		}
		return page.Content, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Order), nil
}

// Months returns the distinct yyyy-MM buckets present in the order set,
// sorted ascending, to populate the month filter.
func Months(orders []domain.Order) []string {
	seen := make(map[string]struct{})
	var months []string
	for _, o := range orders {
		m := o.Month()
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// CountByStatus counts orders per status for the selected month; MonthAll (or
// an empty month) counts the whole set.
func CountByStatus(orders []domain.Order, month string) map[domain.OrderStatus]int {
	counts := make(map[domain.OrderStatus]int)
	for _, o := range orders {
		if month != "" && month != MonthAll && o.Month() != month {
			continue
		}
		counts[o.Status]++
	}
	return counts
}
