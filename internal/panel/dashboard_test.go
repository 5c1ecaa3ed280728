package panel

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielMorais2/system-management-usegm/internal/backend"
	"github.com/GabrielMorais2/system-management-usegm/internal/domain"
)

func orderCreatedAt(t *testing.T, ts string, status domain.OrderStatus) domain.Order {
	t.Helper()
	var created domain.DateTime
	require.NoError(t, json.Unmarshal([]byte(`"`+ts+`"`), &created))
	return domain.Order{Status: status, CreatedAt: created}
}

func TestDashboard_LoadRequestsEverything(t *testing.T) {
	var gotQuery backend.OrderQuery
	client := &mockOrdersClient{
		listFunc: func(ctx context.Context, q backend.OrderQuery) (*domain.Page[domain.Order], error) {
			gotQuery = q
			return &domain.Page[domain.Order]{Content: []domain.Order{{ID: 1}}}, nil
		},
	}
	d := NewDashboard(client)

	orders, err := d.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, gotQuery.All)
	assert.Len(t, orders, 1)
}

func TestDashboard_MonthFilter(t *testing.T) {
	orders := []domain.Order{
		orderCreatedAt(t, "2024-01-05T10:00:00", domain.StatusAberto),
		orderCreatedAt(t, "2024-01-20T15:30:00", domain.StatusCompleto),
		orderCreatedAt(t, "2024-02-01T09:00:00", domain.StatusAberto),
	}

	assert.Equal(t, []string{"2024-01", "2024-02"}, Months(orders))

	jan := CountByStatus(orders, "2024-01")
	assert.Equal(t, 1, jan[domain.StatusAberto])
	assert.Equal(t, 1, jan[domain.StatusCompleto])
	assert.Zero(t, jan[domain.StatusLoja])

	all := CountByStatus(orders, MonthAll)
	assert.Equal(t, 2, all[domain.StatusAberto])
	assert.Equal(t, 1, all[domain.StatusCompleto])
}

func TestDashboard_OrdersWithoutTimestamp(t *testing.T) {
	orders := []domain.Order{
		{Status: domain.StatusAberto},
		orderCreatedAt(t, "2024-03-10T08:00:00", domain.StatusLoja),
	}

	assert.Equal(t, []string{"2024-03"}, Months(orders))

	// A missing timestamp never matches a concrete month but still counts in
	// the full set.
	march := CountByStatus(orders, "2024-03")
	assert.Zero(t, march[domain.StatusAberto])
	assert.Equal(t, 1, march[domain.StatusLoja])

	all := CountByStatus(orders, MonthAll)
	assert.Equal(t, 1, all[domain.StatusAberto])
}
