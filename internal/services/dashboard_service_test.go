package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/entities"
	"ticketdesk/pkg/config"
	apperrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/types"
)

// fakeDashboardRepo возвращает заранее заданные строки и считает обращения.
type fakeDashboardRepo struct {
	created  []entities.Ticket
	resolved []entities.Ticket
	active   []entities.Ticket
	overdue  []entities.Ticket

	calls int

	// slowAlerts заставляет выборки алертов ждать отмены контекста.
	slowAlerts bool
}

func (r *fakeDashboardRepo) TicketsCreatedBetween(_ context.Context, _, _ time.Time, _ types.DashboardFilter) ([]entities.Ticket, error) {
	r.calls++
	return r.created, nil
}

func (r *fakeDashboardRepo) TicketsResolvedBetween(_ context.Context, _, _ time.Time, _ types.DashboardFilter) ([]entities.Ticket, error) {
	r.calls++
	return r.resolved, nil
}

func (r *fakeDashboardRepo) ActiveTickets(_ context.Context, _ types.DashboardFilter) ([]entities.Ticket, error) {
	r.calls++
	return r.active, nil
}

func (r *fakeDashboardRepo) OverdueCriticalTickets(ctx context.Context, _ time.Time) ([]entities.Ticket, error) {
	if r.slowAlerts {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return r.overdue, nil
}

func (r *fakeDashboardRepo) UnassignedTicketsOlderThan(_ context.Context, _ time.Time) ([]entities.Ticket, error) {
	return nil, nil
}

func (r *fakeDashboardRepo) UpcomingActivities(_ context.Context, _, _ time.Time) ([]entities.Activity, error) {
	return nil, nil
}

func (r *fakeDashboardRepo) BlockedTasks(_ context.Context) ([]entities.Task, error) {
	return nil, nil
}

func dashboardTestConfig() config.DashboardConfig {
	cfg := config.DefaultDashboardConfig()
	cfg.CacheTTL = time.Minute
	cfg.AlertsTimeout = 50 * time.Millisecond
	return cfg
}

func TestGetCEODashboard_AgentForbidden(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{}, newFakeCache(), dashboardTestConfig(), zap.NewNop())

	_, err := svc.GetCEODashboard(context.Background(), types.RoleAgent, dto.CEODashboardQueryDTO{})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestGetCEODashboard_AssemblesPayload(t *testing.T) {
	repo := &fakeDashboardRepo{
		created:  []entities.Ticket{makeTicket(entities.TicketTypeBug, "p1", "Продукт 1")},
		resolved: []entities.Ticket{resolvedTicket(entities.TicketTypeBug, "p1", "Продукт 1", 2)},
		overdue:  []entities.Ticket{overdueTicket("o1")},
	}
	svc := NewDashboardService(repo, newFakeCache(), dashboardTestConfig(), zap.NewNop())

	payload, err := svc.GetCEODashboard(context.Background(), types.RoleDirection, dto.CEODashboardQueryDTO{Period: "week"})
	require.NoError(t, err)

	assert.Equal(t, "week", payload.Period)
	assert.NotEmpty(t, payload.PeriodStart)
	require.NotNil(t, payload.Flux)
	assert.Equal(t, int64(1), payload.Flux.Opened)
	require.NotNil(t, payload.MTTR)
	assert.Equal(t, 2.0, payload.MTTR.Global)
	require.NotNil(t, payload.Workload)
	require.NotNil(t, payload.Health)
	require.Len(t, payload.Alerts, 1)
	assert.Empty(t, payload.AlertsError)
}

func TestGetCEODashboard_NormalizesUnknownPeriod(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardRepo{}, newFakeCache(), dashboardTestConfig(), zap.NewNop())

	payload, err := svc.GetCEODashboard(context.Background(), types.RoleManager, dto.CEODashboardQueryDTO{Period: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, "month", payload.Period, "Неизвестный токен периода отражается как month")
}

func TestGetCEODashboard_ServesSecondCallFromCache(t *testing.T) {
	repo := &fakeDashboardRepo{}
	svc := NewDashboardService(repo, newFakeCache(), dashboardTestConfig(), zap.NewNop())

	_, err := svc.GetCEODashboard(context.Background(), types.RoleDirection, dto.CEODashboardQueryDTO{Period: "month"})
	require.NoError(t, err)
	callsAfterFirst := repo.calls

	_, err = svc.GetCEODashboard(context.Background(), types.RoleDirection, dto.CEODashboardQueryDTO{Period: "month"})
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, repo.calls, "Повторный запрос должен обслужиться из кеша")
}

func TestGetCEODashboard_AlertsTimeoutDegrades(t *testing.T) {
	repo := &fakeDashboardRepo{slowAlerts: true}
	svc := NewDashboardService(repo, newFakeCache(), dashboardTestConfig(), zap.NewNop())

	payload, err := svc.GetCEODashboard(context.Background(), types.RoleDirection, dto.CEODashboardQueryDTO{Period: "month"})
	require.NoError(t, err, "Просрочка алертов не должна ронять весь дашборд")

	assert.Nil(t, payload.Alerts)
	assert.Equal(t, "TIMEOUT", payload.AlertsError)
	require.NotNil(t, payload.Flux, "Остальные разделы должны быть на месте")
}

func TestDashboardCacheKey_OrderInsensitive(t *testing.T) {
	a := dashboardCacheKey(types.RoleDirection, "month", types.DashboardFilter{Products: []string{"p1", "p2"}})
	b := dashboardCacheKey(types.RoleDirection, "month", types.DashboardFilter{Products: []string{"p2", "p1"}})
	assert.Equal(t, a, b, "Порядок значений фильтра не должен менять ключ кеша")

	c := dashboardCacheKey(types.RoleManager, "month", types.DashboardFilter{Products: []string{"p1", "p2"}})
	assert.NotEqual(t, a, c, "Роль входит в ключ кеша")
}
