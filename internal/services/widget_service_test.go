package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticketdesk/pkg/config"
	apperrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/types"
)

// fakeCache - кеш в памяти, чтобы не поднимать Redis в юнит-тестах.
type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DelByPattern(_ context.Context, _ string) error {
	c.data = map[string]string{}
	return nil
}

// fakeWidgetRepo хранит конфигурацию в памяти.
type fakeWidgetRepo struct {
	roleWidgets map[types.DashboardRole][]types.DashboardWidget
	hidden      map[string][]types.DashboardWidget
}

func newFakeWidgetRepo() *fakeWidgetRepo {
	return &fakeWidgetRepo{
		roleWidgets: map[types.DashboardRole][]types.DashboardWidget{},
		hidden:      map[string][]types.DashboardWidget{},
	}
}

func (r *fakeWidgetRepo) GetRoleWidgets(_ context.Context, role types.DashboardRole) ([]types.DashboardWidget, error) {
	return r.roleWidgets[role], nil
}

func (r *fakeWidgetRepo) ReplaceRoleWidgets(_ context.Context, role types.DashboardRole, widgets []types.DashboardWidget, _ string) error {
	r.roleWidgets[role] = widgets
	return nil
}

func (r *fakeWidgetRepo) GetHiddenWidgets(_ context.Context, profileID string) ([]types.DashboardWidget, error) {
	return r.hidden[profileID], nil
}

func (r *fakeWidgetRepo) ReplaceUserPreferences(_ context.Context, profileID string, hidden []types.DashboardWidget) error {
	r.hidden[profileID] = hidden
	return nil
}

func (r *fakeWidgetRepo) InitializeRoleDefaults(_ context.Context, defaults map[types.DashboardRole][]types.DashboardWidget, _ string) ([]types.DashboardRole, error) {
	initialized := []types.DashboardRole{}
	for _, role := range types.AllRoles() {
		if _, exists := r.roleWidgets[role]; exists {
			continue
		}
		widgets, ok := defaults[role]
		if !ok {
			continue
		}
		r.roleWidgets[role] = widgets
		initialized = append(initialized, role)
	}
	return initialized, nil
}

func newWidgetService(repo *fakeWidgetRepo, cache *fakeCache) WidgetServiceInterface {
	return NewWidgetService(repo, cache, config.DefaultDashboardConfig(), zap.NewNop())
}

func TestResolveConfig_FallsBackToDefaults(t *testing.T) {
	svc := newWidgetService(newFakeWidgetRepo(), newFakeCache())

	resolved, err := svc.ResolveConfig(context.Background(), "user-1", types.RoleManager)
	require.NoError(t, err)

	assert.Equal(t, types.RoleManager, resolved.Role)
	assert.Equal(t, config.DefaultDashboardConfig().DefaultWidgets[types.RoleManager], resolved.AvailableWidgets,
		"Ненастроенная роль получает набор по умолчанию")
	assert.Equal(t, resolved.AvailableWidgets, resolved.VisibleWidgets)
	assert.Empty(t, resolved.HiddenWidgets)
}

func TestResolveConfig_SubtractsHidden(t *testing.T) {
	repo := newFakeWidgetRepo()
	repo.roleWidgets[types.RoleDirection] = types.AllWidgets()
	repo.hidden["user-1"] = []types.DashboardWidget{types.WidgetMTTR, types.WidgetHealth}
	svc := newWidgetService(repo, newFakeCache())

	resolved, err := svc.ResolveConfig(context.Background(), "user-1", types.RoleDirection)
	require.NoError(t, err)

	assert.Equal(t, []types.DashboardWidget{types.WidgetFlux, types.WidgetWorkload, types.WidgetAlerts},
		resolved.VisibleWidgets)
}

func TestSaveUserPreferences_RejectsUnknownWidget(t *testing.T) {
	svc := newWidgetService(newFakeWidgetRepo(), newFakeCache())

	err := svc.SaveUserPreferences(context.Background(), "user-1", []string{"mttr", "bogus"})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestSaveUserPreferences_InvalidatesCachedConfig(t *testing.T) {
	repo := newFakeWidgetRepo()
	cache := newFakeCache()
	svc := newWidgetService(repo, cache)

	_, err := svc.ResolveConfig(context.Background(), "user-1", types.RoleDirection)
	require.NoError(t, err)
	require.Contains(t, cache.data, widgetConfigCachePrefix+"user-1")

	require.NoError(t, svc.SaveUserPreferences(context.Background(), "user-1", []string{"mttr"}))
	assert.NotContains(t, cache.data, widgetConfigCachePrefix+"user-1",
		"Сохранение настроек должно сбрасывать кеш конфигурации")

	resolved, err := svc.ResolveConfig(context.Background(), "user-1", types.RoleDirection)
	require.NoError(t, err)
	assert.Equal(t, []types.DashboardWidget{types.WidgetMTTR}, resolved.HiddenWidgets)
}

func TestUpdateRoleWidgets_RejectsUnknownRole(t *testing.T) {
	svc := newWidgetService(newFakeWidgetRepo(), newFakeCache())

	err := svc.UpdateRoleWidgets(context.Background(), "ceo", []string{"mttr"}, "admin-1")
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestUpdateRoleWidgets_ReplacesSet(t *testing.T) {
	repo := newFakeWidgetRepo()
	repo.roleWidgets[types.RoleManager] = types.AllWidgets()
	svc := newWidgetService(repo, newFakeCache())

	err := svc.UpdateRoleWidgets(context.Background(), "manager", []string{"flux", "alerts"}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, []types.DashboardWidget{types.WidgetFlux, types.WidgetAlerts},
		repo.roleWidgets[types.RoleManager], "Набор заменяется целиком, а не дополняется")
}

func TestInitializeDefaults_Idempotent(t *testing.T) {
	repo := newFakeWidgetRepo()
	svc := newWidgetService(repo, newFakeCache())

	first, err := svc.InitializeDefaults(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Len(t, first, 4, "Первый запуск инициализирует все четыре роли")

	second, err := svc.InitializeDefaults(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Empty(t, second, "Повторный запуск ничего не трогает")
}
