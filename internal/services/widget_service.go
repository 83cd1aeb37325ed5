package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"ticketdesk/internal/repositories"
	"ticketdesk/pkg/config"
	apperrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/types"
)

const widgetConfigCachePrefix = "widgets:config:"

type WidgetServiceInterface interface {
	ResolveConfig(ctx context.Context, profileID string, role types.DashboardRole) (*types.ResolvedWidgetConfig, error)
	SaveUserPreferences(ctx context.Context, profileID string, hidden []string) error
	UpdateRoleWidgets(ctx context.Context, role string, widgets []string, updatedBy string) error
	InitializeDefaults(ctx context.Context, updatedBy string) ([]types.DashboardRole, error)
}

type WidgetService struct {
	repo      repositories.WidgetRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cfg       config.DashboardConfig
	logger    *zap.Logger
}

func NewWidgetService(
	repo repositories.WidgetRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) WidgetServiceInterface {
	return &WidgetService{repo: repo, cacheRepo: cacheRepo, cfg: cfg, logger: logger}
}

// ResolveConfig вычисляет конфигурацию на лету: видимое = доступное по роли
// минус скрытое пользователем. Ничего производного в БД не хранится.
func (s *WidgetService) ResolveConfig(ctx context.Context, profileID string, role types.DashboardRole) (*types.ResolvedWidgetConfig, error) {
	cacheKey := widgetConfigCachePrefix + profileID
	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var cfg types.ResolvedWidgetConfig
		if err := json.Unmarshal([]byte(cached), &cfg); err == nil && cfg.Role == role {
			return &cfg, nil
		}
	}

	available, err := s.repo.GetRoleWidgets(ctx, role)
	if err != nil {
		return nil, err
	}
	// Роль без строк в БД получает набор по умолчанию, а не пустой дашборд.
	if len(available) == 0 {
		available = append([]types.DashboardWidget(nil), s.cfg.DefaultWidgets[role]...)
	}
	available = orderByRegistry(available)

	hidden, err := s.repo.GetHiddenWidgets(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resolved := &types.ResolvedWidgetConfig{
		Role:             role,
		AvailableWidgets: available,
		VisibleWidgets:   types.SubtractWidgets(available, hidden),
		HiddenWidgets:    hidden,
	}

	if raw, err := json.Marshal(resolved); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, raw, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("Не удалось закешировать конфигурацию виджетов", zap.Error(err))
		}
	}
	return resolved, nil
}

// SaveUserPreferences полностью заменяет скрытый набор пользователя.
// Владелец определяется токеном: чужие настройки изменить нельзя.
func (s *WidgetService) SaveUserPreferences(ctx context.Context, profileID string, hidden []string) error {
	widgets, err := toKnownWidgets(hidden)
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceUserPreferences(ctx, profileID, widgets); err != nil {
		return err
	}
	if err := s.cacheRepo.Del(ctx, widgetConfigCachePrefix+profileID); err != nil {
		s.logger.Warn("Не удалось сбросить кеш конфигурации", zap.Error(err))
	}
	return nil
}

// UpdateRoleWidgets заменяет набор роли и сбрасывает кеш конфигураций
// всех пользователей: изменение роли затрагивает многих.
func (s *WidgetService) UpdateRoleWidgets(ctx context.Context, role string, widgets []string, updatedBy string) error {
	dashboardRole := types.DashboardRole(role)
	if !isKnownRole(dashboardRole) {
		return apperrors.NewBadRequestError("Неизвестная роль дашборда: "+role, nil)
	}
	known, err := toKnownWidgets(widgets)
	if err != nil {
		return err
	}
	if err := s.repo.ReplaceRoleWidgets(ctx, dashboardRole, known, updatedBy); err != nil {
		return err
	}
	if err := s.cacheRepo.DelByPattern(ctx, widgetConfigCachePrefix+"*"); err != nil {
		s.logger.Warn("Не удалось сбросить кеш конфигураций", zap.Error(err))
	}
	return nil
}

// InitializeDefaults засеивает наборы по умолчанию для еще не настроенных ролей.
func (s *WidgetService) InitializeDefaults(ctx context.Context, updatedBy string) ([]types.DashboardRole, error) {
	initialized, err := s.repo.InitializeRoleDefaults(ctx, s.cfg.DefaultWidgets, updatedBy)
	if err != nil {
		return nil, err
	}
	if len(initialized) > 0 {
		if err := s.cacheRepo.DelByPattern(ctx, widgetConfigCachePrefix+"*"); err != nil {
			s.logger.Warn("Не удалось сбросить кеш конфигураций", zap.Error(err))
		}
	}
	return initialized, nil
}

func toKnownWidgets(ids []string) ([]types.DashboardWidget, error) {
	widgets := make([]types.DashboardWidget, 0, len(ids))
	for _, id := range ids {
		w := types.DashboardWidget(id)
		if !types.IsKnownWidget(w) {
			return nil, apperrors.NewBadRequestError("Неизвестный виджет: "+id, nil)
		}
		widgets = append(widgets, w)
	}
	return widgets, nil
}

// orderByRegistry выстраивает набор в порядке реестра виджетов,
// чтобы вывод не зависел от порядка строк в БД.
func orderByRegistry(widgets []types.DashboardWidget) []types.DashboardWidget {
	present := make(map[types.DashboardWidget]struct{}, len(widgets))
	for _, w := range widgets {
		present[w] = struct{}{}
	}
	ordered := make([]types.DashboardWidget, 0, len(widgets))
	for _, w := range types.AllWidgets() {
		if _, ok := present[w]; ok {
			ordered = append(ordered, w)
		}
	}
	return ordered
}

func isKnownRole(role types.DashboardRole) bool {
	for _, r := range types.AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
