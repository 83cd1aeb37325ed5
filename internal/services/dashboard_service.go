package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ticketdesk/internal/dto"
	"ticketdesk/internal/entities"
	"ticketdesk/internal/repositories"
	"ticketdesk/pkg/config"
	apperrors "ticketdesk/pkg/errors"
	"ticketdesk/pkg/types"
)

// Код деградации раздела алертов, уходит клиенту в alerts_error.
const alertsErrorTimeout = "TIMEOUT"

// Интервалы алертов: "долго без исполнителя" и горизонт предстоящих активностей.
const (
	unassignedAlertAge  = 7 * 24 * time.Hour
	upcomingAlertWindow = 7 * 24 * time.Hour
)

type DashboardServiceInterface interface {
	GetCEODashboard(ctx context.Context, role types.DashboardRole, query dto.CEODashboardQueryDTO) (*dto.CEODashboardDTO, error)
}

type DashboardService struct {
	repo      repositories.DashboardRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cfg       config.DashboardConfig
	logger    *zap.Logger
}

func NewDashboardService(
	repo repositories.DashboardRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cfg config.DashboardConfig,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{repo: repo, cacheRepo: cacheRepo, cfg: cfg, logger: logger}
}

// GetCEODashboard собирает полный груз дашборда за один проход.
// Роль agent не имеет доступа к сводному дашборду.
func (s *DashboardService) GetCEODashboard(ctx context.Context, role types.DashboardRole, query dto.CEODashboardQueryDTO) (*dto.CEODashboardDTO, error) {
	if role == types.RoleAgent {
		return nil, apperrors.NewForbiddenError("Сводный дашборд недоступен для роли agent")
	}

	filter := types.DashboardFilter{
		Products: query.Products,
		Teams:    query.Teams,
		Types:    query.Types,
	}

	cacheKey := dashboardCacheKey(role, query.Period, filter)
	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var payload dto.CEODashboardDTO
		if err := json.Unmarshal([]byte(cached), &payload); err == nil {
			return &payload, nil
		}
		// Битый кеш не повод падать: пересчитываем и перезаписываем.
		s.logger.Warn("Не удалось разобрать кеш дашборда, пересчитываем", zap.String("key", cacheKey))
	}

	now := time.Now()
	current := types.ResolvePeriodAt(query.Period, now)
	previous := current.Previous()

	var (
		wg           sync.WaitGroup
		created      []entities.Ticket
		resolved     []entities.Ticket
		prevCreated  []entities.Ticket
		prevResolved []entities.Ticket
		active       []entities.Ticket
		alerts       []types.OperationalAlert
		alertsError  string

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) {
		created, err = s.repo.TicketsCreatedBetween(ctx, current.Start, current.End, filter)
		return
	})
	addTask(func() (err error) {
		resolved, err = s.repo.TicketsResolvedBetween(ctx, current.Start, current.End, filter)
		return
	})
	addTask(func() (err error) {
		prevCreated, err = s.repo.TicketsCreatedBetween(ctx, previous.Start, previous.End, filter)
		return
	})
	addTask(func() (err error) {
		prevResolved, err = s.repo.TicketsResolvedBetween(ctx, previous.Start, previous.End, filter)
		return
	})
	addTask(func() (err error) {
		active, err = s.repo.ActiveTickets(ctx, filter)
		return
	})

	// Раздел алертов живет под собственным дедлайном: если не уложился,
	// дашборд отдается без него, с кодом TIMEOUT вместо молчаливого nil.
	addTask(func() error {
		alertsCtx, cancel := context.WithTimeout(ctx, s.cfg.AlertsTimeout)
		defer cancel()

		built, err := s.buildAlerts(alertsCtx, now)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				mu.Lock()
				alertsError = alertsErrorTimeout
				mu.Unlock()
				s.logger.Warn("Раздел алертов не уложился в дедлайн",
					zap.Duration("timeout", s.cfg.AlertsTimeout))
				return nil
			}
			return err
		}
		mu.Lock()
		alerts = built
		mu.Unlock()
		return nil
	})

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Ошибка загрузки дашборда", zap.Error(errs[0]))
		return nil, apperrors.NewInternalError("Ошибка загрузки дашборда")
	}

	payload := &dto.CEODashboardDTO{
		Period:      normalizePeriodToken(query.Period),
		PeriodStart: current.Start.Format(time.RFC3339),
		PeriodEnd:   current.End.Format(time.RFC3339),
		Flux:        BuildFlux(created, resolved, prevCreated, prevResolved),
		MTTR:        BuildMTTR(resolved, prevResolved),
		Workload:    BuildWorkload(active, resolved),
		Health:      BuildHealth(created),
		Alerts:      alerts,
		AlertsError: alertsError,
	}

	if raw, err := json.Marshal(payload); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, raw, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("Не удалось записать дашборд в кеш", zap.Error(err))
		}
	}

	return payload, nil
}

// buildAlerts выполняет четыре выборки последовательно под общим дедлайном.
func (s *DashboardService) buildAlerts(ctx context.Context, now time.Time) ([]types.OperationalAlert, error) {
	overdue, err := s.repo.OverdueCriticalTickets(ctx, now)
	if err != nil {
		return nil, err
	}
	unassigned, err := s.repo.UnassignedTicketsOlderThan(ctx, now.Add(-unassignedAlertAge))
	if err != nil {
		return nil, err
	}
	blocked, err := s.repo.BlockedTasks(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.UpcomingActivities(ctx, now, now.Add(upcomingAlertWindow))
	if err != nil {
		return nil, err
	}
	return BuildAlerts(overdue, unassigned, blocked, upcoming, now), nil
}

// dashboardCacheKey детерминирован: наборы фильтров сортируются, поэтому
// одинаковые запросы с разным порядком значений попадают в один ключ.
func dashboardCacheKey(role types.DashboardRole, period string, filter types.DashboardFilter) string {
	return fmt.Sprintf("dashboard:ceo:%s:%s:p=%s:t=%s:y=%s",
		role,
		normalizePeriodToken(period),
		sortedJoin(filter.Products),
		sortedJoin(filter.Teams),
		sortedJoin(filter.Types),
	)
}

func sortedJoin(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// normalizePeriodToken повторяет тотальность резолвера: в ответе и ключе кеша
// неизвестный токен выглядит как "month".
func normalizePeriodToken(token string) string {
	if isLiteralYear(token) {
		return token
	}
	switch types.Period(token) {
	case types.PeriodWeek, types.PeriodMonth, types.PeriodQuarter, types.PeriodYear:
		return token
	default:
		return string(types.PeriodMonth)
	}
}

func isLiteralYear(token string) bool {
	if len(token) != 4 || token[0] == '0' {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
