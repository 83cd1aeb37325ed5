package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ticketdesk/internal/entities"
	"ticketdesk/pkg/types"
)

// WidgetRepositoryInterface хранит конфигурацию виджетов: наборы по ролям
// и персональные скрытия. Запись наборов - полная замена в транзакции,
// чтобы конфигурация никогда не читалась наполовину обновленной.
type WidgetRepositoryInterface interface {
	GetRoleWidgets(ctx context.Context, role types.DashboardRole) ([]types.DashboardWidget, error)
	ReplaceRoleWidgets(ctx context.Context, role types.DashboardRole, widgets []types.DashboardWidget, updatedBy string) error
	GetHiddenWidgets(ctx context.Context, profileID string) ([]types.DashboardWidget, error)
	ReplaceUserPreferences(ctx context.Context, profileID string, hidden []types.DashboardWidget) error
	InitializeRoleDefaults(ctx context.Context, defaults map[types.DashboardRole][]types.DashboardWidget, updatedBy string) ([]types.DashboardRole, error)
}

type WidgetRepository struct {
	storage   *pgxpool.Pool
	txManager TxManagerInterface
	logger    *zap.Logger
}

func NewWidgetRepository(storage *pgxpool.Pool, txManager TxManagerInterface, logger *zap.Logger) WidgetRepositoryInterface {
	return &WidgetRepository{storage: storage, txManager: txManager, logger: logger}
}

// GetRoleWidgets возвращает включенные виджеты роли. Пустой срез означает,
// что роль еще не инициализирована, а не "роль без виджетов".
func (r *WidgetRepository) GetRoleWidgets(ctx context.Context, role types.DashboardRole) ([]types.DashboardWidget, error) {
	sqlStr, args, err := sq.Select("role", "widget_id", "enabled", "updated_by", "updated_at").
		From("dashboard_role_widgets").
		Where(sq.Eq{"role": string(role), "enabled": true}).
		OrderBy("widget_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.RoleWidget])
	if err != nil {
		return nil, err
	}

	widgets := make([]types.DashboardWidget, 0, len(records))
	for _, rec := range records {
		widgets = append(widgets, types.DashboardWidget(rec.WidgetID))
	}
	return widgets, nil
}

// ReplaceRoleWidgets полностью заменяет набор роли: delete + insert в одной транзакции.
func (r *WidgetRepository) ReplaceRoleWidgets(ctx context.Context, role types.DashboardRole, widgets []types.DashboardWidget, updatedBy string) error {
	return r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		delSQL, delArgs, err := sq.Delete("dashboard_role_widgets").
			Where(sq.Eq{"role": string(role)}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, delSQL, delArgs...); err != nil {
			return err
		}

		if len(widgets) == 0 {
			return nil
		}

		ins := sq.Insert("dashboard_role_widgets").
			Columns("role", "widget_id", "enabled", "updated_by", "updated_at")
		now := time.Now()
		for _, w := range widgets {
			ins = ins.Values(string(role), string(w), true, updatedBy, now)
		}
		insSQL, insArgs, err := ins.PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, insSQL, insArgs...)
		return err
	})
}

// GetHiddenWidgets - виджеты, скрытые пользователем вручную.
func (r *WidgetRepository) GetHiddenWidgets(ctx context.Context, profileID string) ([]types.DashboardWidget, error) {
	sqlStr, args, err := sq.Select("profile_id", "widget_id", "visible", "updated_at").
		From("dashboard_user_preferences").
		Where(sq.Eq{"profile_id": profileID, "visible": false}).
		OrderBy("widget_id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.UserWidgetPreference])
	if err != nil {
		return nil, err
	}

	widgets := make([]types.DashboardWidget, 0, len(records))
	for _, rec := range records {
		widgets = append(widgets, types.DashboardWidget(rec.WidgetID))
	}
	return widgets, nil
}

// ReplaceUserPreferences полностью заменяет персональные настройки профиля.
// Сохраняются только скрытия: видимость по умолчанию задается ролью.
func (r *WidgetRepository) ReplaceUserPreferences(ctx context.Context, profileID string, hidden []types.DashboardWidget) error {
	return r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		delSQL, delArgs, err := sq.Delete("dashboard_user_preferences").
			Where(sq.Eq{"profile_id": profileID}).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err = tx.Exec(ctx, delSQL, delArgs...); err != nil {
			return err
		}

		if len(hidden) == 0 {
			return nil
		}

		ins := sq.Insert("dashboard_user_preferences").
			Columns("profile_id", "widget_id", "visible", "updated_at")
		now := time.Now()
		for _, w := range hidden {
			ins = ins.Values(profileID, string(w), false, now)
		}
		insSQL, insArgs, err := ins.PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, insSQL, insArgs...)
		return err
	})
}

// InitializeRoleDefaults засеивает наборы по умолчанию только для ролей,
// у которых еще нет ни одной строки. Возвращает список инициализированных ролей.
func (r *WidgetRepository) InitializeRoleDefaults(ctx context.Context, defaults map[types.DashboardRole][]types.DashboardWidget, updatedBy string) ([]types.DashboardRole, error) {
	initialized := make([]types.DashboardRole, 0, len(defaults))

	err := r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, role := range types.AllRoles() {
			widgets, ok := defaults[role]
			if !ok {
				continue
			}

			cntSQL, cntArgs, err := sq.Select("COUNT(*)").
				From("dashboard_role_widgets").
				Where(sq.Eq{"role": string(role)}).
				PlaceholderFormat(sq.Dollar).
				ToSql()
			if err != nil {
				return err
			}
			var count int
			if err = tx.QueryRow(ctx, cntSQL, cntArgs...).Scan(&count); err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			ins := sq.Insert("dashboard_role_widgets").
				Columns("role", "widget_id", "enabled", "updated_by", "updated_at")
			now := time.Now()
			for _, w := range widgets {
				ins = ins.Values(string(role), string(w), true, updatedBy, now)
			}
			insSQL, insArgs, err := ins.PlaceholderFormat(sq.Dollar).ToSql()
			if err != nil {
				return err
			}
			if _, err = tx.Exec(ctx, insSQL, insArgs...); err != nil {
				return err
			}
			initialized = append(initialized, role)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return initialized, nil
}
