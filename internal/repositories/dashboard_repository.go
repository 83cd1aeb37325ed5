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

// DashboardRepositoryInterface отдает сырые строки для агрегации.
// Контракт: пустой результат - это пустой срез, а не ошибка; ошибки хранилища
// поднимаются наверх без изменений.
type DashboardRepositoryInterface interface {
	TicketsCreatedBetween(ctx context.Context, from, to time.Time, filter types.DashboardFilter) ([]entities.Ticket, error)
	TicketsResolvedBetween(ctx context.Context, from, to time.Time, filter types.DashboardFilter) ([]entities.Ticket, error)
	ActiveTickets(ctx context.Context, filter types.DashboardFilter) ([]entities.Ticket, error)
	OverdueCriticalTickets(ctx context.Context, now time.Time) ([]entities.Ticket, error)
	UnassignedTicketsOlderThan(ctx context.Context, cutoff time.Time) ([]entities.Ticket, error)
	UpcomingActivities(ctx context.Context, from, to time.Time) ([]entities.Activity, error)
	BlockedTasks(ctx context.Context) ([]entities.Task, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// Полный набор колонок заявки вместе с именами продукта и агента.
func ticketSelect() sq.SelectBuilder {
	return sq.Select(
		"t.id",
		"t.title",
		"t.ticket_type",
		"t.status",
		"t.priority",
		"t.product_id",
		"p.name as product_name",
		"t.assigned_to",
		"a.full_name as agent_name",
		"a.role as agent_role",
		"t.due_date",
		"t.resolved_at",
		"t.created_at",
	).From("tickets t").
		LeftJoin("products p ON t.product_id = p.id").
		LeftJoin("profiles a ON t.assigned_to = a.id")
}

// applyFilter накладывает необязательные срезы. Отсутствующий набор
// не ограничивает выборку.
func applyFilter(b sq.SelectBuilder, filter types.DashboardFilter) sq.SelectBuilder {
	if len(filter.Products) > 0 {
		b = b.Where(sq.Eq{"t.product_id": filter.Products})
	}
	if len(filter.Teams) > 0 {
		b = b.Where(sq.Eq{"t.assigned_to": filter.Teams})
	}
	if len(filter.Types) > 0 {
		b = b.Where(sq.Eq{"t.ticket_type": filter.Types})
	}
	return b
}

func (r *DashboardRepository) collectTickets(ctx context.Context, b sq.SelectBuilder) ([]entities.Ticket, error) {
	sqlStr, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Ticket])
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []entities.Ticket{}
	}
	return tickets, nil
}

// TicketsCreatedBetween - заявки, созданные в полуоткрытом интервале [from, to).
func (r *DashboardRepository) TicketsCreatedBetween(ctx context.Context, from, to time.Time, filter types.DashboardFilter) ([]entities.Ticket, error) {
	b := ticketSelect().
		Where(sq.GtOrEq{"t.created_at": from}).
		Where(sq.Lt{"t.created_at": to})
	return r.collectTickets(ctx, applyFilter(b, filter))
}

// TicketsResolvedBetween - заявки, решенные в интервале [from, to).
func (r *DashboardRepository) TicketsResolvedBetween(ctx context.Context, from, to time.Time, filter types.DashboardFilter) ([]entities.Ticket, error) {
	b := ticketSelect().
		Where("t.resolved_at IS NOT NULL").
		Where(sq.GtOrEq{"t.resolved_at": from}).
		Where(sq.Lt{"t.resolved_at": to})
	return r.collectTickets(ctx, applyFilter(b, filter))
}

// ActiveTickets - все нерешенные заявки на момент запроса.
func (r *DashboardRepository) ActiveTickets(ctx context.Context, filter types.DashboardFilter) ([]entities.Ticket, error) {
	b := ticketSelect().Where("t.resolved_at IS NULL")
	return r.collectTickets(ctx, applyFilter(b, filter))
}

// OverdueCriticalTickets - нерешенные заявки HIGH/CRITICAL с просроченным сроком.
func (r *DashboardRepository) OverdueCriticalTickets(ctx context.Context, now time.Time) ([]entities.Ticket, error) {
	b := ticketSelect().
		Where("t.resolved_at IS NULL").
		Where(sq.Lt{"t.due_date": now}).
		Where(sq.Eq{"t.priority": []string{entities.TicketPriorityHigh, entities.TicketPriorityCritical}})
	return r.collectTickets(ctx, b)
}

// UnassignedTicketsOlderThan - нерешенные заявки без исполнителя, созданные до cutoff.
func (r *DashboardRepository) UnassignedTicketsOlderThan(ctx context.Context, cutoff time.Time) ([]entities.Ticket, error) {
	b := ticketSelect().
		Where("t.resolved_at IS NULL").
		Where("t.assigned_to IS NULL").
		Where(sq.Lt{"t.created_at": cutoff})
	return r.collectTickets(ctx, b)
}

// UpcomingActivities - активности, запланированные в интервале [from, to).
func (r *DashboardRepository) UpcomingActivities(ctx context.Context, from, to time.Time) ([]entities.Activity, error) {
	b := sq.Select("a.id", "a.title", "a.scheduled_date").
		From("activities a").
		Where(sq.GtOrEq{"a.scheduled_date": from}).
		Where(sq.Lt{"a.scheduled_date": to}).
		OrderBy("a.scheduled_date")

	sqlStr, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Activity])
	if err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []entities.Activity{}
	}
	return activities, nil
}

// BlockedTasks - задачи в статусе BLOCKED.
func (r *DashboardRepository) BlockedTasks(ctx context.Context) ([]entities.Task, error) {
	b := sq.Select("tk.id", "tk.title", "tk.status").
		From("tasks tk").
		Where(sq.Eq{"tk.status": entities.TaskStatusBlocked}).
		OrderBy("tk.id")

	sqlStr, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Task])
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entities.Task{}
	}
	return tasks, nil
}
