package services

import (
	"fmt"
	"sort"
	"time"

	"ticketdesk/internal/entities"
	"ticketdesk/pkg/types"
)

// Не больше пяти алертов на категорию, чтобы виджет не превращался в простыню.
const maxAlertsPerCategory = 5

// BuildAlerts собирает операционные алерты из четырех источников.
// Результат отсортирован по приоритету стабильной сортировкой: внутри
// приоритета сохраняется порядок категорий и исходных строк.
func BuildAlerts(
	overdue []entities.Ticket,
	unassigned []entities.Ticket,
	blocked []entities.Task,
	upcoming []entities.Activity,
	now time.Time,
) []types.OperationalAlert {
	alerts := []types.OperationalAlert{}

	for i, t := range overdue {
		if i >= maxAlertsPerCategory {
			break
		}
		alerts = append(alerts, types.OperationalAlert{
			ID:          fmt.Sprintf("%s-%s", types.AlertOverdueCritical, t.ID),
			Category:    types.AlertOverdueCritical,
			Priority:    types.AlertPriorityHigh,
			Title:       "Просроченная критическая заявка",
			Description: fmt.Sprintf("Заявка %q просрочена и имеет приоритет %s", t.Title, t.Priority.String),
			RelatedID:   t.ID,
			CreatedAt:   now,
		})
	}

	for i, t := range unassigned {
		if i >= maxAlertsPerCategory {
			break
		}
		age := int(now.Sub(t.CreatedAt).Hours() / 24)
		alerts = append(alerts, types.OperationalAlert{
			ID:          fmt.Sprintf("%s-%s", types.AlertUnassignedLong, t.ID),
			Category:    types.AlertUnassignedLong,
			Priority:    types.AlertPriorityMedium,
			Title:       "Заявка долго без исполнителя",
			Description: fmt.Sprintf("Заявка %q не назначена уже %d дн", t.Title, age),
			RelatedID:   t.ID,
			CreatedAt:   now,
		})
	}

	for i, task := range blocked {
		if i >= maxAlertsPerCategory {
			break
		}
		alerts = append(alerts, types.OperationalAlert{
			ID:          fmt.Sprintf("%s-%s", types.AlertBlockedTask, task.ID),
			Category:    types.AlertBlockedTask,
			Priority:    types.AlertPriorityMedium,
			Title:       "Заблокированная задача",
			Description: fmt.Sprintf("Задача %q находится в статусе BLOCKED", task.Title),
			RelatedID:   task.ID,
			CreatedAt:   now,
		})
	}

	for i, a := range upcoming {
		if i >= maxAlertsPerCategory {
			break
		}
		alerts = append(alerts, types.OperationalAlert{
			ID:          fmt.Sprintf("%s-%s", types.AlertUpcomingActivity, a.ID),
			Category:    types.AlertUpcomingActivity,
			Priority:    types.AlertPriorityLow,
			Title:       "Предстоящая активность",
			Description: fmt.Sprintf("%q запланирована на %s", a.Title, a.ScheduledDate.Format("02.01.2006")),
			RelatedID:   a.ID,
			CreatedAt:   now,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return types.AlertPriorityOrder[alerts[i].Priority] < types.AlertPriorityOrder[alerts[j].Priority]
	})
	return alerts
}
