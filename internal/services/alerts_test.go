package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/entities"
	"ticketdesk/pkg/types"
)

var alertsNow = time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)

func overdueTicket(id string) entities.Ticket {
	return entities.Ticket{
		ID:        id,
		Title:     "Просроченная " + id,
		Priority:  null.StringFrom(entities.TicketPriorityCritical),
		DueDate:   null.TimeFrom(alertsNow.AddDate(0, 0, -2)),
		CreatedAt: alertsNow.AddDate(0, 0, -10),
	}
}

func TestBuildAlerts_PriorityOrder(t *testing.T) {
	overdue := []entities.Ticket{overdueTicket("o1")}
	unassigned := []entities.Ticket{{ID: "u1", Title: "Без исполнителя", CreatedAt: alertsNow.AddDate(0, 0, -9)}}
	blocked := []entities.Task{{ID: "b1", Title: "Заблокированная", Status: entities.TaskStatusBlocked}}
	upcoming := []entities.Activity{{ID: "a1", Title: "Планерка", ScheduledDate: alertsNow.AddDate(0, 0, 2)}}

	alerts := BuildAlerts(overdue, unassigned, blocked, upcoming, alertsNow)

	require.Len(t, alerts, 4)
	assert.Equal(t, types.AlertPriorityHigh, alerts[0].Priority)
	assert.Equal(t, types.AlertPriorityMedium, alerts[1].Priority)
	assert.Equal(t, types.AlertPriorityMedium, alerts[2].Priority)
	assert.Equal(t, types.AlertPriorityLow, alerts[3].Priority)

	assert.Equal(t, types.AlertOverdueCritical, alerts[0].Category)
	assert.Equal(t, types.AlertUnassignedLong, alerts[1].Category,
		"Внутри одного приоритета порядок категорий стабилен")
	assert.Equal(t, types.AlertBlockedTask, alerts[2].Category)
	assert.Equal(t, types.AlertUpcomingActivity, alerts[3].Category)
}

func TestBuildAlerts_CapPerCategory(t *testing.T) {
	overdue := make([]entities.Ticket, 0, 8)
	for i := 0; i < 8; i++ {
		overdue = append(overdue, overdueTicket(fmt.Sprintf("o%d", i)))
	}

	alerts := BuildAlerts(overdue, nil, nil, nil, alertsNow)
	assert.Len(t, alerts, 5, "Не больше пяти алертов на категорию")
	assert.Equal(t, "o0", alerts[0].RelatedID, "Порядок исходных строк сохраняется")
	assert.Equal(t, "o4", alerts[4].RelatedID)
}

func TestBuildAlerts_Empty(t *testing.T) {
	alerts := BuildAlerts(nil, nil, nil, nil, alertsNow)
	assert.NotNil(t, alerts, "Пустой результат - это пустой срез, а не nil")
	assert.Empty(t, alerts)
}

func TestBuildAlerts_UnassignedAgeInDescription(t *testing.T) {
	unassigned := []entities.Ticket{{ID: "u1", Title: "Старая заявка", CreatedAt: alertsNow.AddDate(0, 0, -8)}}
	alerts := BuildAlerts(nil, unassigned, nil, nil, alertsNow)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Description, "8 дн")
	assert.Equal(t, "unassigned_long-u1", alerts[0].ID)
}
