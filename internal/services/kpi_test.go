package services

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/entities"
	"ticketdesk/pkg/types"
)

var kpiNow = time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC)

func makeTicket(ticketType, productID, productName string) entities.Ticket {
	return entities.Ticket{
		ID:          "t-" + productID + "-" + ticketType,
		Title:       "Тестовая заявка",
		TicketType:  ticketType,
		ProductID:   null.StringFrom(productID),
		ProductName: null.StringFrom(productName),
		CreatedAt:   kpiNow.AddDate(0, 0, -3),
	}
}

func resolvedTicket(ticketType, productID, productName string, resolutionDays float64) entities.Ticket {
	t := makeTicket(ticketType, productID, productName)
	t.ResolvedAt = null.TimeFrom(t.CreatedAt.Add(time.Duration(resolutionDays * 24 * float64(time.Hour))))
	return t
}

func TestClassifyHealth_Thresholds(t *testing.T) {
	assert.Equal(t, types.HealthGood, ClassifyHealth(0))
	assert.Equal(t, types.HealthGood, ClassifyHealth(19.9), "19.9% - это еще good")
	assert.Equal(t, types.HealthWarning, ClassifyHealth(20), "Ровно 20% - уже warning")
	assert.Equal(t, types.HealthWarning, ClassifyHealth(39.9))
	assert.Equal(t, types.HealthCritical, ClassifyHealth(40), "Ровно 40% - уже critical")
	assert.Equal(t, types.HealthCritical, ClassifyHealth(100))
}

func TestClassifyHealth_UsesUnroundedRate(t *testing.T) {
	// 1 баг из 5 заявок у пяти продуктов дал бы 20% после округления,
	// но пороги применяются до округления.
	created := []entities.Ticket{
		makeTicket(entities.TicketTypeBug, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
	}
	health := BuildHealth(created)
	require.Len(t, health.ByProduct, 1)
	assert.Equal(t, types.HealthWarning, health.ByProduct[0].HealthStatus, "20% багов - это warning")
	assert.Equal(t, 20.0, health.ByProduct[0].BugRate)
	assert.Equal(t, int64(5), health.ByProduct[0].TotalTickets)
	assert.Equal(t, int64(1), health.ByProduct[0].TotalBugs)
}

func TestBuildHealth_IgnoresTicketsWithoutProduct(t *testing.T) {
	orphan := makeTicket(entities.TicketTypeBug, "", "")
	orphan.ProductID = null.String{}

	health := BuildHealth([]entities.Ticket{orphan})
	assert.Empty(t, health.ByProduct, "Заявка без продукта не попадает в разрез здоровья")
}

func TestBuildFlux(t *testing.T) {
	created := []entities.Ticket{
		makeTicket(entities.TicketTypeBug, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p2", "Продукт 2"),
		makeTicket(entities.TicketTypeRequest, "p2", "Продукт 2"),
	}
	resolved := []entities.Ticket{
		resolvedTicket(entities.TicketTypeBug, "p1", "Продукт 1", 1),
	}
	prevCreated := []entities.Ticket{
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
		makeTicket(entities.TicketTypeRequest, "p1", "Продукт 1"),
	}

	flux := BuildFlux(created, resolved, prevCreated, nil)

	assert.Equal(t, int64(4), flux.Opened)
	assert.Equal(t, int64(1), flux.Resolved)
	assert.Equal(t, 25, flux.ResolutionRate, "1 из 4 - это 25%")
	assert.Equal(t, 100, flux.OpenedTrend, "Рост с 2 до 4 - это +100%")
	assert.Equal(t, 100, flux.ResolvedTrend, "Рост с 0 до 1 - это +100%")

	require.Len(t, flux.ByProduct, 2)
	assert.Equal(t, "p1", flux.ByProduct[0].ProductID, "Продукты сортируются по числу открытых, затем по имени")
	assert.Equal(t, int64(2), flux.ByProduct[0].Opened)
	assert.Equal(t, int64(1), flux.ByProduct[0].Resolved)
}

func TestBuildMTTR(t *testing.T) {
	resolved := []entities.Ticket{
		resolvedTicket(entities.TicketTypeBug, "p1", "Продукт 1", 1),
		resolvedTicket(entities.TicketTypeBug, "p1", "Продукт 1", 2),
		resolvedTicket(entities.TicketTypeRequest, "p2", "Продукт 2", 6),
	}
	prev := []entities.Ticket{
		resolvedTicket(entities.TicketTypeBug, "p1", "Продукт 1", 6),
	}

	mttr := BuildMTTR(resolved, prev)

	assert.Equal(t, 3.0, mttr.Global, "Среднее из 1, 2 и 6 дней - это 3 дня")
	assert.Equal(t, -50, mttr.Trend, "Падение с 6 до 3 дней - это -50%")

	require.Len(t, mttr.ByProduct, 2)
	assert.Equal(t, "Продукт 2", mttr.ByProduct[0].ProductName, "Продукты сортируются по убыванию MTTR")
	assert.Equal(t, 6.0, mttr.ByProduct[0].MTTR)
	assert.Equal(t, 1.5, mttr.ByProduct[1].MTTR)

	require.Len(t, mttr.ByType, 2)
	assert.Equal(t, entities.TicketTypeBug, mttr.ByType[0].TicketType)
	assert.Equal(t, 1.5, mttr.ByType[0].MTTR)
}

func TestBuildMTTR_Empty(t *testing.T) {
	mttr := BuildMTTR(nil, nil)
	assert.Equal(t, 0.0, mttr.Global)
	assert.Equal(t, 0, mttr.Trend)
	assert.Empty(t, mttr.ByProduct)
}

func assignedTicket(agentID, agentName, agentRole string) entities.Ticket {
	return entities.Ticket{
		ID:         "t-" + agentID,
		TicketType: entities.TicketTypeRequest,
		AssignedTo: null.StringFrom(agentID),
		AgentName:  null.StringFrom(agentName),
		AgentRole:  null.StringFrom(agentRole),
		CreatedAt:  kpiNow.AddDate(0, 0, -1),
	}
}

func TestBuildWorkload(t *testing.T) {
	active := []entities.Ticket{
		assignedTicket("a1", "Первый Агент", "agent"),
		assignedTicket("a1", "Первый Агент", "agent"),
		assignedTicket("a1", "Первый Агент", "agent"),
		assignedTicket("a1", "Первый Агент", "agent"),
		assignedTicket("a2", "Второй Агент", "it"),
		assignedTicket("a2", "Второй Агент", "it"),
		{ID: "unassigned", TicketType: entities.TicketTypeRequest, CreatedAt: kpiNow},
	}
	resolved := []entities.Ticket{
		assignedTicket("a2", "Второй Агент", "it"),
	}

	workload := BuildWorkload(active, resolved)

	assert.Equal(t, int64(7), workload.TotalActive,
		"Неназначенные заявки входят в общий счетчик")

	require.Len(t, workload.ByAgent, 2, "Неназначенные заявки не создают агента")
	assert.Equal(t, "a1", workload.ByAgent[0].AgentID, "Агенты сортируются по убыванию активных заявок")
	assert.Equal(t, 100, workload.ByAgent[0].WorkloadPercent, "Самый нагруженный агент - это 100%")
	assert.Equal(t, "support", workload.ByAgent[0].Team, "Роль agent сворачивается в команду support")
	assert.Equal(t, 50, workload.ByAgent[1].WorkloadPercent, "2 из 4 - это 50%")
	assert.Equal(t, "it", workload.ByAgent[1].Team)
	assert.Equal(t, int64(1), workload.ByAgent[1].ResolvedThisPeriod)

	require.Len(t, workload.ByTeam, 2)
	assert.Equal(t, "it", workload.ByTeam[0].Team, "Команды сортируются по имени")
	assert.Equal(t, int64(2), workload.ByTeam[0].ActiveTickets)
	assert.Equal(t, int64(4), workload.ByTeam[1].ActiveTickets)
}

func TestMapTeam(t *testing.T) {
	assert.Equal(t, "it", mapTeam("IT"))
	assert.Equal(t, "marketing", mapTeam("marketing"))
	assert.Equal(t, "support", mapTeam("agent"), "Неизвестная роль попадает в support")
	assert.Equal(t, "support", mapTeam(""))
}
