package services

import (
	"sort"
	"strings"

	"ticketdesk/internal/entities"
	"ticketdesk/pkg/types"
	"ticketdesk/pkg/utils"
)

// Чистая агрегация KPI: на входе сырые строки, на выходе готовые данные виджетов.
// Никаких обращений к хранилищу, чтобы расчеты можно было проверить таблично.

// BuildFlux собирает поток заявок: открыто/решено за период, доля решенных
// и тренды к предыдущему периоду.
func BuildFlux(created, resolved, prevCreated, prevResolved []entities.Ticket) *types.TicketFluxData {
	opened := int64(len(created))
	done := int64(len(resolved))

	byProduct := map[string]*types.ProductFlux{}
	for _, t := range created {
		if !t.ProductID.Valid {
			continue
		}
		p := productFluxEntry(byProduct, t)
		p.Opened++
	}
	for _, t := range resolved {
		if !t.ProductID.Valid {
			continue
		}
		p := productFluxEntry(byProduct, t)
		p.Resolved++
	}

	products := make([]types.ProductFlux, 0, len(byProduct))
	for _, p := range byProduct {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Opened != products[j].Opened {
			return products[i].Opened > products[j].Opened
		}
		return products[i].ProductName < products[j].ProductName
	})

	return &types.TicketFluxData{
		Opened:         opened,
		Resolved:       done,
		ResolutionRate: ClampRate(float64(done), float64(opened)),
		OpenedTrend:    CalculateTrend(float64(opened), float64(len(prevCreated))),
		ResolvedTrend:  CalculateTrend(float64(done), float64(len(prevResolved))),
		ByProduct:      products,
	}
}

func productFluxEntry(m map[string]*types.ProductFlux, t entities.Ticket) *types.ProductFlux {
	id := t.ProductID.String
	p, ok := m[id]
	if !ok {
		p = &types.ProductFlux{ProductID: id, ProductName: t.ProductName.String}
		m[id] = p
	}
	return p
}

// BuildMTTR считает среднее время решения в днях по заявкам, решенным за период.
// Тренд сравнивает неокругленные средние; округление - только для вывода.
func BuildMTTR(resolved, prevResolved []entities.Ticket) *types.MTTRData {
	global := averageResolutionDays(resolved)
	prevGlobal := averageResolutionDays(prevResolved)

	byProduct := map[string][]entities.Ticket{}
	byType := map[string][]entities.Ticket{}
	for _, t := range resolved {
		if t.ProductID.Valid {
			byProduct[t.ProductID.String] = append(byProduct[t.ProductID.String], t)
		}
		byType[t.TicketType] = append(byType[t.TicketType], t)
	}

	products := make([]types.ProductMTTR, 0, len(byProduct))
	for id, tickets := range byProduct {
		products = append(products, types.ProductMTTR{
			ProductID:   id,
			ProductName: tickets[0].ProductName.String,
			MTTR:        utils.RoundTo1(averageResolutionDays(tickets)),
		})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].MTTR != products[j].MTTR {
			return products[i].MTTR > products[j].MTTR
		}
		return products[i].ProductName < products[j].ProductName
	})

	ticketTypes := make([]types.TypeMTTR, 0, len(byType))
	for tt, tickets := range byType {
		ticketTypes = append(ticketTypes, types.TypeMTTR{
			TicketType: tt,
			MTTR:       utils.RoundTo1(averageResolutionDays(tickets)),
		})
	}
	sort.Slice(ticketTypes, func(i, j int) bool {
		return ticketTypes[i].TicketType < ticketTypes[j].TicketType
	})

	return &types.MTTRData{
		Global:    utils.RoundTo1(global),
		Trend:     CalculateTrend(global, prevGlobal),
		ByProduct: products,
		ByType:    ticketTypes,
	}
}

func averageResolutionDays(tickets []entities.Ticket) float64 {
	var sum float64
	var n int
	for _, t := range tickets {
		if !t.ResolvedAt.Valid {
			continue
		}
		sum += t.ResolvedAt.Time.Sub(t.CreatedAt).Hours() / 24
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BuildWorkload раскладывает активные и решенные за период заявки по агентам
// и командам. Заявки без исполнителя входят в total_active, но не попадают
// в разрезы по агентам и командам.
func BuildWorkload(active, resolved []entities.Ticket) *types.WorkloadData {
	type agentAcc struct {
		name     string
		team     string
		active   int64
		resolved int64
	}
	agents := map[string]*agentAcc{}

	accFor := func(t entities.Ticket) *agentAcc {
		id := t.AssignedTo.String
		a, ok := agents[id]
		if !ok {
			a = &agentAcc{name: t.AgentName.String, team: mapTeam(t.AgentRole.String)}
			agents[id] = a
		}
		return a
	}

	for _, t := range active {
		if !t.AssignedTo.Valid {
			continue
		}
		accFor(t).active++
	}
	for _, t := range resolved {
		if !t.AssignedTo.Valid {
			continue
		}
		accFor(t).resolved++
	}

	var maxActive int64
	for _, a := range agents {
		if a.active > maxActive {
			maxActive = a.active
		}
	}

	byAgent := make([]types.AgentWorkload, 0, len(agents))
	teamAcc := map[string]*types.TeamWorkload{}
	for id, a := range agents {
		percent := 0
		if maxActive > 0 {
			percent = ClampRate(float64(a.active), float64(maxActive))
		}
		byAgent = append(byAgent, types.AgentWorkload{
			AgentID:            id,
			AgentName:          a.name,
			Team:               a.team,
			ActiveTickets:      a.active,
			ResolvedThisPeriod: a.resolved,
			WorkloadPercent:    percent,
		})

		tw, ok := teamAcc[a.team]
		if !ok {
			tw = &types.TeamWorkload{Team: a.team}
			teamAcc[a.team] = tw
		}
		tw.ActiveTickets += a.active
		tw.ResolvedThisPeriod += a.resolved
	}

	sort.Slice(byAgent, func(i, j int) bool {
		if byAgent[i].ActiveTickets != byAgent[j].ActiveTickets {
			return byAgent[i].ActiveTickets > byAgent[j].ActiveTickets
		}
		return byAgent[i].AgentName < byAgent[j].AgentName
	})

	byTeam := make([]types.TeamWorkload, 0, len(teamAcc))
	for _, tw := range teamAcc {
		byTeam = append(byTeam, *tw)
	}
	sort.Slice(byTeam, func(i, j int) bool {
		return byTeam[i].Team < byTeam[j].Team
	})

	return &types.WorkloadData{
		ByTeam:      byTeam,
		ByAgent:     byAgent,
		TotalActive: int64(len(active)),
	}
}

// mapTeam сворачивает роль профиля в одну из трех команд.
// Неизвестные роли относятся к support.
func mapTeam(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "it":
		return "it"
	case "marketing":
		return "marketing"
	default:
		return "support"
	}
}

// BuildHealth оценивает здоровье продуктов по доле багов среди заявок периода.
// Пороги применяются к неокругленной доле: 19.95% - это еще good.
func BuildHealth(created []entities.Ticket) *types.ProductHealthData {
	type healthAcc struct {
		name  string
		total int64
		bugs  int64
	}
	byProduct := map[string]*healthAcc{}
	for _, t := range created {
		if !t.ProductID.Valid {
			continue
		}
		h, ok := byProduct[t.ProductID.String]
		if !ok {
			h = &healthAcc{name: t.ProductName.String}
			byProduct[t.ProductID.String] = h
		}
		h.total++
		if t.TicketType == entities.TicketTypeBug {
			h.bugs++
		}
	}

	products := make([]types.ProductHealth, 0, len(byProduct))
	for id, h := range byProduct {
		var bugRate float64
		if h.total > 0 {
			bugRate = float64(h.bugs) / float64(h.total) * 100
		}
		products = append(products, types.ProductHealth{
			ProductID:    id,
			ProductName:  h.name,
			BugRate:      utils.RoundTo1(bugRate),
			TotalTickets: h.total,
			TotalBugs:    h.bugs,
			HealthStatus: ClassifyHealth(bugRate),
		})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].BugRate != products[j].BugRate {
			return products[i].BugRate > products[j].BugRate
		}
		return products[i].ProductName < products[j].ProductName
	})

	return &types.ProductHealthData{ByProduct: products}
}

// ClassifyHealth: до 20% багов - good, до 40% - warning, дальше critical.
func ClassifyHealth(bugRate float64) types.HealthStatus {
	switch {
	case bugRate < 20:
		return types.HealthGood
	case bugRate < 40:
		return types.HealthWarning
	default:
		return types.HealthCritical
	}
}
