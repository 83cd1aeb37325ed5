package types

import "time"

// Flux - поток заявок за период.
type TicketFluxData struct {
	Opened         int64         `json:"opened"`
	Resolved       int64         `json:"resolved"`
	ResolutionRate int           `json:"resolution_rate"`
	OpenedTrend    int           `json:"opened_trend"`
	ResolvedTrend  int           `json:"resolved_trend"`
	ByProduct      []ProductFlux `json:"by_product"`
}

type ProductFlux struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Opened      int64  `json:"opened"`
	Resolved    int64  `json:"resolved"`
}

// MTTR - среднее время решения (в днях).
type MTTRData struct {
	Global    float64       `json:"global"`
	Trend     int           `json:"trend"`
	ByProduct []ProductMTTR `json:"by_product"`
	ByType    []TypeMTTR    `json:"by_type"`
}

type ProductMTTR struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	MTTR        float64 `json:"mttr"`
}

type TypeMTTR struct {
	TicketType string  `json:"ticket_type"`
	MTTR       float64 `json:"mttr"`
}

// Workload - распределение нагрузки по командам и агентам.
type WorkloadData struct {
	ByTeam      []TeamWorkload  `json:"by_team"`
	ByAgent     []AgentWorkload `json:"by_agent"`
	TotalActive int64           `json:"total_active"`
}

type TeamWorkload struct {
	Team               string `json:"team"`
	ActiveTickets      int64  `json:"active_tickets"`
	ResolvedThisPeriod int64  `json:"resolved_this_period"`
}

type AgentWorkload struct {
	AgentID            string `json:"agent_id"`
	AgentName          string `json:"agent_name"`
	Team               string `json:"team"`
	ActiveTickets      int64  `json:"active_tickets"`
	ResolvedThisPeriod int64  `json:"resolved_this_period"`
	WorkloadPercent    int    `json:"workload_percent"`
}

// Health - категориальный статус продукта по доле багов.
type HealthStatus string

const (
	HealthGood     HealthStatus = "good"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
)

type ProductHealthData struct {
	ByProduct []ProductHealth `json:"by_product"`
}

type ProductHealth struct {
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	BugRate      float64      `json:"bug_rate"`
	TotalTickets int64        `json:"total_tickets"`
	TotalBugs    int64        `json:"total_bugs"`
	HealthStatus HealthStatus `json:"health_status"`
}

// AlertPriority - фиксированный порядок приоритетов: high < medium < low.
type AlertPriority string

const (
	AlertPriorityHigh   AlertPriority = "high"
	AlertPriorityMedium AlertPriority = "medium"
	AlertPriorityLow    AlertPriority = "low"
)

// AlertPriorityOrder используется при стабильной сортировке списка алертов.
var AlertPriorityOrder = map[AlertPriority]int{
	AlertPriorityHigh:   0,
	AlertPriorityMedium: 1,
	AlertPriorityLow:    2,
}

// Категории операционных алертов.
const (
	AlertOverdueCritical  = "overdue_critical"
	AlertUnassignedLong   = "unassigned_long"
	AlertUpcomingActivity = "upcoming_activity"
	AlertBlockedTask      = "blocked_task"
)

// OperationalAlert вычисляется заново на каждый запрос и никогда не сохраняется.
type OperationalAlert struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Priority    AlertPriority `json:"priority"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	RelatedID   string        `json:"related_id"`
	CreatedAt   time.Time     `json:"created_at"`
}
