package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Ticket - строка таблицы tickets в том виде, в котором ее читает дашборд.
type Ticket struct {
	ID          string      `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	TicketType  string      `json:"ticket_type" db:"ticket_type"`
	Status      string      `json:"status" db:"status"`
	Priority    null.String `json:"priority" db:"priority"`
	ProductID   null.String `json:"product_id" db:"product_id"`
	ProductName null.String `json:"product_name" db:"product_name"`
	AssignedTo  null.String `json:"assigned_to" db:"assigned_to"`
	AgentName   null.String `json:"agent_name" db:"agent_name"`
	AgentRole   null.String `json:"agent_role" db:"agent_role"`
	DueDate     null.Time   `json:"due_date" db:"due_date"`
	ResolvedAt  null.Time   `json:"resolved_at" db:"resolved_at"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// Типы заявок, участвующие в метриках.
const (
	TicketTypeBug        = "BUG"
	TicketTypeRequest    = "REQ"
	TicketTypeAssistance = "ASSISTANCE"
)

// Приоритеты, считающиеся критическими для алертов.
const (
	TicketPriorityHigh     = "HIGH"
	TicketPriorityCritical = "CRITICAL"
)
