package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ticketdesk/pkg/utils"
)

// seedDemoData создает небольшой набор продуктов, агентов и заявок,
// чтобы дашборд показывал что-то осмысленное сразу после установки.
func seedDemoData(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение демо-данными...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    - Продукты уже существуют. Пропускаем демо-данные.")
		return nil
	}

	productIDs := make([]string, 0, 3)
	for _, name := range []string{"Интернет-банк", "Мобильное приложение", "CRM"} {
		id := uuid.NewString()
		if _, err := db.Exec(ctx,
			"INSERT INTO products (id, name) VALUES ($1, $2)", id, name,
		); err != nil {
			return fmt.Errorf("ошибка при создании продукта %q: %w", name, err)
		}
		productIDs = append(productIDs, id)
	}

	password, err := utils.HashPassword("agent123")
	if err != nil {
		return err
	}
	agents := []struct {
		email string
		name  string
		role  string
	}{
		{"support1@ticketdesk.local", "Агент Поддержки", "agent"},
		{"it1@ticketdesk.local", "Инженер ИТ", "it"},
		{"manager1@ticketdesk.local", "Менеджер Продукта", "manager"},
	}
	agentIDs := make([]string, 0, len(agents))
	for _, a := range agents {
		id := uuid.NewString()
		if _, err := db.Exec(ctx,
			"INSERT INTO profiles (id, email, full_name, role, password_hash) VALUES ($1, $2, $3, $4, $5)",
			id, a.email, a.name, a.role, password,
		); err != nil {
			return fmt.Errorf("ошибка при создании агента %q: %w", a.email, err)
		}
		agentIDs = append(agentIDs, id)
	}

	now := time.Now()
	tickets := []struct {
		title      string
		ticketType string
		priority   string
		product    string
		agent      string
		createdAgo time.Duration
		resolved   bool
	}{
		{"Не открывается главная страница", "BUG", "CRITICAL", productIDs[0], agentIDs[0], 10 * 24 * time.Hour, true},
		{"Ошибка при переводе средств", "BUG", "HIGH", productIDs[0], agentIDs[1], 5 * 24 * time.Hour, false},
		{"Добавить темную тему", "REQ", "LOW", productIDs[1], agentIDs[0], 8 * 24 * time.Hour, true},
		{"Помощь с настройкой уведомлений", "ASSISTANCE", "MEDIUM", productIDs[1], agentIDs[2], 3 * 24 * time.Hour, false},
		{"Падение при экспорте отчета", "BUG", "HIGH", productIDs[2], agentIDs[1], 2 * 24 * time.Hour, false},
		{"Интеграция с телефонией", "REQ", "MEDIUM", productIDs[2], "", 9 * 24 * time.Hour, false},
	}
	for _, t := range tickets {
		createdAt := now.Add(-t.createdAgo)
		var resolvedAt interface{}
		if t.resolved {
			resolvedAt = createdAt.Add(36 * time.Hour)
		}
		var assignedTo interface{}
		if t.agent != "" {
			assignedTo = t.agent
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO tickets (title, ticket_type, priority, product_id, assigned_to, due_date, resolved_at, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.title, t.ticketType, t.priority, t.product, assignedTo,
			createdAt.Add(7*24*time.Hour), resolvedAt, createdAt,
		); err != nil {
			return fmt.Errorf("ошибка при создании заявки %q: %w", t.title, err)
		}
	}

	if _, err := db.Exec(ctx,
		"INSERT INTO activities (title, scheduled_date) VALUES ($1, $2)",
		"Планерка по инцидентам", now.Add(2*24*time.Hour),
	); err != nil {
		return err
	}
	if _, err := db.Exec(ctx,
		"INSERT INTO tasks (title, status) VALUES ($1, $2)",
		"Миграция базы знаний", "BLOCKED",
	); err != nil {
		return err
	}

	log.Println("    - Демо-данные созданы.")
	return nil
}
