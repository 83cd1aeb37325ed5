package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"ticketdesk/pkg/config"
	"ticketdesk/pkg/types"
)

// seedRoleWidgets записывает наборы виджетов по умолчанию для ролей,
// у которых еще нет ни одной строки.
func seedRoleWidgets(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("  - Наполнение наборов виджетов по ролям...")

	for _, role := range types.AllRoles() {
		widgets, ok := cfg.Dashboard.DefaultWidgets[role]
		if !ok {
			continue
		}

		var count int
		if err := db.QueryRow(ctx,
			"SELECT COUNT(*) FROM dashboard_role_widgets WHERE role = $1", string(role),
		).Scan(&count); err != nil {
			return fmt.Errorf("ошибка при проверке роли %s: %w", role, err)
		}
		if count > 0 {
			log.Printf("    - Роль %s уже настроена. Пропускаем.", role)
			continue
		}

		for _, w := range widgets {
			if _, err := db.Exec(ctx,
				`INSERT INTO dashboard_role_widgets (role, widget_id, enabled) VALUES ($1, $2, TRUE)
				 ON CONFLICT (role, widget_id) DO NOTHING`,
				string(role), string(w),
			); err != nil {
				return fmt.Errorf("ошибка при вставке виджета %s для роли %s: %w", w, role, err)
			}
		}
		log.Printf("    - Роль %s: записано %d виджетов.", role, len(widgets))
	}
	return nil
}
