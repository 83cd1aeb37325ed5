package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"ticketdesk/pkg/config"
)

// SeedAll наполняет базу минимальным рабочим набором: администратор,
// наборы виджетов по ролям и демо-данные для дашборда.
func SeedAll(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения базы...")

	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	if err := seedRoleWidgets(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка наполнения наборов виджетов: %v", err)
	}
	if err := seedDemoData(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-данных: %v", err)
	}

	log.Println("✅ Наполнение базы завершено!")
}
