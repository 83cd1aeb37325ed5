package main

import (
	"flag"
	"log"

	"ticketdesk/pkg/config"
	"ticketdesk/pkg/database/postgresql"
	"ticketdesk/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAll := flag.Bool("all", false, "Запустить все сидеры: администратор, виджеты, демо-данные")
	flag.Parse()

	if !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Пример использования:")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")
	seeders.SeedAll(dbPool, cfg)
	log.Println("======================================================")
}
