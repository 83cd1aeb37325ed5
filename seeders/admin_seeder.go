package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ticketdesk/pkg/utils"
)

const adminEmail = "admin@ticketdesk.local"

func seedAdmin(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание администратора...")

	var existingID string
	err := db.QueryRow(ctx, "SELECT id FROM profiles WHERE email = $1", adminEmail).Scan(&existingID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования администратора: %w", err)
	}

	hashedPassword, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO profiles (email, full_name, role, password_hash) VALUES ($1, $2, $3, $4)`,
		adminEmail, "Администратор", "admin", hashedPassword,
	)
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора: %w", err)
	}

	log.Println("    - Администратор успешно создан.")
	return nil
}
