package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"worktrack-portal/pkg/constants"
)

type demoOrder struct {
	Title       string
	Description string
	Status      string
	Priority    string
	ClientEmail string
	StaffEmail  string
}

var demoOrders = []demoOrder{
	{
		Title:       "Разработка логотипа",
		Description: "Логотип и фирменный стиль для кофейни",
		Status:      constants.StatusInProgress,
		Priority:    "high",
		ClientEmail: "client@worktrack.local",
		StaffEmail:  "staff@worktrack.local",
	},
	{
		Title:       "Лендинг для акции",
		Description: "Одностраничник под весеннюю распродажу",
		Status:      constants.StatusNotStarted,
		Priority:    "medium",
		ClientEmail: "client@worktrack.local",
	},
	{
		Title:       "Настройка рекламного кабинета",
		Status:      constants.StatusOnHold,
		Priority:    "low",
		ClientEmail: "client2@worktrack.local",
		StaffEmail:  "staff2@worktrack.local",
	},
	{
		Title:       "Аудит сайта",
		Description: "Технический и SEO-аудит корпоративного сайта",
		Status:      constants.StatusCompleted,
		Priority:    "medium",
		ClientEmail: "client2@worktrack.local",
		StaffEmail:  "staff@worktrack.local",
	},
}

// SeedOrders создает демо-заказы, привязанные к демо-профилям.
// Запускать после SeedProfiles.
func SeedOrders(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание демо-заказов...")

	for _, o := range demoOrders {
		var exists bool
		err := db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM orders WHERE title = $1)", o.Title,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("ошибка при проверке существования заказа %q: %w", o.Title, err)
		}
		if exists {
			log.Printf("    - Заказ %q уже существует. Пропускаем.", o.Title)
			continue
		}

		var clientID string
		if err := db.QueryRow(ctx, "SELECT id FROM profiles WHERE email = $1", o.ClientEmail).Scan(&clientID); err != nil {
			return fmt.Errorf("не найден клиент %s: %w", o.ClientEmail, err)
		}

		var assignedTo *string
		if o.StaffEmail != "" {
			var staffID string
			if err := db.QueryRow(ctx, "SELECT id FROM profiles WHERE email = $1", o.StaffEmail).Scan(&staffID); err != nil {
				return fmt.Errorf("не найден сотрудник %s: %w", o.StaffEmail, err)
			}
			assignedTo = &staffID
		}

		var description *string
		if o.Description != "" {
			description = &o.Description
		}

		_, err = db.Exec(ctx, `
			INSERT INTO orders (title, description, status, priority, client_id, assigned_to, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $5)`,
			o.Title, description, o.Status, o.Priority, clientID, assignedTo,
		)
		if err != nil {
			return fmt.Errorf("ошибка создания заказа %q: %w", o.Title, err)
		}
		log.Printf("    - Создан заказ %q (%s)", o.Title, o.Status)
	}
	return nil
}
