package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"worktrack-portal/pkg/constants"
)

type demoProfile struct {
	Email    string
	FullName string
	Role     string
	Password string
}

var demoProfiles = []demoProfile{
	{Email: "admin@worktrack.local", FullName: "Администратор портала", Role: constants.RoleAdmin, Password: "admin123"},
	{Email: "staff@worktrack.local", FullName: "Сотрудник Иванов", Role: constants.RoleStaff, Password: "staff123"},
	{Email: "staff2@worktrack.local", FullName: "Сотрудник Петрова", Role: constants.RoleStaff, Password: "staff123"},
	{Email: "client@worktrack.local", FullName: "Клиент Сидоров", Role: constants.RoleClient, Password: "client123"},
	{Email: "client2@worktrack.local", FullName: "Клиент Ахмедова", Role: constants.RoleClient, Password: "client123"},
}

// SeedProfiles создает демо-профили всех трех ролей. Повторный запуск
// безопасен: существующие профили пропускаются.
func SeedProfiles(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание демо-профилей...")

	for _, p := range demoProfiles {
		var existingID string
		err := db.QueryRow(ctx, "SELECT id FROM profiles WHERE email = $1", p.Email).Scan(&existingID)
		if err == nil {
			log.Printf("    - Профиль %s уже существует. Пропускаем.", p.Email)
			continue
		}
		if err != pgx.ErrNoRows {
			return fmt.Errorf("ошибка при проверке существования профиля %s: %w", p.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("ошибка хеширования пароля для %s: %w", p.Email, err)
		}

		_, err = db.Exec(ctx,
			"INSERT INTO profiles (email, full_name, role, password_hash) VALUES ($1, $2, $3, $4)",
			p.Email, p.FullName, p.Role, string(hash),
		)
		if err != nil {
			return fmt.Errorf("ошибка создания профиля %s: %w", p.Email, err)
		}
		log.Printf("    - Создан профиль %s (%s)", p.Email, p.Role)
	}
	return nil
}
