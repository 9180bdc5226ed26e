package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"worktrack-portal/pkg/service"
)

// PrintDemoTokens печатает access-токены демо-профилей. Удобно для
// ручной проверки сессий: токен из вывода идет прямо в POST /api/session.
func PrintDemoTokens(ctx context.Context, db *pgxpool.Pool, jwtSvc service.JWTService) error {
	log.Println("  - Access-токены демо-профилей:")

	for _, p := range demoProfiles {
		var id, role string
		err := db.QueryRow(ctx, "SELECT id, role FROM profiles WHERE email = $1", p.Email).Scan(&id, &role)
		if err != nil {
			return fmt.Errorf("не найден профиль %s: %w", p.Email, err)
		}

		access, _, err := jwtSvc.GenerateTokens(id, role)
		if err != nil {
			return fmt.Errorf("ошибка генерации токена для %s: %w", p.Email, err)
		}
		log.Printf("    %s (%s):\n      %s", p.Email, role, access)
	}
	return nil
}
