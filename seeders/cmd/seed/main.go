package main

import (
	"context"
	"flag"
	"log"

	"worktrack-portal/pkg/config"
	"worktrack-portal/pkg/database/postgresql"
	"worktrack-portal/pkg/service"
	"worktrack-portal/seeders"
)

func main() {
	runProfiles := flag.Bool("profiles", false, "Создать демо-профили (admin/staff/client)")
	runOrders := flag.Bool("orders", false, "Создать демо-заказы")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	printTokens := flag.Bool("tokens", false, "Напечатать access-токены демо-профилей")
	flag.Parse()

	if !*runProfiles && !*runOrders && !*runAll && !*printTokens {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	ctx := context.Background()

	if *runProfiles || *runAll {
		if err := seeders.SeedProfiles(ctx, db); err != nil {
			log.Fatalf("Ошибка наполнения профилей: %v", err)
		}
	}
	if *runOrders || *runAll {
		if err := seeders.SeedOrders(ctx, db); err != nil {
			log.Fatalf("Ошибка наполнения заказов: %v", err)
		}
	}
	if *printTokens || *runAll {
		jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
		if err := seeders.PrintDemoTokens(ctx, db, jwtSvc); err != nil {
			log.Fatalf("Ошибка генерации токенов: %v", err)
		}
	}

	log.Println("Готово.")
}
