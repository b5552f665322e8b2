// migrate aplica las migraciones goose embebidas en el binario.
//
// Uso: go run ./cmd/migrate -cmd up|down|status|version|redo|reset [-to N]
package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql

	"github.com/jhoicas/supplychain-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-api/pkg/config"
	"github.com/jhoicas/supplychain-api/pkg/logger"
)

func main() {
	command := flag.String("cmd", "up", "comando goose: up|down|status|version|redo|reset|up-to|down-to")
	to := flag.String("to", "", "versión destino para up-to/down-to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping a PostgreSQL")
	}

	var args []string
	if *to != "" {
		args = append(args, *to)
	}
	if err := postgres.Migrate(ctx, db, *command, args...); err != nil {
		log.Fatal().Err(err).Str("cmd", *command).Msg("migración fallida")
	}
	log.Info().Str("cmd", *command).Msg("migración completada")
}
