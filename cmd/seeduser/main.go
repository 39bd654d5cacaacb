// cmd/seeduser creates users against DATABASE_URL.
// Without arguments it ensures the bootstrap admin from config exists.
// Uso: go run ./cmd/seeduser [-role GERENCIA] [-nome "Nome"] <usuario> <senha>
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thiagofdruzian/ERP/internal/config"
	"github.com/thiagofdruzian/ERP/internal/dto"
	"github.com/thiagofdruzian/ERP/internal/infra"
	"github.com/thiagofdruzian/ERP/internal/model"
	"github.com/thiagofdruzian/ERP/internal/repository"
	"github.com/thiagofdruzian/ERP/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	role := flag.String("role", model.RoleComercial, "GERENCIA ou COMERCIAL")
	nome := flag.String("nome", "", "nome de exibicao")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// No audit dispatcher: seeding runs without Redis.
	authSvc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg, nil)

	switch flag.NArg() {
	case 0:
		created, err := authSvc.EnsureDefaultAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin failed")
		}
		log.Info().Bool("created", created).Str("username", cfg.BootstrapAdminUsername).Msg("bootstrap admin checked")
	case 2:
		u, err := authSvc.CriarUsuario(ctx, dto.CriarUsuarioRequest{
			Username: flag.Arg(0),
			Nome:     *nome,
			Password: flag.Arg(1),
			Role:     *role,
		}, "seeduser")
		if err != nil {
			log.Fatal().Err(err).Msg("create user failed")
		}
		log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user created")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
