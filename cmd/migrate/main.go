package main

import (
	"errors"
	"flag"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// CLI de migraciones: aplica los archivos SQL de ./migrations contra la
// base configurada.
//
//	migrate up            aplica todas las pendientes
//	migrate down          revierte la última
//	migrate step <n>      avanza o retrocede n versiones
//	migrate version       muestra la versión actual
//	migrate force <v>     fija la versión (limpieza de estado dirty)
func main() {
	var path string
	flag.StringVar(&path, "path", "migrations", "directorio de migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.Component(logger.New(cfg.App.Env, cfg.Log.Level), "migrate")

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal().Msg("uso: migrate [-path dir] up|down|step <n>|version|force <v>")
	}

	dbURL, err := url.Parse(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("DSN inválido")
	}
	dbURL.Scheme = "pgx5"

	m, err := migrate.New("file://"+path, dbURL.String())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migrador")
	}
	defer m.Close()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "step":
		if len(args) < 2 {
			log.Fatal().Msg("uso: migrate step <n>")
		}
		var n int
		if n, err = strconv.Atoi(args[1]); err != nil {
			log.Fatal().Str("valor", args[1]).Msg("n inválido")
		}
		err = m.Steps(n)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("consultar versión")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")
		return
	case "force":
		if len(args) < 2 {
			log.Fatal().Msg("uso: migrate force <v>")
		}
		var v int
		if v, err = strconv.Atoi(args[1]); err != nil {
			log.Fatal().Str("valor", args[1]).Msg("versión inválida")
		}
		err = m.Force(v)
	default:
		log.Error().Str("comando", args[0]).Msg("comando desconocido")
		os.Exit(1)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("sin cambios pendientes")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
	log.Info().Str("comando", args[0]).Msg("migración aplicada")
}
