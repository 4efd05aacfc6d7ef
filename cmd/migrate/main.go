package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/nilehr/attendance-backend-go/internal/config"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory containing migration files")
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := runMigration(action, *migrationsDir, cfg.DatabaseURL()); err != nil {
		log.Fatalf("migration %s failed: %v", action, err)
	}

	log.Printf("migration %s completed", action)
}

func runMigration(action, dir, dsn string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}
	absDir = filepath.ToSlash(absDir)

	m, err := migrate.New(fmt.Sprintf("file://%s", absDir), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return err
		}
		return nil
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			return err
		}
		return nil
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if err == migrate.ErrNilVersion {
				log.Printf("no migration applied")
				return nil
			}
			return err
		}
		log.Printf("version=%d dirty=%t", version, dirty)
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
