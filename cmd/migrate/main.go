// Command migrate manages the FutureVend database schema from the embedded migrations.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/futurevend/backend/internal/infrastructure/config"
	"github.com/futurevend/backend/internal/infrastructure/logger"
	"github.com/futurevend/backend/internal/infrastructure/migration"
)

type command struct {
	usage string
	help  string
	run   func(m *migration.Migrator, log *zap.Logger, args []string) error
}

var commands = map[string]command{
	"up": {"up", "Apply all pending migrations", func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Up()
	}},
	"down": {"down", "Roll back all migrations", func(m *migration.Migrator, _ *zap.Logger, _ []string) error {
		return m.Down()
	}},
	"step": {"step <n>", "Apply n migrations (negative rolls back)", func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Steps(n)
	}},
	"goto": {"goto <version>", "Migrate up or down to version", func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := intArg(args)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(v))
	}},
	"force": {"force <version>", "Mark version as applied without running it", func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := intArg(args)
		if err != nil {
			return err
		}
		return m.Force(v)
	}},
	"drop": {"drop -confirm", "Drop every database object", func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		if len(args) == 0 || strings.TrimLeft(args[0], "-") != "confirm" {
			return fmt.Errorf("refusing to drop without -confirm")
		}
		return m.Drop()
	}},
	"status": {"status", "Show the applied version and pending migrations", status},
}

func main() {
	var (
		logLevel    string
		databaseURL string
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&databaseURL, "database-url", "", "postgres:// URL; overrides the configured database")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}
	name, rest := args[0], args[1:]

	log, err := logger.New(config.LogConfig{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if name == "list" {
		names, err := migration.List()
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	cmd, ok := commands[name]
	if !ok {
		log.Error("Unknown command", zap.String("command", name))
		printUsage()
		os.Exit(2)
	}

	m, closeDB, err := openMigrator(databaseURL, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer closeDB()
	defer m.Close()

	if err := cmd.run(m, log, rest); err != nil {
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
	log.Info("Migration command finished", zap.String("command", name))
}

func openMigrator(databaseURL string, log *zap.Logger) (*migration.Migrator, func(), error) {
	if databaseURL != "" {
		m, err := migration.NewFromURL(databaseURL, log)
		return m, func() {}, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	m, err := migration.New(db, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, func() { _ = db.Close() }, nil
}

func status(m *migration.Migrator, log *zap.Logger, _ []string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	pending, err := m.Pending()
	if err != nil {
		return err
	}
	log.Info("Schema status",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Strings("pending", pending),
	)
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing numeric argument")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [-log-level level] [-database-url url] <command> [args]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintf(os.Stderr, "  %-18s %s\n", "list", "List embedded migrations")
	for _, name := range []string{"up", "down", "step", "goto", "status", "force", "drop"} {
		c := commands[name]
		fmt.Fprintf(os.Stderr, "  %-18s %s\n", c.usage, c.help)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Without -database-url the FV_DATABASE_* settings are used.")
}
