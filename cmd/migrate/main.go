package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/infrastructure/migration"
	"github.com/erp/ledger/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// invocation carries what a command needs. migrator is nil for commands that
// run without a database.
type invocation struct {
	args     []string
	path     string
	log      *zap.Logger
	migrator *migration.Migrator
}

type command struct {
	usage   string
	needsDB bool
	minArgs int
	run     func(inv invocation) error
}

var commands = map[string]command{
	"up": {usage: "up", needsDB: true, run: func(inv invocation) error {
		return inv.migrator.Up()
	}},
	"down": {usage: "down", needsDB: true, run: func(inv invocation) error {
		return inv.migrator.Down()
	}},
	"step": {usage: "step <n>", needsDB: true, minArgs: 1, run: func(inv invocation) error {
		n, err := strconv.Atoi(inv.args[0])
		if err != nil || n == 0 {
			return fmt.Errorf("invalid step count %q", inv.args[0])
		}
		return inv.migrator.Steps(n)
	}},
	"version": {usage: "version", needsDB: true, run: func(inv invocation) error {
		version, dirty, err := inv.migrator.Version()
		if err != nil {
			return err
		}
		inv.log.Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	}},
	"status": {usage: "status", needsDB: true, run: showStatus},
	"force": {usage: "force <version>", needsDB: true, minArgs: 1, run: func(inv invocation) error {
		version, err := strconv.Atoi(inv.args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", inv.args[0])
		}
		return inv.migrator.Force(version)
	}},
	"create": {usage: "create <name> [description]", minArgs: 1, run: createMigration},
	"list":   {usage: "list", run: listMigrations},
}

func main() {
	path := flag.String("path", "", "Migrations directory (default: schema embedded in the binary)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(2)
	}
	name, args := flag.Arg(0), flag.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		printUsage()
		os.Exit(2)
	}
	if len(args) < cmd.minArgs {
		fmt.Fprintf(os.Stderr, "usage: migrate %s\n", cmd.usage)
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = execute(cmd, invocation{args: args, path: *path, log: log})
	_ = logger.Sync(log)
	if err != nil {
		log.Error("Migration command failed", zap.String("command", name), zap.Error(err))
		os.Exit(1)
	}
}

func execute(cmd command, inv invocation) error {
	if !cmd.needsDB {
		return cmd.run(inv)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != "" && cfg.Database.Driver != "postgres" {
		return fmt.Errorf("driver %q has no versioned migrations; sqlite schemas are created on startup", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	// The migrator owns db from here and closes it.
	inv.migrator, err = migration.New(db, inv.path, inv.log)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer inv.migrator.Close()

	return cmd.run(inv)
}

func sourceFS(path string) fs.FS {
	if path == "" {
		return migrations.FS
	}
	return os.DirFS(path)
}

func createMigration(inv invocation) error {
	dir := inv.path
	if dir == "" {
		dir = "migrations"
	}
	description := strings.Join(inv.args[1:], " ")
	mf, err := migration.CreateMigration(dir, inv.args[0], description)
	if err != nil {
		return err
	}
	inv.log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	return nil
}

func listMigrations(inv invocation) error {
	names, err := migration.ListMigrations(sourceFS(inv.path))
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// showStatus prints every known migration and marks the ones already applied
func showStatus(inv invocation) error {
	names, err := migration.ListMigrations(sourceFS(inv.path))
	if err != nil {
		return err
	}
	current, dirty, err := inv.migrator.Version()
	if err != nil {
		return err
	}

	for _, name := range names {
		mark := "pending"
		if v, ok := leadingVersion(name); ok && v <= current {
			mark = "applied"
		}
		fmt.Printf("%-8s %s\n", mark, name)
	}
	if dirty {
		fmt.Printf("schema is dirty at version %d; fix it and run `migrate force %d`\n", current, current)
	}
	return nil
}

func leadingVersion(name string) (uint, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	v, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Ledger schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (negative rolls back)
  version               Show the current schema version
  status                List migrations marked applied or pending
  force <version>       Set the version without running anything (clears dirty)
  create <name> [desc]  Write a new up/down file pair
  list                  List available migrations

Flags:
  -path string          Migrations directory (default: embedded schema)
  -log-level string     debug, info, warn or error (default: info)

The database is configured through ERP_DATABASE_HOST, ERP_DATABASE_PORT,
ERP_DATABASE_USER, ERP_DATABASE_PASSWORD, ERP_DATABASE_DBNAME and
ERP_DATABASE_SSLMODE.
`)
}
