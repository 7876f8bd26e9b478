package sqlstore

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	"petclinic/internal/platform/logger"
	"petclinic/migrations"

	"github.com/pressly/goose/v3"
)

// goose usa estado global (base FS, dialecto, logger).
var gooseMu sync.Mutex

// Migrate ejecuta command ("up", "down" o "status") con las migraciones
// embebidas del dialecto.
func Migrate(db *sql.DB, d Dialect, command string, log logger.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if log != nil {
		goose.SetLogger(gooseLogger{log: log.With(map[string]any{"component": "goose"})})
	}

	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	dir := string(d)
	var err error
	switch command {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

func (d Dialect) gooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// gooseLogger adapta logger.Logger a goose.Logger.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
	os.Exit(1)
}
