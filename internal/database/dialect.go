package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	MySQL    = "mysql"
)

// Normalize maps provider aliases onto the three supported dialects.
func Normalize(provider string) (string, error) {
	switch strings.ToLower(provider) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	default:
		return "", fmt.Errorf("unsupported database provider: %s", provider)
	}
}

func builderFor(provider string) squirrel.StatementBuilderType {
	if provider == Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func openDB(provider, dsn string) (*sql.DB, error) {
	switch provider {
	case Postgres:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgres connection string: %w", err)
		}
		return stdlib.OpenDB(*cfg), nil
	case MySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DSN: %w", err)
		}
		cfg.MultiStatements = false
		return sql.Open("mysql", cfg.FormatDSN())
	default:
		return sql.Open("sqlite3", SQLiteDSN(dsn))
	}
}

// SQLiteDSN strips a sqlite:// prefix and switches foreign key enforcement on.
func SQLiteDSN(path string) string {
	dsn := strings.TrimPrefix(path, "sqlite://")
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// SQLitePath returns the file behind a sqlite DSN, or "" for in-memory
// databases.
func SQLitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

// EnsureDir creates the parent directory of a sqlite database file.
func EnsureDir(dsn string) error {
	path := SQLitePath(dsn)
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func dropStatement(provider, table string) string {
	if provider == Postgres {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}
