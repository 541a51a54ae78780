package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/Tasksim/internal/schema"
)

var ErrSchema = errors.New("schema initialization failed")

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Store is the single storage session of a run. All access goes through one
// connection.
type Store struct {
	db       *sql.DB
	provider string
	qb       squirrel.StatementBuilderType
	log      *slog.Logger
}

// Open connects to the database behind dsn and verifies the connection.
func Open(ctx context.Context, provider, dsn string) (*Store, error) {
	provider, err := Normalize(provider)
	if err != nil {
		return nil, err
	}
	if provider == SQLite {
		if err := EnsureDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := openDB(provider, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", provider, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db, provider), nil
}

// New wraps an already opened handle.
func New(db *sql.DB, provider string) *Store {
	if p, err := Normalize(provider); err == nil {
		provider = p
	}
	return &Store{
		db:       db,
		provider: provider,
		qb:       builderFor(provider),
		log:      slog.Default().With("component", "store"),
	}
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Provider() string {
	return s.provider
}

func (s *Store) Builder() squirrel.StatementBuilderType {
	return s.qb
}

// InitSchema drops the given tables, children first, and applies ddl in a
// single transaction.
func (s *Store) InitSchema(ctx context.Context, ddl string, dropOrder []string) error {
	statements := schema.Statements(ddl)
	if len(statements) == 0 {
		return fmt.Errorf("%w: empty schema script", ErrSchema)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	defer tx.Rollback()

	for _, table := range dropOrder {
		if !validIdentifier.MatchString(table) {
			return fmt.Errorf("%w: invalid table name %q", ErrSchema, table)
		}
		if _, err := tx.ExecContext(ctx, dropStatement(s.provider, table)); err != nil {
			return fmt.Errorf("%w: drop %s: %v", ErrSchema, table, err)
		}
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: statement %d: %v", ErrSchema, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrSchema, err)
	}
	s.log.Debug("schema applied", "statements", len(statements), "dropped", len(dropOrder))
	return nil
}

// TeamMemberIDs returns the users belonging to the team that owns the
// project, ordered by id.
func (s *Store) TeamMemberIDs(ctx context.Context, projectID string) ([]string, error) {
	q := s.qb.Select("u.user_id").Distinct().
		From("projects p").
		Join("team_memberships tm ON tm.team_id = p.team_id").
		Join("users u ON u.user_id = tm.user_id").
		Where(squirrel.Eq{"p.project_id": projectID}).
		OrderBy("u.user_id")

	rows, err := s.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members of project %s: %w", projectID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) Query(ctx context.Context, q squirrel.Sqlizer) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

// QueryInt runs a single-value query. NULL reads as zero.
func (s *Store) QueryInt(ctx context.Context, q squirrel.Sqlizer) (int, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var n sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n.Int64), nil
}

func (s *Store) Count(ctx context.Context, table string) (int, error) {
	if !validIdentifier.MatchString(table) {
		return 0, fmt.Errorf("invalid table name: %s", table)
	}
	return s.QueryInt(ctx, s.qb.Select("COUNT(*)").From(table))
}
