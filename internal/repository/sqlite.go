package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/content-creator-be/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// NewSQLite returns repositories backed by a migrated SQLite database.
func NewSQLite(db *sql.DB) Repositories {
	loader := &sqliteLoader{db: db}
	return Repositories{
		Users:      &sqliteUsers{db: db},
		Categories: &sqliteCategories{db: db},
		Themes:     &sqliteThemes{db: db, loader: loader},
		Contents:   &sqliteContents{db: db, loader: loader},
		Ping:       db.PingContext,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// stamps holds the raw timestamp columns shared by every table.
type stamps struct {
	created string
	updated sql.NullString
	deleted sql.NullString
}

func (s *stamps) dest() []any {
	return []any{&s.created, &s.updated, &s.deleted}
}

func (s *stamps) decode(created *time.Time, updated, deleted **time.Time) error {
	var err error
	if *created, err = parseTime(s.created); err != nil {
		return err
	}
	if *updated, err = parseNullTime(s.updated); err != nil {
		return err
	}
	*deleted, err = parseNullTime(s.deleted)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func anyArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// marshalIDs encodes a reference list for a JSON text column.
func marshalIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	return string(b), err
}

func unmarshalIDs(s string) ([]string, error) {
	ids := []string{}
	if s == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("decode id list: %w", err)
	}
	return ids, nil
}

// updateSet accumulates the columns of a partial UPDATE.
type updateSet struct {
	cols []string
	args []any
}

func (u *updateSet) set(col string, value any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, value)
}

func (u *updateSet) setString(col string, value *string) {
	if value != nil {
		u.set(col, *value)
	}
}

// exec runs the update against id and reports whether a row matched. updated_at is always stamped.
func (u *updateSet) exec(ctx context.Context, db *sql.DB, table, id string) (bool, error) {
	u.set("updated_at", formatTime(now()))
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(u.cols, ", "))
	res, err := db.ExecContext(ctx, query, append(u.args, id)...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// softDelete stamps deleted_at and reports whether a row matched.
func softDelete(ctx context.Context, db *sql.DB, table, id string) (bool, error) {
	res, err := db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET deleted_at = ? WHERE id = ?", table), formatTime(now()), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || strings.Contains(se.Error(), "UNIQUE constraint failed")
}

func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// sqliteLoader resolves references with one IN query per entity kind.
type sqliteLoader struct {
	db *sql.DB
}

func (l *sqliteLoader) categorySummaries(ctx context.Context, ids []string) (map[string]models.CategorySummary, error) {
	out := make(map[string]models.CategorySummary, len(ids))
	err := l.query(ctx, "SELECT id, type, label FROM categories WHERE id IN (%s)", ids, func(rows *sql.Rows) error {
		var c models.CategorySummary
		if err := rows.Scan(&c.ID, &c.Type, &c.Label); err != nil {
			return err
		}
		out[c.ID] = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}
	return out, nil
}

func (l *sqliteLoader) themeSummaries(ctx context.Context, ids []string) (map[string]models.ThemeSummary, error) {
	out := make(map[string]models.ThemeSummary, len(ids))
	err := l.query(ctx, "SELECT id, name, description, cover_image FROM themes WHERE id IN (%s)", ids, func(rows *sql.Rows) error {
		var t models.ThemeSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CoverImage); err != nil {
			return err
		}
		out[t.ID] = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve themes: %w", err)
	}
	return out, nil
}

func (l *sqliteLoader) userSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary, len(ids))
	err := l.query(ctx, "SELECT id, username, email FROM users WHERE id IN (%s)", ids, func(rows *sql.Rows) error {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return err
		}
		out[u.ID] = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	return out, nil
}

func (l *sqliteLoader) query(ctx context.Context, format string, ids []string, scan func(*sql.Rows) error) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := l.db.QueryContext(ctx, fmt.Sprintf(format, placeholders(len(ids))), anyArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
