// Package store keeps a reminder book in a SQLite database and serves it as a reminder source.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"fjacquet/planned-spending/internal/book"
	"fjacquet/planned-spending/internal/fileutils"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/models"
	"fjacquet/planned-spending/internal/planerror"
	"fjacquet/planned-spending/internal/recurrence"

	_ "modernc.org/sqlite"
)

// SourceName identifies this source in errors and configuration.
const SourceName = "sqlite"

// BookStore is a reminder book persisted in SQLite.
type BookStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens (creating if needed) the database at dbPath and migrates its schema.
func Open(ctx context.Context, dbPath string, logger logging.Logger) (*BookStore, error) {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(dbPath)); err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: dbPath, Reason: "create db directory", Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: dbPath, Reason: "open database", Err: err}
	}

	// One connection keeps the foreign_keys pragma in effect for every statement.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &planerror.SourceError{Source: SourceName, Path: dbPath, Reason: "ping database", Err: err}
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, &planerror.SourceError{Source: SourceName, Path: dbPath, Reason: "migrate schema", Err: err}
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, &planerror.SourceError{Source: SourceName, Path: dbPath, Reason: "enable foreign keys", Err: err}
	}

	logger.Debug("Opened book store", logging.F(logging.FieldFile, dbPath))
	return &BookStore{db: db, path: dbPath, logger: logger}, nil
}

// Close closes the database.
func (s *BookStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBook validates b and writes it in one transaction. Currencies, accounts and
// reminders already stored under the same key are replaced; a replaced reminder
// gets exactly the splits of b.
func (s *BookStore) SaveBook(ctx context.Context, b *book.Book) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid book: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, c := range b.Currencies {
		var places sql.NullInt32
		if c.DecimalPlaces != nil {
			places = sql.NullInt32{Int32: *c.DecimalPlaces, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO currencies (code, decimal_places) VALUES (?, ?)
			 ON CONFLICT(code) DO UPDATE SET decimal_places = excluded.decimal_places`,
			c.Code, places); err != nil {
			return fmt.Errorf("save currency %s: %w", c.Code, err)
		}
	}

	for _, a := range b.Accounts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO accounts (name, type, currency) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET type = excluded.type, currency = excluded.currency`,
			a.Name, a.Type, a.Currency); err != nil {
			return fmt.Errorf("save account %s: %w", a.Name, err)
		}
	}

	for _, r := range b.Reminders {
		rule, err := json.Marshal(r.Rule)
		if err != nil {
			return fmt.Errorf("encode rule of reminder %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reminders (id, description, rule_json) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET description = excluded.description,
			   rule_json = excluded.rule_json, updated_at = CURRENT_TIMESTAMP`,
			r.ID, r.Description, string(rule)); err != nil {
			return fmt.Errorf("save reminder %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE reminder_id = ?`, r.ID); err != nil {
			return fmt.Errorf("clear splits of reminder %s: %w", r.ID, err)
		}
		for i, sp := range r.Splits {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO splits (reminder_id, position, account, amount, description) VALUES (?, ?, ?, ?, ?)`,
				r.ID, i, sp.Account, sp.Amount, sp.Description); err != nil {
				return fmt.Errorf("save split %d of reminder %s: %w", i, r.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit book: %w", err)
	}

	s.logger.Info("Book saved to SQLite",
		logging.F(logging.FieldFile, s.path),
		logging.F(logging.FieldCount, len(b.Reminders)))
	return nil
}

// Clear removes every stored reminder, account and currency.
func (s *BookStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{"splits", "reminders", "accounts", "currencies"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// LoadBook reads the stored book, reminders in insertion order.
func (s *BookStore) LoadBook(ctx context.Context) (*book.Book, error) {
	b := &book.Book{}

	if err := s.each(ctx, `SELECT code, decimal_places FROM currencies ORDER BY rowid`, func(rows *sql.Rows) error {
		var c book.Currency
		var places sql.NullInt32
		if err := rows.Scan(&c.Code, &places); err != nil {
			return err
		}
		if places.Valid {
			c.DecimalPlaces = book.Places(places.Int32)
		}
		b.Currencies = append(b.Currencies, c)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load currencies: %w", err)
	}

	if err := s.each(ctx, `SELECT name, type, currency FROM accounts ORDER BY rowid`, func(rows *sql.Rows) error {
		var a book.Account
		if err := rows.Scan(&a.Name, &a.Type, &a.Currency); err != nil {
			return err
		}
		b.Accounts = append(b.Accounts, a)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	index := make(map[string]int)
	if err := s.each(ctx, `SELECT id, description, rule_json FROM reminders ORDER BY rowid`, func(rows *sql.Rows) error {
		var r book.Reminder
		var rule string
		if err := rows.Scan(&r.ID, &r.Description, &rule); err != nil {
			return err
		}
		var spec recurrence.Spec
		if err := json.Unmarshal([]byte(rule), &spec); err != nil {
			return fmt.Errorf("decode rule of reminder %s: %w", r.ID, err)
		}
		r.Rule = spec
		index[r.ID] = len(b.Reminders)
		b.Reminders = append(b.Reminders, r)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load reminders: %w", err)
	}

	if err := s.each(ctx, `SELECT reminder_id, account, amount, description FROM splits ORDER BY reminder_id, position`, func(rows *sql.Rows) error {
		var id string
		var sp book.Split
		if err := rows.Scan(&id, &sp.Account, &sp.Amount, &sp.Description); err != nil {
			return err
		}
		i, ok := index[id]
		if !ok {
			return fmt.Errorf("split of unknown reminder %s", id)
		}
		b.Reminders[i].Splits = append(b.Reminders[i].Splits, sp)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load splits: %w", err)
	}

	return b, nil
}

// ListAllReminders implements planning.ReminderSource.
func (s *BookStore) ListAllReminders(ctx context.Context) ([]models.ReminderRecord, error) {
	b, err := s.LoadBook(ctx)
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: s.path, Reason: "cannot load book", Err: err}
	}
	records, err := b.Records()
	if err != nil {
		return nil, &planerror.SourceError{Source: SourceName, Path: s.path, Reason: "invalid book", Err: err}
	}
	return records, nil
}

func (s *BookStore) each(ctx context.Context, query string, scan func(rows *sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
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
