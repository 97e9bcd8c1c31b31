package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "postgres"
)

// SQLStore implements Store on top of database/sql. It speaks SQLite by
// default and PostgreSQL for postgres:// DSNs.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// DriverFor returns the database/sql driver name used for dsn.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return driverPostgres
	}
	return driverSQLite
}

// NewSQLStore opens dsn and applies migrations.
func NewSQLStore(dsn string) (*SQLStore, error) {
	driver := DriverFor(dsn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if driver == driverSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	s := &SQLStore{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// NewSQLiteStore opens a SQLite database. Kept for callers that only ever
// want the embedded engine, such as tests.
func NewSQLiteStore(dsn string) (*SQLStore, error) {
	if DriverFor(dsn) != driverSQLite {
		return nil, fmt.Errorf("not a sqlite dsn: %s", dsn)
	}
	return NewSQLStore(dsn)
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			designer_id TEXT NOT NULL,
			service_type TEXT NOT NULL,
			notes TEXT,
			booking_date TIMESTAMP NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings(customer_id, booking_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_designer ON bookings(designer_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS profile_measurements (
			user_id TEXT PRIMARY KEY,
			height DOUBLE PRECISION NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			age INTEGER NOT NULL,
			chest DOUBLE PRECISION,
			waist DOUBLE PRECISION,
			hip DOUBLE PRECISION,
			inseam DOUBLE PRECISION,
			shoe_size DOUBLE PRECISION,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS designer_profiles (
			user_id TEXT PRIMARY KEY,
			height DOUBLE PRECISION NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			age INTEGER NOT NULL,
			specialization TEXT,
			experience TEXT,
			location TEXT,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_designer_profiles_updated ON designer_profiles(updated_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	// Databases created before bookings tracked status changes.
	if err := s.ensureColumn("bookings", "updated_at", "TIMESTAMP"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (s *SQLStore) ensureColumn(tableName, columnName, columnType string) error {
	if s.driver == driverPostgres {
		_, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s", tableName, columnName, columnType))
		return err
	}

	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == columnName {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	// Close before altering: in-memory databases hold a single connection.
	rows.Close()

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", tableName, columnName, columnType))
	return err
}

// rebind rewrites ? placeholders into the driver's native form.
func (s *SQLStore) rebind(query string) string {
	if s.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
