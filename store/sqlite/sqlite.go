/*
Package sqlite provides a SQLite-backed catalog source.

PURPOSE:
  Persists and restores logistics catalog snapshots. The engine itself never
  touches storage during request serving: the database is read once at boot
  to rebuild the catalog, and written only when initialising an empty
  database from the built-in seed.

KEY TABLES:
  stores:             Store identity and unloading duration
  regular_hours:      Weekday open/close hours per store
  special_hours:      Per-date hour overrides
  closed_dates:       Fully unavailable dates
  delivery_schedules: Recurring warehouse-to-store trips

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging); readers don't block and
  crash recovery is cleaner. Use ":memory:" for a throwaway database.

USAGE:
  src, err := sqlite.New("./data/catalog.db")
  if err != nil {
      log.Fatal(err)
  }
  defer src.Close()

  catalog, err := src.LoadCatalog(ctx)

SEE ALSO:
  - logistics/catalog.go: the in-memory aggregate this package hydrates
  - cmd/server/main.go: seed-or-load decision at startup
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/delivery-engine/logistics"
)

// Store persists catalog snapshots in SQLite.
type Store struct {
	db *sql.DB
}

// New opens (and migrates) a catalog database at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS stores (
		code TEXT PRIMARY KEY,
		unloading_minutes INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS regular_hours (
		store_code TEXT NOT NULL REFERENCES stores(code) ON DELETE CASCADE,
		weekday TEXT NOT NULL,
		open_hour INTEGER NOT NULL,
		close_hour INTEGER NOT NULL,
		PRIMARY KEY (store_code, weekday)
	);

	CREATE TABLE IF NOT EXISTS special_hours (
		store_code TEXT NOT NULL REFERENCES stores(code) ON DELETE CASCADE,
		date TEXT NOT NULL,
		open_hour INTEGER NOT NULL,
		close_hour INTEGER NOT NULL,
		PRIMARY KEY (store_code, date)
	);

	CREATE TABLE IF NOT EXISTS closed_dates (
		store_code TEXT NOT NULL REFERENCES stores(code) ON DELETE CASCADE,
		date TEXT NOT NULL,
		PRIMARY KEY (store_code, date)
	);

	CREATE TABLE IF NOT EXISTS delivery_schedules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		store_code TEXT NOT NULL REFERENCES stores(code) ON DELETE CASCADE,
		weekday TEXT NOT NULL,
		frequency INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		departure_time TEXT NOT NULL,
		travel_days INTEGER NOT NULL,
		arrival_time TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_store
		ON delivery_schedules(store_code);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Empty reports whether the database holds no stores yet.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count stores: %w", err)
	}
	return count == 0, nil
}

// SaveCatalog writes a full catalog snapshot in one transaction, replacing
// any previous contents.
func (s *Store) SaveCatalog(ctx context.Context, catalog *logistics.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"delivery_schedules", "closed_dates", "special_hours", "regular_hours", "stores"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, store := range catalog.Stores() {
		if err := saveStore(ctx, tx, store); err != nil {
			return err
		}
		for _, schedule := range catalog.Schedules(store.Code()) {
			if err := saveSchedule(ctx, tx, schedule); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func saveStore(ctx context.Context, tx *sql.Tx, store *logistics.Store) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO stores (code, unloading_minutes) VALUES (?, ?)`,
		store.Code(), int(store.Unloading().Minutes()))
	if err != nil {
		return fmt.Errorf("failed to save store %s: %w", store.Code(), err)
	}

	for weekday, hours := range store.RegularHours() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO regular_hours (store_code, weekday, open_hour, close_hour) VALUES (?, ?, ?, ?)`,
			store.Code(), weekday.String(), hours.Open, hours.Close)
		if err != nil {
			return fmt.Errorf("failed to save hours for store %s: %w", store.Code(), err)
		}
	}

	for date, hours := range store.SpecialHours() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO special_hours (store_code, date, open_hour, close_hour) VALUES (?, ?, ?, ?)`,
			store.Code(), date.String(), hours.Open, hours.Close)
		if err != nil {
			return fmt.Errorf("failed to save special hours for store %s: %w", store.Code(), err)
		}
	}

	for _, date := range store.ClosedDates() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO closed_dates (store_code, date) VALUES (?, ?)`,
			store.Code(), date.String())
		if err != nil {
			return fmt.Errorf("failed to save closed date for store %s: %w", store.Code(), err)
		}
	}
	return nil
}

func saveSchedule(ctx context.Context, tx *sql.Tx, schedule logistics.DeliverySchedule) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO delivery_schedules
			(store_code, weekday, frequency, start_date, departure_time, travel_days, arrival_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		schedule.StoreCode, schedule.Weekday.String(), schedule.Frequency,
		schedule.StartDate.String(), schedule.DepartureTime.String(),
		schedule.TravelDays, schedule.ArrivalTime.String())
	if err != nil {
		return fmt.Errorf("failed to save schedule for store %s: %w", schedule.StoreCode, err)
	}
	return nil
}

// LoadCatalog rebuilds a catalog from the database. The caller freezes it
// before request serving begins.
func (s *Store) LoadCatalog(ctx context.Context) (*logistics.Catalog, error) {
	catalog := logistics.NewCatalog()

	stores, err := s.loadStores(ctx)
	if err != nil {
		return nil, err
	}
	for _, store := range stores {
		if err := catalog.AddStore(store); err != nil {
			return nil, err
		}
	}

	schedules, err := s.loadSchedules(ctx)
	if err != nil {
		return nil, err
	}
	for _, schedule := range schedules {
		if err := catalog.AddSchedule(schedule); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func (s *Store) loadStores(ctx context.Context) ([]*logistics.Store, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, unloading_minutes FROM stores ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}
	defer rows.Close()

	type storeRow struct {
		code             string
		unloadingMinutes int
	}
	var recs []storeRow
	for rows.Next() {
		var rec storeRow
		if err := rows.Scan(&rec.code, &rec.unloadingMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stores := make([]*logistics.Store, 0, len(recs))
	for _, rec := range recs {
		regular, err := s.loadRegularHours(ctx, rec.code)
		if err != nil {
			return nil, err
		}
		store := logistics.NewStore(rec.code, regular, time.Duration(rec.unloadingMinutes)*time.Minute)

		if err := s.loadSpecialHours(ctx, store); err != nil {
			return nil, err
		}
		if err := s.loadClosedDates(ctx, store); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}

func (s *Store) loadRegularHours(ctx context.Context, code string) (map[time.Weekday]logistics.HoursRange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT weekday, open_hour, close_hour FROM regular_hours WHERE store_code = ?`, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load hours for store %s: %w", code, err)
	}
	defer rows.Close()

	hours := make(map[time.Weekday]logistics.HoursRange)
	for rows.Next() {
		var (
			name          string
			open, closing int
		)
		if err := rows.Scan(&name, &open, &closing); err != nil {
			return nil, fmt.Errorf("failed to scan hours: %w", err)
		}
		weekday, err := logistics.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		hours[weekday] = logistics.HoursRange{Open: open, Close: closing}
	}
	return hours, rows.Err()
}

func (s *Store) loadSpecialHours(ctx context.Context, store *logistics.Store) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, open_hour, close_hour FROM special_hours WHERE store_code = ?`, store.Code())
	if err != nil {
		return fmt.Errorf("failed to load special hours for store %s: %w", store.Code(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			raw           string
			open, closing int
		)
		if err := rows.Scan(&raw, &open, &closing); err != nil {
			return fmt.Errorf("failed to scan special hours: %w", err)
		}
		date, err := logistics.ParseDate(raw)
		if err != nil {
			return err
		}
		store.AddSpecialHours(date, logistics.HoursRange{Open: open, Close: closing})
	}
	return rows.Err()
}

func (s *Store) loadClosedDates(ctx context.Context, store *logistics.Store) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date FROM closed_dates WHERE store_code = ?`, store.Code())
	if err != nil {
		return fmt.Errorf("failed to load closed dates for store %s: %w", store.Code(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return fmt.Errorf("failed to scan closed date: %w", err)
		}
		date, err := logistics.ParseDate(raw)
		if err != nil {
			return err
		}
		store.AddClosedDate(date)
	}
	return rows.Err()
}

func (s *Store) loadSchedules(ctx context.Context) ([]logistics.DeliverySchedule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT store_code, weekday, frequency, start_date, departure_time, travel_days, arrival_time
		 FROM delivery_schedules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	defer rows.Close()

	var schedules []logistics.DeliverySchedule
	for rows.Next() {
		var (
			schedule           logistics.DeliverySchedule
			weekday, start     string
			departure, arrival string
		)
		if err := rows.Scan(&schedule.StoreCode, &weekday, &schedule.Frequency,
			&start, &departure, &schedule.TravelDays, &arrival); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}

		if schedule.Weekday, err = logistics.ParseWeekday(weekday); err != nil {
			return nil, err
		}
		if schedule.StartDate, err = logistics.ParseDate(start); err != nil {
			return nil, err
		}
		if schedule.DepartureTime, err = logistics.ParseClock(departure); err != nil {
			return nil, err
		}
		if schedule.ArrivalTime, err = logistics.ParseClock(arrival); err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	return schedules, rows.Err()
}
