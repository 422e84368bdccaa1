package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"realestate-api/apperrors"
	"realestate-api/config"
	"realestate-api/models"
	"realestate-api/utils"
)

const insertBatchSize = 50

var _ ListingStore = (*SQLStore)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		property_id TEXT PRIMARY KEY,
		price       DOUBLE PRECISION,
		bedrooms    DOUBLE PRECISION DEFAULT 0,
		bathrooms   DOUBLE PRECISION DEFAULT 0,
		square_feet DOUBLE PRECISION DEFAULT 0,
		city        TEXT NOT NULL DEFAULT '',
		date_listed TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_city  ON listings(city)`,
}

// SQLStore persists listings in a relational database. SQLite and
// PostgreSQL are supported; they differ only in driver and placeholders.
type SQLStore struct {
	db          *sql.DB
	placeholder placeholderFunc
}

// Open connects to the store for driver, verifies the connection with
// retry, runs schema migrations and returns a ready-to-use SQLStore.
func Open(ctx context.Context, driver, dsn string, retry *utils.RetryConfig) (*SQLStore, error) {
	var (
		sqlDriver string
		ph        placeholderFunc
	)
	switch driver {
	case config.DriverSQLite:
		sqlDriver, ph = "sqlite", questionPlaceholder
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, apperrors.Store(err, "sqlite: create db dir")
			}
		}
		dsn = sqliteDSN(dsn)
	case config.DriverPostgres:
		sqlDriver, ph = "postgres", dollarPlaceholder
	default:
		return nil, apperrors.Store(nil, "unsupported store driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, apperrors.Store(err, "%s: open", driver)
	}
	if driver == config.DriverSQLite && strings.HasPrefix(dsn, ":memory:") {
		// every new connection would see its own empty database
		db.SetMaxOpenConns(1)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do(ctx, driver+"-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, apperrors.Store(err, "%s: ping", driver)
	}

	s := &SQLStore{db: db, placeholder: ph}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.Store(err, "%s: migrate", driver)
	}
	return s, nil
}

// sqliteDSN enables WAL so readers keep seeing the last committed snapshot
// while an ingestion transaction is open.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	pragmas := "_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		pragmas += "&_pragma=journal_mode(WAL)"
	}
	return path + sep + pragmas
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Replace deletes every listing and inserts the given ones inside a single
// transaction. On any error the transaction is rolled back and the previous
// contents remain.
func (s *SQLStore) Replace(ctx context.Context, listings []models.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Store(err, "replace: begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return apperrors.Store(err, "replace: clear")
	}

	for i := 0; i < len(listings); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := s.insertBatch(ctx, tx, listings[i:end]); err != nil {
			return apperrors.Store(err, "replace: insert rows %d-%d", i+1, end)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Store(err, "replace: commit")
	}
	return nil
}

func (s *SQLStore) insertBatch(ctx context.Context, tx *sql.Tx, batch []models.Listing) error {
	const cols = 7
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		phs := make([]string, cols)
		for c := 0; c < cols; c++ {
			phs[c] = s.placeholder(base + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(phs, ",")+")")

		var price interface{}
		if l.Price != nil {
			price = *l.Price
		}
		valueArgs = append(valueArgs,
			l.PropertyID, price, l.Bedrooms, l.Bathrooms, l.SquareFeet, l.City, l.DateListed)
	}

	query := fmt.Sprintf("INSERT INTO listings (%s) VALUES %s",
		listingColumns, strings.Join(valueStrings, ","))

	_, err := tx.ExecContext(ctx, query, valueArgs...)
	return err
}

// Query returns the listings matching f, in store order.
func (s *SQLStore) Query(ctx context.Context, f models.Filter) ([]models.Listing, error) {
	query, args := buildListingsQuery(s.placeholder, f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Store(err, "query listings")
	}
	defer rows.Close()

	listings := make([]models.Listing, 0)
	for rows.Next() {
		var (
			l                        models.Listing
			price, beds, baths, sqft sql.NullFloat64
			city, dateListed         sql.NullString
		)
		if err := rows.Scan(&l.PropertyID, &price, &beds, &baths, &sqft, &city, &dateListed); err != nil {
			return nil, apperrors.Store(err, "scan listing")
		}
		if price.Valid {
			p := price.Float64
			l.Price = &p
		}
		l.Bedrooms = beds.Float64
		l.Bathrooms = baths.Float64
		l.SquareFeet = sqft.Float64
		l.City = city.String
		l.DateListed = dateListed.String
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err, "iterate listings")
	}
	return listings, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
