package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// SQLiteStore implements Store on an embedded SQLite database. It is the
// default backend for single-node deployments and the backend used by
// package tests.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path. The path
// ":memory:" opens a private in-memory database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// A single connection serializes writers and keeps an in-memory
	// database alive for the lifetime of the store.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func sqliteDSN(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path == "" || path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return "file:" + path + "?" + pragmas + "&_pragma=journal_mode(WAL)"
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies pending goose migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return RunSQLiteMigrations(ctx, s.db)
}

func (s *SQLiteStore) ListRetailers(ctx context.Context, activeOnly bool) ([]domain.Retailer, error) {
	query := sqliteQueryListRetailers
	if activeOnly {
		query = sqliteQueryListActiveRetailers
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying retailers: %w", err)
	}
	defer rows.Close()

	var retailers []domain.Retailer
	for rows.Next() {
		var r domain.Retailer
		if err := scanSQLiteRetailer(rows, &r); err != nil {
			return nil, fmt.Errorf("scanning retailer: %w", err)
		}
		retailers = append(retailers, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating retailers: %w", err)
	}
	return retailers, nil
}

func (s *SQLiteStore) GetRetailer(ctx context.Context, id int64) (*domain.Retailer, error) {
	r := &domain.Retailer{}
	if err := scanSQLiteRetailer(s.db.QueryRowContext(ctx, sqliteQueryGetRetailer, id), r); err != nil {
		return nil, sqlNotFound(err)
	}
	return r, nil
}

func (s *SQLiteStore) CreateRetailer(ctx context.Context, r *domain.Retailer) error {
	created := s.now().UTC()
	err := s.db.QueryRowContext(ctx, sqliteQueryCreateRetailer,
		sql.Named("name", r.Name),
		sql.Named("domain", r.Domain),
		sql.Named("price_selector", r.PriceSelector),
		sql.Named("sold_by_selector", r.SoldBySelector),
		sql.Named("sold_by_required", r.SoldByRequired),
		sql.Named("default_currency", r.DefaultCurrency),
		sql.Named("active", r.Active),
		sql.Named("created_at", toNanos(created)),
	).Scan(&r.ID)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return fmt.Errorf("creating retailer %q: %w", r.Name, ErrConflict)
		}
		return fmt.Errorf("creating retailer: %w", err)
	}
	r.Builtin = false
	r.CreatedAt = fromNanos(toNanos(created))
	return nil
}

func (s *SQLiteStore) SetRetailerActive(ctx context.Context, id int64, active bool) error {
	res, err := s.db.ExecContext(ctx, sqliteQuerySetRetailerActive, active, id)
	if err != nil {
		return fmt.Errorf("updating retailer: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) ListProductURLs(ctx context.Context, oem string) ([]domain.ProductURL, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if oem == "" {
		rows, err = s.db.QueryContext(ctx, sqliteQueryListProductURLs)
	} else {
		rows, err = s.db.QueryContext(ctx, sqliteQueryListProductURLsByOEM, oem)
	}
	if err != nil {
		return nil, fmt.Errorf("querying product urls: %w", err)
	}
	defer rows.Close()

	var urls []domain.ProductURL
	for rows.Next() {
		var pu domain.ProductURL
		if err := scanSQLiteProductURL(rows, &pu); err != nil {
			return nil, fmt.Errorf("scanning product url: %w", err)
		}
		urls = append(urls, pu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product urls: %w", err)
	}
	return urls, nil
}

func (s *SQLiteStore) GetProductURL(ctx context.Context, id int64) (*domain.ProductURL, error) {
	pu := &domain.ProductURL{}
	if err := scanSQLiteProductURL(s.db.QueryRowContext(ctx, sqliteQueryGetProductURL, id), pu); err != nil {
		return nil, sqlNotFound(err)
	}
	return pu, nil
}

func (s *SQLiteStore) UpsertProductURL(ctx context.Context, pu *domain.ProductURL) error {
	var created, updated int64
	err := s.db.QueryRowContext(ctx, sqliteQueryUpsertProductURL,
		sql.Named("oem", pu.OEM),
		sql.Named("retailer_id", pu.RetailerID),
		sql.Named("url", pu.URL),
		sql.Named("now", toNanos(s.now())),
	).Scan(&pu.ID, &pu.Active, &created, &updated)
	if err != nil {
		return fmt.Errorf("upserting product url: %w", err)
	}
	pu.CreatedAt = fromNanos(created)
	pu.UpdatedAt = fromNanos(updated)
	return nil
}

func (s *SQLiteStore) DeactivateProductURL(ctx context.Context, oem string, retailerID int64) error {
	res, err := s.db.ExecContext(ctx, sqliteQueryDeactivateProductURL, toNanos(s.now()), oem, retailerID)
	if err != nil {
		return fmt.Errorf("deactivating product url: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) ListWorkItems(ctx context.Context) ([]domain.WorkItem, error) {
	rows, err := s.db.QueryContext(ctx, sqliteQueryListWorkItems)
	if err != nil {
		return nil, fmt.Errorf("querying work items: %w", err)
	}
	defer rows.Close()

	var items []domain.WorkItem
	for rows.Next() {
		var (
			it                                   domain.WorkItem
			puCreated, puUpdated, retailerCreate int64
		)
		pu, r := &it.ProductURL, &it.Retailer
		if err := rows.Scan(
			&pu.ID, &pu.OEM, &pu.RetailerID, &pu.URL, &pu.Active, &puCreated, &puUpdated,
			&r.ID, &r.Name, &r.Domain, &r.PriceSelector, &r.SoldBySelector, &r.SoldByRequired,
			&r.DefaultCurrency, &r.Active, &r.Builtin, &retailerCreate,
		); err != nil {
			return nil, fmt.Errorf("scanning work item: %w", err)
		}
		pu.CreatedAt, pu.UpdatedAt = fromNanos(puCreated), fromNanos(puUpdated)
		r.CreatedAt = fromNanos(retailerCreate)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

func (s *SQLiteStore) GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	var (
		ns      domain.NotificationSettings
		updated int64
	)
	err := s.db.QueryRowContext(ctx, sqliteQueryGetNotificationSettings).Scan(
		&ns.Enabled, &ns.TransportCredential, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotificationSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying notification settings: %w", err)
	}
	if updated != 0 {
		ns.UpdatedAt = fromNanos(updated)
	}
	return &ns, nil
}

func (s *SQLiteStore) UpdateNotificationSettings(ctx context.Context, ns *domain.NotificationSettings) error {
	now := toNanos(s.now())
	_, err := s.db.ExecContext(ctx, sqliteQueryUpdateNotificationSettings,
		sql.Named("enabled", ns.Enabled),
		sql.Named("transport_credential", ns.TransportCredential),
		sql.Named("now", now),
	)
	if err != nil {
		return fmt.Errorf("updating notification settings: %w", err)
	}
	ns.UpdatedAt = fromNanos(now)
	return nil
}

func (s *SQLiteStore) InsertSample(ctx context.Context, ps *domain.PriceSample) error {
	err := s.db.QueryRowContext(ctx, sqliteQueryInsertSample,
		sql.Named("product_url_id", ps.ProductURLID),
		sql.Named("observed_at", toNanos(ps.ObservedAt)),
		sql.Named("price", priceText(ps.Price)),
		sql.Named("currency", ps.Currency),
		sql.Named("status", string(ps.Status)),
		sql.Named("detail", ps.Detail),
	).Scan(&ps.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("inserting price sample: %w", ErrOutOfOrder)
	}
	if err != nil {
		return fmt.Errorf("inserting price sample: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LatestSample(ctx context.Context, productURLID int64) (*domain.PriceSample, error) {
	ps := &domain.PriceSample{}
	if err := scanSQLiteSample(s.db.QueryRowContext(ctx, sqliteQueryLatestSample, productURLID), ps); err != nil {
		return nil, sqlNotFound(err)
	}
	return ps, nil
}

func (s *SQLiteStore) ListSamples(ctx context.Context, q SampleQuery) ([]domain.PriceSample, error) {
	rows, err := s.db.QueryContext(ctx, sqliteQueryListSamples,
		sql.Named("product_url_id", q.ProductURLID),
		sql.Named("from", toNanos(q.From)),
		sql.Named("to", toNanos(q.To)),
		sql.Named("after_observed_at", toNanos(q.AfterObservedAt)),
		sql.Named("after_id", q.AfterID),
		sql.Named("limit", q.EffectiveLimit()),
	)
	if err != nil {
		return nil, fmt.Errorf("querying price samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.PriceSample
	for rows.Next() {
		var ps domain.PriceSample
		if err := scanSQLiteSample(rows, &ps); err != nil {
			return nil, fmt.Errorf("scanning price sample: %w", err)
		}
		samples = append(samples, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price samples: %w", err)
	}
	return samples, nil
}

func (s *SQLiteStore) ListPricePoints(ctx context.Context, oem string, limit int) ([]domain.PricePoint, error) {
	if limit <= 0 {
		limit = defaultSampleLimit
	}

	rows, err := s.db.QueryContext(ctx, sqliteQueryListPricePoints, oem, limit)
	if err != nil {
		return nil, fmt.Errorf("querying price points: %w", err)
	}
	defer rows.Close()

	var points []domain.PricePoint
	for rows.Next() {
		var (
			p        domain.PricePoint
			observed int64
			price    sql.NullString
		)
		if err := rows.Scan(
			&p.ID, &p.ProductURLID, &observed, &price, &p.Currency, &p.Status, &p.Detail,
			&p.OEM, &p.RetailerID, &p.RetailerName, &p.URL,
		); err != nil {
			return nil, fmt.Errorf("scanning price point: %w", err)
		}
		p.ObservedAt = fromNanos(observed)
		if p.Price, err = parsePrice(nullStringPtr(price)); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price points: %w", err)
	}
	return points, nil
}

func (s *SQLiteStore) GetNotificationRecord(ctx context.Context, key string) (*domain.NotificationRecord, error) {
	var (
		r    domain.NotificationRecord
		sent int64
	)
	err := s.db.QueryRowContext(ctx, sqliteQueryGetNotificationRecord, key).Scan(
		&r.Key, &r.ProductURLID, &r.Classification, &sent,
	)
	if err != nil {
		return nil, sqlNotFound(err)
	}
	r.LastSentAt = fromNanos(sent)
	return &r, nil
}

func (s *SQLiteStore) UpsertNotificationRecord(ctx context.Context, r *domain.NotificationRecord) error {
	_, err := s.db.ExecContext(ctx, sqliteQueryUpsertNotificationRecord,
		sql.Named("key", r.Key),
		sql.Named("product_url_id", r.ProductURLID),
		sql.Named("classification", string(r.Classification)),
		sql.Named("last_sent_at", toNanos(r.LastSentAt)),
	)
	if err != nil {
		return fmt.Errorf("upserting notification record: %w", err)
	}
	return nil
}

func scanSQLiteRetailer(row scannable, r *domain.Retailer) error {
	var created int64
	if err := row.Scan(
		&r.ID, &r.Name, &r.Domain, &r.PriceSelector, &r.SoldBySelector, &r.SoldByRequired,
		&r.DefaultCurrency, &r.Active, &r.Builtin, &created,
	); err != nil {
		return err
	}
	r.CreatedAt = fromNanos(created)
	return nil
}

func scanSQLiteProductURL(row scannable, pu *domain.ProductURL) error {
	var created, updated int64
	if err := row.Scan(
		&pu.ID, &pu.OEM, &pu.RetailerID, &pu.URL, &pu.Active, &created, &updated,
	); err != nil {
		return err
	}
	pu.CreatedAt, pu.UpdatedAt = fromNanos(created), fromNanos(updated)
	return nil
}

func scanSQLiteSample(row scannable, ps *domain.PriceSample) error {
	var (
		observed int64
		price    sql.NullString
	)
	if err := row.Scan(
		&ps.ID, &ps.ProductURLID, &observed, &price, &ps.Currency, &ps.Status, &ps.Detail,
	); err != nil {
		return err
	}
	ps.ObservedAt = fromNanos(observed)
	p, err := parsePrice(nullStringPtr(price))
	if err != nil {
		return err
	}
	ps.Price = p
	return nil
}

func sqlNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// toNanos maps the zero time to 0 so it can act as "unbounded" in queries.
func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
