package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ListRetailers returns all retailers, optionally only the active ones.
func (s *PostgresStore) ListRetailers(ctx context.Context, activeOnly bool) ([]domain.Retailer, error) {
	query := queryListRetailers
	if activeOnly {
		query = queryListActiveRetailers
	}

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying retailers: %w", err)
	}
	defer rows.Close()

	var retailers []domain.Retailer
	for rows.Next() {
		var r domain.Retailer
		if err := scanRetailer(rows, &r); err != nil {
			return nil, fmt.Errorf("scanning retailer: %w", err)
		}
		retailers = append(retailers, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating retailers: %w", err)
	}
	return retailers, nil
}

// GetRetailer retrieves a retailer by ID.
func (s *PostgresStore) GetRetailer(ctx context.Context, id int64) (*domain.Retailer, error) {
	r := &domain.Retailer{}
	if err := scanRetailer(s.pool.QueryRow(ctx, queryGetRetailer, id), r); err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// CreateRetailer inserts a custom retailer.
func (s *PostgresStore) CreateRetailer(ctx context.Context, r *domain.Retailer) error {
	args := pgx.NamedArgs{
		"name":             r.Name,
		"domain":           r.Domain,
		"price_selector":   r.PriceSelector,
		"sold_by_selector": r.SoldBySelector,
		"sold_by_required": r.SoldByRequired,
		"default_currency": r.DefaultCurrency,
		"active":           r.Active,
	}

	if err := s.pool.QueryRow(ctx, queryCreateRetailer, args).Scan(&r.ID, &r.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creating retailer %q: %w", r.Name, ErrConflict)
		}
		return fmt.Errorf("creating retailer: %w", err)
	}
	r.Builtin = false
	return nil
}

// SetRetailerActive toggles whether a retailer participates in refreshes.
func (s *PostgresStore) SetRetailerActive(ctx context.Context, id int64, active bool) error {
	tag, err := s.pool.Exec(ctx, querySetRetailerActive, id, active)
	if err != nil {
		return fmt.Errorf("updating retailer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProductURLs returns product URLs, optionally restricted to one OEM.
func (s *PostgresStore) ListProductURLs(ctx context.Context, oem string) ([]domain.ProductURL, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if oem == "" {
		rows, err = s.pool.Query(ctx, queryListProductURLs)
	} else {
		rows, err = s.pool.Query(ctx, queryListProductURLsByOEM, oem)
	}
	if err != nil {
		return nil, fmt.Errorf("querying product urls: %w", err)
	}
	defer rows.Close()

	var urls []domain.ProductURL
	for rows.Next() {
		var pu domain.ProductURL
		if err := scanProductURL(rows, &pu); err != nil {
			return nil, fmt.Errorf("scanning product url: %w", err)
		}
		urls = append(urls, pu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product urls: %w", err)
	}
	return urls, nil
}

// GetProductURL retrieves a product URL by ID.
func (s *PostgresStore) GetProductURL(ctx context.Context, id int64) (*domain.ProductURL, error) {
	pu := &domain.ProductURL{}
	if err := scanProductURL(s.pool.QueryRow(ctx, queryGetProductURL, id), pu); err != nil {
		return nil, notFound(err)
	}
	return pu, nil
}

// UpsertProductURL inserts or replaces the URL for an (OEM, retailer) pair
// and reactivates it.
func (s *PostgresStore) UpsertProductURL(ctx context.Context, pu *domain.ProductURL) error {
	args := pgx.NamedArgs{
		"oem":         pu.OEM,
		"retailer_id": pu.RetailerID,
		"url":         pu.URL,
	}

	err := s.pool.QueryRow(ctx, queryUpsertProductURL, args).Scan(
		&pu.ID, &pu.Active, &pu.CreatedAt, &pu.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting product url: %w", err)
	}
	return nil
}

// DeactivateProductURL soft-deletes the URL for an (OEM, retailer) pair.
// Its samples stay in the history.
func (s *PostgresStore) DeactivateProductURL(ctx context.Context, oem string, retailerID int64) error {
	tag, err := s.pool.Exec(ctx, queryDeactivateProductURL, oem, retailerID)
	if err != nil {
		return fmt.Errorf("deactivating product url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWorkItems returns every active product URL joined with its active retailer.
func (s *PostgresStore) ListWorkItems(ctx context.Context) ([]domain.WorkItem, error) {
	rows, err := s.pool.Query(ctx, queryListWorkItems)
	if err != nil {
		return nil, fmt.Errorf("querying work items: %w", err)
	}
	defer rows.Close()

	var items []domain.WorkItem
	for rows.Next() {
		var (
			pu = &domain.ProductURL{}
			r  = &domain.Retailer{}
		)
		if err := rows.Scan(
			&pu.ID, &pu.OEM, &pu.RetailerID, &pu.URL, &pu.Active, &pu.CreatedAt, &pu.UpdatedAt,
			&r.ID, &r.Name, &r.Domain, &r.PriceSelector, &r.SoldBySelector, &r.SoldByRequired,
			&r.DefaultCurrency, &r.Active, &r.Builtin, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning work item: %w", err)
		}
		items = append(items, domain.WorkItem{ProductURL: *pu, Retailer: *r})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}

// GetNotificationSettings returns the singleton notification settings row.
func (s *PostgresStore) GetNotificationSettings(ctx context.Context) (*domain.NotificationSettings, error) {
	ns := &domain.NotificationSettings{}
	err := s.pool.QueryRow(ctx, queryGetNotificationSettings).Scan(
		&ns.Enabled, &ns.TransportCredential, &ns.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.NotificationSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying notification settings: %w", err)
	}
	return ns, nil
}

// UpdateNotificationSettings replaces the singleton notification settings row.
func (s *PostgresStore) UpdateNotificationSettings(ctx context.Context, ns *domain.NotificationSettings) error {
	args := pgx.NamedArgs{
		"enabled":              ns.Enabled,
		"transport_credential": ns.TransportCredential,
	}
	if err := s.pool.QueryRow(ctx, queryUpdateNotificationSettings, args).Scan(&ns.UpdatedAt); err != nil {
		return fmt.Errorf("updating notification settings: %w", err)
	}
	return nil
}

// InsertSample appends a price sample and sets its ID.
func (s *PostgresStore) InsertSample(ctx context.Context, ps *domain.PriceSample) error {
	args := pgx.NamedArgs{
		"product_url_id": ps.ProductURLID,
		"observed_at":    ps.ObservedAt,
		"price":          priceText(ps.Price),
		"currency":       ps.Currency,
		"status":         string(ps.Status),
		"detail":         ps.Detail,
	}
	err := s.pool.QueryRow(ctx, queryInsertSample, args).Scan(&ps.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("inserting price sample: %w", ErrOutOfOrder)
	}
	if err != nil {
		return fmt.Errorf("inserting price sample: %w", err)
	}
	return nil
}

// LatestSample returns the newest sample of a product URL.
func (s *PostgresStore) LatestSample(ctx context.Context, productURLID int64) (*domain.PriceSample, error) {
	ps := &domain.PriceSample{}
	if err := scanSample(s.pool.QueryRow(ctx, queryLatestSample, productURLID), ps); err != nil {
		return nil, notFound(err)
	}
	return ps, nil
}

// ListSamples returns one page of a product URL's timeline.
func (s *PostgresStore) ListSamples(ctx context.Context, q SampleQuery) ([]domain.PriceSample, error) {
	args := pgx.NamedArgs{
		"product_url_id":    q.ProductURLID,
		"from":              optionalTime(q.From),
		"to":                optionalTime(q.To),
		"after_observed_at": optionalTime(q.AfterObservedAt),
		"after_id":          q.AfterID,
		"limit":             q.EffectiveLimit(),
	}

	rows, err := s.pool.Query(ctx, queryListSamples, args)
	if err != nil {
		return nil, fmt.Errorf("querying price samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.PriceSample
	for rows.Next() {
		var ps domain.PriceSample
		if err := scanSample(rows, &ps); err != nil {
			return nil, fmt.Errorf("scanning price sample: %w", err)
		}
		samples = append(samples, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price samples: %w", err)
	}
	return samples, nil
}

// ListPricePoints returns the newest samples across every listing of an OEM.
func (s *PostgresStore) ListPricePoints(ctx context.Context, oem string, limit int) ([]domain.PricePoint, error) {
	if limit <= 0 {
		limit = defaultSampleLimit
	}

	rows, err := s.pool.Query(ctx, queryListPricePoints, oem, limit)
	if err != nil {
		return nil, fmt.Errorf("querying price points: %w", err)
	}
	defer rows.Close()

	var points []domain.PricePoint
	for rows.Next() {
		var (
			p     domain.PricePoint
			price *string
		)
		if err := rows.Scan(
			&p.ID, &p.ProductURLID, &p.ObservedAt, &price, &p.Currency, &p.Status, &p.Detail,
			&p.OEM, &p.RetailerID, &p.RetailerName, &p.URL,
		); err != nil {
			return nil, fmt.Errorf("scanning price point: %w", err)
		}
		if p.Price, err = parsePrice(price); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price points: %w", err)
	}
	return points, nil
}

// GetNotificationRecord returns the dedup record for a key.
func (s *PostgresStore) GetNotificationRecord(ctx context.Context, key string) (*domain.NotificationRecord, error) {
	r := &domain.NotificationRecord{}
	err := s.pool.QueryRow(ctx, queryGetNotificationRecord, key).Scan(
		&r.Key, &r.ProductURLID, &r.Classification, &r.LastSentAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// UpsertNotificationRecord stores the last send time for a dedup key.
func (s *PostgresStore) UpsertNotificationRecord(ctx context.Context, r *domain.NotificationRecord) error {
	args := pgx.NamedArgs{
		"key":            r.Key,
		"product_url_id": r.ProductURLID,
		"classification": string(r.Classification),
		"last_sent_at":   r.LastSentAt,
	}
	if _, err := s.pool.Exec(ctx, queryUpsertNotificationRecord, args); err != nil {
		return fmt.Errorf("upserting notification record: %w", err)
	}
	return nil
}

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

func scanRetailer(row scannable, r *domain.Retailer) error {
	return row.Scan(
		&r.ID, &r.Name, &r.Domain, &r.PriceSelector, &r.SoldBySelector, &r.SoldByRequired,
		&r.DefaultCurrency, &r.Active, &r.Builtin, &r.CreatedAt,
	)
}

func scanProductURL(row scannable, pu *domain.ProductURL) error {
	return row.Scan(
		&pu.ID, &pu.OEM, &pu.RetailerID, &pu.URL, &pu.Active, &pu.CreatedAt, &pu.UpdatedAt,
	)
}

func scanSample(row scannable, ps *domain.PriceSample) error {
	var price *string
	if err := row.Scan(
		&ps.ID, &ps.ProductURLID, &ps.ObservedAt, &price, &ps.Currency, &ps.Status, &ps.Detail,
	); err != nil {
		return err
	}
	p, err := parsePrice(price)
	if err != nil {
		return err
	}
	ps.Price = p
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// priceText renders a price with two decimal places, or nil when absent.
func priceText(p *decimal.Decimal) *string {
	if p == nil {
		return nil
	}
	s := p.StringFixed(2)
	return &s
}

func parsePrice(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("parsing stored price %q: %w", *s, err)
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
