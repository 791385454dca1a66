package store

// SQL query constants for SQLiteStore. Timestamps are stored as unix
// nanoseconds and prices as fixed two-decimal text.

const (
	sqliteQueryListRetailers = `SELECT ` + retailerColumns + ` FROM retailers ORDER BY name`

	sqliteQueryListActiveRetailers = `SELECT ` + retailerColumns + ` FROM retailers
		WHERE active = 1 ORDER BY name`

	sqliteQueryGetRetailer = `SELECT ` + retailerColumns + ` FROM retailers WHERE id = ?`

	sqliteQueryCreateRetailer = `
		INSERT INTO retailers (
			name, domain, price_selector, sold_by_selector, sold_by_required,
			default_currency, active, builtin, created_at
		) VALUES (
			@name, @domain, @price_selector, @sold_by_selector, @sold_by_required,
			@default_currency, @active, 0, @created_at
		)
		RETURNING id`

	sqliteQuerySetRetailerActive = `UPDATE retailers SET active = ? WHERE id = ?`
)

const (
	sqliteQueryListProductURLs = `SELECT ` + productURLColumns + ` FROM product_urls
		ORDER BY oem, retailer_id`

	sqliteQueryListProductURLsByOEM = `SELECT ` + productURLColumns + ` FROM product_urls
		WHERE oem = ? ORDER BY retailer_id`

	sqliteQueryGetProductURL = `SELECT ` + productURLColumns + ` FROM product_urls WHERE id = ?`

	sqliteQueryUpsertProductURL = `
		INSERT INTO product_urls (oem, retailer_id, url, active, created_at, updated_at)
		VALUES (@oem, @retailer_id, @url, 1, @now, @now)
		ON CONFLICT (oem, retailer_id) DO UPDATE SET
			url = excluded.url,
			active = 1,
			updated_at = excluded.updated_at
		RETURNING id, active, created_at, updated_at`

	sqliteQueryDeactivateProductURL = `
		UPDATE product_urls SET active = 0, updated_at = ?
		WHERE oem = ? AND retailer_id = ?`

	sqliteQueryListWorkItems = `
		SELECT p.id, p.oem, p.retailer_id, p.url, p.active, p.created_at, p.updated_at,
			r.id, r.name, r.domain, r.price_selector, r.sold_by_selector, r.sold_by_required,
			r.default_currency, r.active, r.builtin, r.created_at
		FROM product_urls p
		JOIN retailers r ON r.id = p.retailer_id
		WHERE p.active = 1 AND r.active = 1
		ORDER BY p.id`
)

const (
	sqliteQueryGetNotificationSettings = `
		SELECT enabled, transport_credential, updated_at
		FROM notification_settings WHERE id = 1`

	sqliteQueryUpdateNotificationSettings = `
		INSERT INTO notification_settings (id, enabled, transport_credential, updated_at)
		VALUES (1, @enabled, @transport_credential, @now)
		ON CONFLICT (id) DO UPDATE SET
			enabled = excluded.enabled,
			transport_credential = excluded.transport_credential,
			updated_at = excluded.updated_at`
)

const (
	sqliteSampleColumns = `id, product_url_id, observed_at, price, currency, status, detail`

	sqliteQueryInsertSample = `
		INSERT INTO price_samples (product_url_id, observed_at, price, currency, status, detail)
		SELECT @product_url_id, @observed_at, @price, @currency, @status, @detail
		WHERE NOT EXISTS (
			SELECT 1 FROM price_samples
			WHERE product_url_id = @product_url_id AND observed_at > @observed_at
		)
		RETURNING id`

	sqliteQueryLatestSample = `SELECT ` + sqliteSampleColumns + ` FROM price_samples
		WHERE product_url_id = ?
		ORDER BY observed_at DESC, id DESC
		LIMIT 1`

	sqliteQueryListSamples = `SELECT ` + sqliteSampleColumns + ` FROM price_samples
		WHERE product_url_id = @product_url_id
			AND (@from = 0 OR observed_at >= @from)
			AND (@to = 0 OR observed_at <= @to)
			AND (@after_observed_at = 0
				OR observed_at > @after_observed_at
				OR (observed_at = @after_observed_at AND id > @after_id))
		ORDER BY observed_at, id
		LIMIT @limit`

	sqliteQueryListPricePoints = `
		SELECT s.id, s.product_url_id, s.observed_at, s.price, s.currency, s.status, s.detail,
			p.oem, p.retailer_id, r.name, p.url
		FROM price_samples s
		JOIN product_urls p ON p.id = s.product_url_id
		JOIN retailers r ON r.id = p.retailer_id
		WHERE p.oem = ?
		ORDER BY s.observed_at DESC, s.id DESC
		LIMIT ?`
)

const (
	sqliteQueryGetNotificationRecord = `
		SELECT key, product_url_id, classification, last_sent_at
		FROM notification_records WHERE key = ?`

	sqliteQueryUpsertNotificationRecord = `
		INSERT INTO notification_records (key, product_url_id, classification, last_sent_at)
		VALUES (@key, @product_url_id, @classification, @last_sent_at)
		ON CONFLICT (key) DO UPDATE SET last_sent_at = excluded.last_sent_at`
)
