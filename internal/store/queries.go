package store

// SQL query constants for PostgresStore, organized by entity.

// Retailer queries.
const (
	retailerColumns = `id, name, domain, price_selector, sold_by_selector, sold_by_required,
		default_currency, active, builtin, created_at`

	queryListRetailers = `SELECT ` + retailerColumns + ` FROM retailers ORDER BY name`

	queryListActiveRetailers = `SELECT ` + retailerColumns + ` FROM retailers WHERE active ORDER BY name`

	queryGetRetailer = `SELECT ` + retailerColumns + ` FROM retailers WHERE id = $1`

	queryCreateRetailer = `
		INSERT INTO retailers (
			name, domain, price_selector, sold_by_selector, sold_by_required,
			default_currency, active, builtin
		) VALUES (
			@name, @domain, @price_selector, @sold_by_selector, @sold_by_required,
			@default_currency, @active, FALSE
		)
		RETURNING id, created_at`

	querySetRetailerActive = `UPDATE retailers SET active = $2 WHERE id = $1`
)

// Product URL queries.
const (
	productURLColumns = `id, oem, retailer_id, url, active, created_at, updated_at`

	queryListProductURLs = `SELECT ` + productURLColumns + ` FROM product_urls
		ORDER BY oem, retailer_id`

	queryListProductURLsByOEM = `SELECT ` + productURLColumns + ` FROM product_urls
		WHERE oem = $1 ORDER BY retailer_id`

	queryGetProductURL = `SELECT ` + productURLColumns + ` FROM product_urls WHERE id = $1`

	queryUpsertProductURL = `
		INSERT INTO product_urls (oem, retailer_id, url, active, created_at, updated_at)
		VALUES (@oem, @retailer_id, @url, TRUE, now(), now())
		ON CONFLICT (oem, retailer_id) DO UPDATE SET
			url = EXCLUDED.url,
			active = TRUE,
			updated_at = now()
		RETURNING id, active, created_at, updated_at`

	queryDeactivateProductURL = `
		UPDATE product_urls SET active = FALSE, updated_at = now()
		WHERE oem = $1 AND retailer_id = $2`

	queryListWorkItems = `
		SELECT p.id, p.oem, p.retailer_id, p.url, p.active, p.created_at, p.updated_at,
			r.id, r.name, r.domain, r.price_selector, r.sold_by_selector, r.sold_by_required,
			r.default_currency, r.active, r.builtin, r.created_at
		FROM product_urls p
		JOIN retailers r ON r.id = p.retailer_id
		WHERE p.active AND r.active
		ORDER BY p.id`
)

// Notification settings queries.
const (
	queryGetNotificationSettings = `
		SELECT enabled, transport_credential, updated_at
		FROM notification_settings WHERE id = 1`

	queryUpdateNotificationSettings = `
		INSERT INTO notification_settings (id, enabled, transport_credential, updated_at)
		VALUES (1, @enabled, @transport_credential, now())
		ON CONFLICT (id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			transport_credential = EXCLUDED.transport_credential,
			updated_at = now()
		RETURNING updated_at`
)

// Price sample queries. Prices travel as text so NUMERIC values round-trip
// through decimal.Decimal without float conversion.
const (
	sampleColumns = `id, product_url_id, observed_at, price::text, currency, status, detail`

	queryInsertSample = `
		INSERT INTO price_samples (product_url_id, observed_at, price, currency, status, detail)
		SELECT @product_url_id::bigint, @observed_at::timestamptz, @price::numeric,
			@currency::text, @status::text, @detail::text
		WHERE NOT EXISTS (
			SELECT 1 FROM price_samples
			WHERE product_url_id = @product_url_id::bigint
				AND observed_at > @observed_at::timestamptz
		)
		RETURNING id`

	queryLatestSample = `SELECT ` + sampleColumns + ` FROM price_samples
		WHERE product_url_id = $1
		ORDER BY observed_at DESC, id DESC
		LIMIT 1`

	queryListSamples = `SELECT ` + sampleColumns + ` FROM price_samples
		WHERE product_url_id = @product_url_id
			AND (@from::timestamptz IS NULL OR observed_at >= @from::timestamptz)
			AND (@to::timestamptz IS NULL OR observed_at <= @to::timestamptz)
			AND (@after_observed_at::timestamptz IS NULL
				OR (observed_at, id) > (@after_observed_at::timestamptz, @after_id::bigint))
		ORDER BY observed_at, id
		LIMIT @limit`

	queryListPricePoints = `
		SELECT s.id, s.product_url_id, s.observed_at, s.price::text, s.currency, s.status, s.detail,
			p.oem, p.retailer_id, r.name, p.url
		FROM price_samples s
		JOIN product_urls p ON p.id = s.product_url_id
		JOIN retailers r ON r.id = p.retailer_id
		WHERE p.oem = $1
		ORDER BY s.observed_at DESC, s.id DESC
		LIMIT $2`
)

// Notification record queries.
const (
	queryGetNotificationRecord = `
		SELECT key, product_url_id, classification, last_sent_at
		FROM notification_records WHERE key = $1`

	queryUpsertNotificationRecord = `
		INSERT INTO notification_records (key, product_url_id, classification, last_sent_at)
		VALUES (@key, @product_url_id, @classification, @last_sent_at)
		ON CONFLICT (key) DO UPDATE SET last_sent_at = EXCLUDED.last_sent_at`
)
