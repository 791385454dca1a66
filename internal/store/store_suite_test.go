package store_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/part-price-tracker/internal/store"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

// runStoreSuite exercises the behavior every Store backend must share.
// Each subtest receives a freshly migrated store.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("builtin retailers are seeded", func(t *testing.T) {
		s := newStore(t)
		retailers, err := s.ListRetailers(t.Context(), true)
		require.NoError(t, err)

		names := make([]string, 0, len(retailers))
		for _, r := range retailers {
			assert.True(t, r.Builtin)
			names = append(names, r.Name)
		}
		assert.ElementsMatch(t,
			[]string{"Amazon.ca", "BestBuy", "CanadaComputers", "MemoryExpress", "Newegg"},
			names,
		)
	})

	t.Run("custom retailer lifecycle", func(t *testing.T) {
		s := newStore(t)
		ctx := t.Context()

		r := &domain.Retailer{
			Name:            "PartsHub",
			Domain:          "partshub.example",
			PriceSelector:   ".price",
			DefaultCurrency: domain.CurrencyCAD,
			Active:          true,
		}
		require.NoError(t, s.CreateRetailer(ctx, r))
		assert.NotZero(t, r.ID)
		assert.False(t, r.Builtin)

		dup := *r
		assert.ErrorIs(t, s.CreateRetailer(ctx, &dup), store.ErrConflict)

		got, err := s.GetRetailer(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, ".price", got.PriceSelector)

		require.NoError(t, s.SetRetailerActive(ctx, r.ID, false))
		active, err := s.ListRetailers(ctx, true)
		require.NoError(t, err)
		for _, a := range active {
			assert.NotEqual(t, r.ID, a.ID)
		}

		assert.ErrorIs(t, s.SetRetailerActive(ctx, 99999, true), store.ErrNotFound)
		_, err = s.GetRetailer(ctx, 99999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("product url upsert replaces and reactivates", func(t *testing.T) {
		s := newStore(t)
		ctx := t.Context()
		retailerID := firstRetailerID(t, s)

		pu := &domain.ProductURL{OEM: "CMK32GX5M2B6000C36", RetailerID: retailerID, URL: "https://a.example/1"}
		require.NoError(t, s.UpsertProductURL(ctx, pu))
		firstID := pu.ID

		require.NoError(t, s.DeactivateProductURL(ctx, pu.OEM, retailerID))
		items, err := s.ListWorkItems(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)

		again := &domain.ProductURL{OEM: pu.OEM, RetailerID: retailerID, URL: "https://a.example/2"}
		require.NoError(t, s.UpsertProductURL(ctx, again))
		assert.Equal(t, firstID, again.ID)
		assert.True(t, again.Active)

		urls, err := s.ListProductURLs(ctx, pu.OEM)
		require.NoError(t, err)
		require.Len(t, urls, 1)
		assert.Equal(t, "https://a.example/2", urls[0].URL)

		items, err = s.ListWorkItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, retailerID, items[0].Retailer.ID)

		assert.ErrorIs(t, s.DeactivateProductURL(ctx, "missing", retailerID), store.ErrNotFound)
	})

	t.Run("samples keep their timeline order", func(t *testing.T) {
		s := newStore(t)
		ctx := t.Context()
		pu := seedProductURL(t, s)

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := range 7 {
			price := decimal.NewFromInt(int64(100 - i))
			require.NoError(t, s.InsertSample(ctx, &domain.PriceSample{
				ProductURLID: pu.ID,
				ObservedAt:   base.Add(time.Duration(i) * time.Hour),
				Price:        &price,
				Currency:     domain.CurrencyCAD,
				Status:       domain.StatusOK,
			}))
		}
		require.NoError(t, s.InsertSample(ctx, &domain.PriceSample{
			ProductURLID: pu.ID,
			ObservedAt:   base.Add(7 * time.Hour),
			Currency:     domain.CurrencyCAD,
			Status:       domain.StatusUnavailable,
		}))

		latest, err := s.LatestSample(ctx, pu.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnavailable, latest.Status)
		assert.Nil(t, latest.Price)

		page, err := s.ListSamples(ctx, store.SampleQuery{ProductURLID: pu.ID, Limit: 3})
		require.NoError(t, err)
		require.Len(t, page, 3)
		assert.Equal(t, "100.00", page[0].Price.StringFixed(2))

		last := page[len(page)-1]
		next, err := s.ListSamples(ctx, store.SampleQuery{
			ProductURLID:    pu.ID,
			AfterObservedAt: last.ObservedAt,
			AfterID:         last.ID,
			Limit:           100,
		})
		require.NoError(t, err)
		require.Len(t, next, 5)
		assert.True(t, next[0].ObservedAt.After(last.ObservedAt))

		window, err := s.ListSamples(ctx, store.SampleQuery{
			ProductURLID: pu.ID,
			From:         base.Add(2 * time.Hour),
			To:           base.Add(4 * time.Hour),
		})
		require.NoError(t, err)
		assert.Len(t, window, 3)

		points, err := s.ListPricePoints(ctx, pu.OEM, 2)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, pu.URL, points[0].URL)
		assert.NotEmpty(t, points[0].RetailerName)
	})

	t.Run("insert refuses samples older than the latest", func(t *testing.T) {
		s := newStore(t)
		ctx := t.Context()
		pu := seedProductURL(t, s)

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		price := decimal.RequireFromString("40.00")
		newer := &domain.PriceSample{
			ProductURLID: pu.ID, ObservedAt: base.Add(2 * time.Hour),
			Price: &price, Currency: domain.CurrencyCAD, Status: domain.StatusOK,
		}
		require.NoError(t, s.InsertSample(ctx, newer))

		older := &domain.PriceSample{
			ProductURLID: pu.ID, ObservedAt: base,
			Currency: domain.CurrencyCAD, Status: domain.StatusUnavailable,
		}
		require.ErrorIs(t, s.InsertSample(ctx, older), store.ErrOutOfOrder)
		assert.Zero(t, older.ID)

		same := &domain.PriceSample{
			ProductURLID: pu.ID, ObservedAt: newer.ObservedAt,
			Currency: domain.CurrencyCAD, Status: domain.StatusUnavailable,
		}
		require.NoError(t, s.InsertSample(ctx, same))

		all, err := s.ListSamples(ctx, store.SampleQuery{ProductURLID: pu.ID})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, []int64{newer.ID, same.ID}, []int64{all[0].ID, all[1].ID})
	})

	t.Run("latest sample of unknown url is not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.LatestSample(t.Context(), 424242)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("notification settings and records", func(t *testing.T) {
		s := newStore(t)
		ctx := t.Context()

		ns, err := s.GetNotificationSettings(ctx)
		require.NoError(t, err)
		assert.False(t, ns.Enabled)

		require.NoError(t, s.UpdateNotificationSettings(ctx, &domain.NotificationSettings{
			Enabled:             true,
			TransportCredential: "o.token",
		}))
		ns, err = s.GetNotificationSettings(ctx)
		require.NoError(t, err)
		assert.True(t, ns.Enabled)
		assert.Equal(t, "o.token", ns.TransportCredential)

		key := domain.NotificationKey(7, domain.PriceDrop)
		_, err = s.GetNotificationRecord(ctx, key)
		require.ErrorIs(t, err, store.ErrNotFound)

		sent := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		rec := &domain.NotificationRecord{Key: key, ProductURLID: 7, Classification: domain.PriceDrop, LastSentAt: sent}
		require.NoError(t, s.UpsertNotificationRecord(ctx, rec))
		rec.LastSentAt = sent.Add(48 * time.Hour)
		require.NoError(t, s.UpsertNotificationRecord(ctx, rec))

		got, err := s.GetNotificationRecord(ctx, key)
		require.NoError(t, err)
		assert.True(t, got.LastSentAt.Equal(sent.Add(48*time.Hour)))
	})
}

func firstRetailerID(t *testing.T, s store.Store) int64 {
	t.Helper()
	retailers, err := s.ListRetailers(t.Context(), true)
	require.NoError(t, err)
	require.NotEmpty(t, retailers)
	return retailers[0].ID
}

func seedProductURL(t *testing.T, s store.Store) *domain.ProductURL {
	t.Helper()
	pu := &domain.ProductURL{
		OEM:        "BX8071514600K",
		RetailerID: firstRetailerID(t, s),
		URL:        "https://www.canadacomputers.com/product_info.php?item_id=1",
	}
	require.NoError(t, s.UpsertProductURL(t.Context(), pu))
	return pu
}
