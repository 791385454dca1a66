package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	apiclient "github.com/donaldgifford/part-price-tracker/internal/api/client"
	domain "github.com/donaldgifford/part-price-tracker/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printCycleReport(w io.Writer, r *domain.CycleReport) error {
	tw := newTabWriter(w)
	tw.writef("Cycle:\t%s (%s)\n", r.ID, r.Trigger)
	tw.writef("Outcome:\t%s\n", r.Outcome)
	tw.writef("Duration:\t%s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	tw.writef("Items:\t%d (ok %d, failed %d, stale %d, notified %d)\n",
		r.Items, r.Succeeded, r.Failed, r.Stale, r.Notified)
	if r.Canceled {
		tw.writef("Canceled:\ttrue\n")
	}
	if err := tw.finish(); err != nil {
		return err
	}
	if len(r.Results) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw = newTabWriter(w)
	tw.writef("URL ID\tOEM\tRETAILER\tSTATUS\tPRICE\tCHANGE\tNOTIFIED\tERROR\n")
	for i := range r.Results {
		res := &r.Results[i]
		price := "-"
		if res.Price != nil {
			price = "$" + *res.Price
		}
		change := string(res.Classification)
		if res.Stale {
			change = "stale"
		}
		if change == "" {
			change = "-"
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\t%v\t%s\n",
			res.ProductURLID,
			res.OEM,
			res.Retailer,
			res.Status,
			price,
			change,
			res.Notified,
			truncate(res.Error, 40),
		)
	}
	return tw.finish()
}

func printSamplesTable(w io.Writer, samples []domain.PriceSample) error {
	tw := newTabWriter(w)
	tw.writef("OBSERVED\tSTATUS\tPRICE\tDETAIL\n")
	for i := range samples {
		s := &samples[i]
		tw.writef("%s\t%s\t%s\t%s\n",
			s.ObservedAt.Local().Format(timeLayout),
			s.Status,
			formatPrice(s.Price),
			truncate(s.Detail, 50),
		)
	}
	return tw.finish()
}

func printSampleDetail(w io.Writer, s *domain.PriceSample) error {
	tw := newTabWriter(w)
	tw.writef("Product URL:\t%d\n", s.ProductURLID)
	tw.writef("Observed:\t%s\n", s.ObservedAt.Local().Format(timeLayout))
	tw.writef("Status:\t%s\n", s.Status)
	tw.writef("Price:\t%s %s\n", formatPrice(s.Price), s.Currency)
	if s.Detail != "" {
		tw.writef("Detail:\t%s\n", s.Detail)
	}
	return tw.finish()
}

func printPricePointsTable(w io.Writer, points []domain.PricePoint) error {
	tw := newTabWriter(w)
	tw.writef("OBSERVED\tRETAILER\tSTATUS\tPRICE\tURL\n")
	for i := range points {
		p := &points[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			p.ObservedAt.Local().Format(timeLayout),
			p.RetailerName,
			p.Status,
			formatPrice(p.Price),
			truncate(p.URL, 60),
		)
	}
	return tw.finish()
}

func printRetailersTable(w io.Writer, rs []domain.Retailer) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tDOMAIN\tKIND\tCURRENCY\tACTIVE\n")
	for i := range rs {
		kind := "custom"
		if rs[i].Builtin {
			kind = "builtin"
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\t%v\n",
			rs[i].ID,
			rs[i].Name,
			rs[i].Domain,
			kind,
			rs[i].DefaultCurrency,
			rs[i].Active,
		)
	}
	return tw.finish()
}

func printProductURLsTable(w io.Writer, urls []domain.ProductURL) error {
	tw := newTabWriter(w)
	tw.writef("ID\tRETAILER\tACTIVE\tUPDATED\tURL\n")
	for i := range urls {
		tw.writef("%d\t%d\t%v\t%s\t%s\n",
			urls[i].ID,
			urls[i].RetailerID,
			urls[i].Active,
			urls[i].UpdatedAt.Local().Format(timeLayout),
			urls[i].URL,
		)
	}
	return tw.finish()
}

func printSettings(w io.Writer, ns *apiclient.NotificationSettings) error {
	tw := newTabWriter(w)
	tw.writef("Enabled:\t%v\n", ns.Enabled)
	cred := ns.Credential
	if !ns.HasCredential {
		cred = "(not set)"
	}
	tw.writef("Credential:\t%s\n", cred)
	if !ns.UpdatedAt.IsZero() {
		tw.writef("Updated:\t%s\n", ns.UpdatedAt.Local().Format(timeLayout))
	}
	return tw.finish()
}

func printHealth(w io.Writer, h *apiclient.Health) error {
	tw := newTabWriter(w)
	tw.writef("Status:\t%s\n", h.Status)
	tw.writef("Database:\t%s\n", h.Database)
	tw.writef("USD/CAD:\t%s\n", h.USDToCAD)
	tw.writef("Notifications:\t%v\n", h.NotificationsEnabled)
	tw.writef("Cycle running:\t%v\n", h.CycleRunning)
	if h.LastCycleAt != nil {
		tw.writef("Last cycle:\t%s (%s)\n", h.LastCycleAt.Local().Format(timeLayout), h.LastCycleOutcome)
	}
	return tw.finish()
}

func formatPrice(p *decimal.Decimal) string {
	if p == nil {
		return "-"
	}
	return "$" + p.StringFixed(2)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
