package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/rshade/streamcost-estimator/internal/estimator"
	"github.com/rshade/streamcost-estimator/internal/model"
)

// Report formats accepted by -format.
const (
	formatText = "text"
	formatJSON = "json"
)

func writeReport(out io.Writer, format string, cfg model.Configuration, report estimator.Report) error {
	if format == formatJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}
	return writeText(out, cfg, report)
}

func writeText(out io.Writer, cfg model.Configuration, report estimator.Report) error {
	cfg = cfg.Normalized()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Platform\t%s\n", cfg.Platform)
	fmt.Fprintf(w, "Channels\t%d\n", cfg.EffectiveChannelCount())
	fmt.Fprintf(w, "Preset\t%s\n\n", cfg.EncodingPreset)

	c := report.Costs
	fmt.Fprintln(w, "MONTHLY COSTS\t")
	fmt.Fprintf(w, "  Encoding\t%s\n", dollars(c.Encoding))
	fmt.Fprintf(w, "  Storage\t%s\n", dollars(c.Storage))
	fmt.Fprintf(w, "  Delivery\t%s\n", dollars(c.Delivery))
	fmt.Fprintf(w, "  Other\t%s\n", dollars(c.Other))
	fmt.Fprintf(w, "  Total\t%s\n\n", dollars(c.Total()))

	if len(report.Items) > 0 {
		fmt.Fprintln(w, "LINE ITEMS\t")
		for _, item := range report.Items {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", item.Bucket, item.Name, dollars(item.Monthly))
		}
		fmt.Fprintln(w)
	}

	r := report.Revenue
	fmt.Fprintln(w, "MONTHLY REVENUE\t")
	fmt.Fprintf(w, "  Live ads\t%s\n", dollars(r.LiveAdRevenue))
	fmt.Fprintf(w, "  Paid programming\t%s\n", dollars(r.PaidProgrammingRevenue))
	if r.PremiumSponsorshipRevenue != nil {
		fmt.Fprintf(w, "    incl. premium sponsorship\t%s\n", dollars(*r.PremiumSponsorshipRevenue))
	}
	fmt.Fprintf(w, "  VOD ads\t%s\n", dollars(r.VODAdRevenue))
	fmt.Fprintf(w, "  Total\t%s\n", dollars(r.TotalRevenue))
	fmt.Fprintf(w, "  Net operating profit\t%s\n\n", dollars(r.NetOperatingProfit))

	h := report.Hardware
	fmt.Fprintln(w, "HARDWARE\t")
	availability := ""
	if !h.IsAvailable {
		availability = " (exceeds catalog)"
	}
	fmt.Fprintf(w, "  Recommended\t%s x%d%s\n", h.RecommendedHardware, h.ServerCount, availability)
	fmt.Fprintf(w, "  CPU cores\t%d\n", h.CPUCores)
	fmt.Fprintf(w, "  Memory\t%d GB\n", h.MemoryGB)
	fmt.Fprintf(w, "  Storage\t%d GB\n", h.StorageGB)
	fmt.Fprintf(w, "  Network\t%d Mbps\n", h.NetworkMbps)
	fmt.Fprintf(w, "  Max viewers per channel\t%d\n", h.MaxViewers)
	fmt.Fprintf(w, "  Estimated hardware cost\t%s\n\n", dollars(h.EstimatedCost))

	if len(report.Validation) > 0 {
		fmt.Fprintln(w, "VALIDATION\t")
		for _, v := range report.Validation {
			scope := v.ChannelID
			if scope == "" {
				scope = v.CategoryID
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", v.Severity, v.Field, v.Message, scope)
		}
		fmt.Fprintln(w)
	}

	if report.ExportAllowed {
		fmt.Fprintln(w, "Export\tallowed")
	} else {
		fmt.Fprintln(w, "Export\tblocked")
	}
	return w.Flush()
}

func dollars(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
