package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/streamcost-estimator/internal/cost"
	"github.com/rshade/streamcost-estimator/internal/model"
	"github.com/rshade/streamcost-estimator/internal/pricing"
)

// main checks one or more rate card files before they replace the embedded
// card (via rates.file or a rebuild of internal/pricing/data/rates.yaml).
//
// Each file must parse and contain no negative rates. For every file the
// tool prints the card's metadata and the monthly cost of the default
// Configuration under it, next to the same figure for the embedded card.
//
// Fail-fast behavior: the first unusable file stops the run with status 1.
func main() {
	files := flag.String("rates", "internal/pricing/data/rates.yaml", "Comma-separated rate card files")
	flag.Parse()

	if err := checkAll(strings.Split(*files, ","), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func checkAll(paths []string, out io.Writer) error {
	embedded, err := pricing.NewClient(zerolog.Nop())
	if err != nil {
		return fmt.Errorf("embedded rate card: %w", err)
	}
	baseline := cost.NewCalculator(embedded, zerolog.Nop()).Calculate(model.DefaultConfiguration())
	fmt.Fprintf(out, "embedded %s: default configuration costs $%.2f/month\n", embedded.Metadata().Version, baseline.Total())

	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if err := checkFile(path, baseline, out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// checkFile loads path as a rate card and reports the default
// Configuration's costs under it relative to baseline.
func checkFile(path string, baseline model.Costs, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Unknown-rate warnings surface missing tables in the candidate card.
	var warnings strings.Builder
	logger := zerolog.New(&warnings).Level(zerolog.WarnLevel)

	rates, err := pricing.NewClientFromYAML(data, logger)
	if err != nil {
		return err
	}
	costs := cost.NewCalculator(rates, logger).Calculate(model.DefaultConfiguration())

	meta := rates.Metadata()
	fmt.Fprintf(out, "%s: version %s published %s (%s)\n", path, meta.Version, meta.PublicationDate, meta.Currency)
	fmt.Fprintf(out, "  default configuration: $%.2f/month (%+.2f vs embedded)\n", costs.Total(), costs.Total()-baseline.Total())
	if warnings.Len() > 0 {
		fmt.Fprintf(out, "  lookups missing from this card:\n%s", warnings.String())
	}
	return nil
}
