package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/meermanr/whathifi/app/chart"
	"github.com/meermanr/whathifi/app/config"
	"github.com/meermanr/whathifi/app/filter"
	"github.com/meermanr/whathifi/app/review"
	"github.com/meermanr/whathifi/app/vizcolumns"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "chart":
		runChart()
	case "table":
		runTable()
	case "stats":
		runStats()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: whathifi <command> [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  chart         Render the rating/price punch-card chart as SVG")
	fmt.Fprintln(os.Stderr, "  table         Render the spec-sheet table as SVG")
	fmt.Fprintln(os.Stderr, "  stats         Print the price spread per star rating")
}

type commonOpts struct {
	input  string
	output string
	conf   string
	f      filter.Filter
}

func commonFlags(name string) (*pflag.FlagSet, *commonOpts) {
	flags := pflag.NewFlagSet(name, pflag.ExitOnError)
	opts := &commonOpts{}
	flags.StringVarP(&opts.input, "input", "i", "", "Reviews JSONL file (overrides config data_file)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	flags.StringVarP(&opts.conf, "config", "c", "", "Path to config.json")
	flags.IntVar(&opts.f.MinPrice, "min-price", 0, "Keep only products at or above this price")
	flags.IntVar(&opts.f.MaxPrice, "max-price", 0, "Keep only products at or below this price")
	flags.IntVar(&opts.f.MinRating, "min-rating", 0, "Keep only products with at least this rating")
	flags.IntVar(&opts.f.MaxRating, "max-rating", 0, "Keep only products with at most this rating")
	flags.StringVarP(&opts.f.Query, "query", "q", "", "Free-text filter over names and specs")
	return flags, opts
}

// loadFiltered loads the configuration and dataset and applies the
// filter controls.
func loadFiltered(opts *commonOpts) (*config.VizConfig, []review.Review, error) {
	conf := config.Default()
	if opts.conf != "" {
		var err error
		conf, err = config.Load(opts.conf)
		if err != nil {
			return nil, nil, err
		}
	}
	dataFile := conf.DataFile
	if opts.input != "" {
		dataFile = opts.input
	}

	reviews, err := review.LoadJSONL(dataFile)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("loaded reviews", "file", dataFile, "count", len(reviews))

	var idx *filter.TextIndex
	if opts.f.Query != "" {
		idx, err = filter.NewTextIndex(reviews)
		if err != nil {
			return nil, nil, err
		}
		defer idx.Close()
	}
	filtered, err := opts.f.Apply(reviews, idx)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("applied filter", "filter", opts.f.String(), "remaining", len(filtered))
	return conf, filtered, nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func runChart() {
	flags, opts := commonFlags("chart")
	flags.Parse(os.Args[2:])

	conf, reviews, err := loadFiltered(opts)
	if err != nil {
		slog.Error("failed to prepare dataset", "err", err)
		os.Exit(1)
	}

	points := review.RatingPriceFrequency(reviews, conf.PriceBandwidth)
	out, err := openOutput(opts.output)
	if err != nil {
		slog.Error("failed to open output", "err", err)
		os.Exit(1)
	}
	if err := chart.RenderPunchCard(out, points, conf); err != nil {
		slog.Error("failed to render chart", "err", err)
		os.Exit(1)
	}
	closeOutput(out, opts.output)
}

func runTable() {
	flags, opts := commonFlags("table")
	flags.Parse(os.Args[2:])

	conf, reviews, err := loadFiltered(opts)
	if err != nil {
		slog.Error("failed to prepare dataset", "err", err)
		os.Exit(1)
	}

	pal, err := conf.Palette.Colors()
	if err != nil {
		slog.Error("bad palette in config", "err", err)
		os.Exit(1)
	}
	columns, err := vizcolumns.Classify(reviews, review.SpecHeadings, review.SpecValues, pal)
	if err != nil {
		slog.Error("failed to classify columns", "err", err)
		os.Exit(1)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		slog.Error("failed to open output", "err", err)
		os.Exit(1)
	}
	if err := chart.RenderSpecTable(out, reviews, columns); err != nil {
		slog.Error("failed to render table", "err", err)
		os.Exit(1)
	}
	closeOutput(out, opts.output)
}

func runStats() {
	flags, opts := commonFlags("stats")
	flags.Parse(os.Args[2:])

	_, reviews, err := loadFiltered(opts)
	if err != nil {
		slog.Error("failed to prepare dataset", "err", err)
		os.Exit(1)
	}

	out, err := openOutput(opts.output)
	if err != nil {
		slog.Error("failed to open output", "err", err)
		os.Exit(1)
	}
	fmt.Fprintf(out, "%7s %5s %7s %7s %7s %7s\n", "rating", "n", "mean", "min", "max", "stddev")
	for _, s := range review.PriceSpreadByRating(reviews) {
		fmt.Fprintf(out, "%7d %5d %7.0f %7.0f %7.0f %7.0f\n",
			s.Rating, s.Count, s.Mean, s.Min, s.Max, s.StdDev)
	}
	closeOutput(out, opts.output)
}

func closeOutput(out io.WriteCloser, path string) {
	if path == "" {
		return // never close stdout
	}
	if err := out.Close(); err != nil {
		slog.Error("failed to close output", "file", path, "err", err)
		os.Exit(1)
	}
}
