package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/Zoetrophy/pervade/internal/config"
	"github.com/Zoetrophy/pervade/internal/fetch"
	"github.com/Zoetrophy/pervade/internal/index"
	"github.com/Zoetrophy/pervade/internal/transform"
	"github.com/Zoetrophy/pervade/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagArcs     []int
	flagChapters []int

	// mode
	flagDownload bool
	flagJoin     bool

	// pacing/output
	flagSeconds   float64
	flagOutput    string
	flagFormat    string
	flagIndexURL  string
	flagUserAgent string

	// verbosity
	flagVerbose bool
	flagDebug   bool
	flagQuiet   bool

	flagIgnoreConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "pervade",
	Short: "Worm web serial downloader with RTF output",
	Long: `pervade scrapes the table of contents of Worm, Wildbow's web serial,
and downloads chapters into word-processor-readable files (RTF by default,
markdown with -f md) ready for e-book conversion.

Without -d, -a or -c it only prints the numbered table of contents. Arcs
and chapters are selected by their 1-based index in that listing.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().IntSliceVarP(&flagArcs, "arc", "a", nil, "select arc(s) to download by index (e.g. -a 2,5)")
	rootCmd.Flags().IntSliceVarP(&flagChapters, "chapter", "c", nil, "select chapter(s) within the single selected arc by index")
	rootCmd.Flags().BoolVarP(&flagDownload, "download", "d", false, "explicitly set download mode")
	rootCmd.Flags().BoolVarP(&flagJoin, "join", "j", false, "join all chapters of the same arc into one file")
	rootCmd.Flags().Float64VarP(&flagSeconds, "seconds", "s", 1.0, "base delay after each page load in seconds (automatically fuzzed)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output folder for document files")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "", "output dialect: rtf or md")
	rootCmd.Flags().StringVar(&flagIndexURL, "url", "", "override the table-of-contents URL")
	rootCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "display more verbose output for debugging")
	rootCmd.Flags().BoolVarP(&flagDebug, "debug", "x", false, "display only errors and debugging messages")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")

	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := foldSelectionArgs(cmd, args); err != nil {
		return err
	}
	if flagVerbose && flagDebug {
		return fmt.Errorf("-v/--verbose and -x/--debug are mutually exclusive")
	}
	if flagSeconds < 0 {
		return fmt.Errorf("-s/--seconds must be >= 0")
	}
	if len(flagChapters) > 0 && countDistinct(flagArcs) != 1 {
		return fmt.Errorf("-c/--chapter requires exactly one arc selected with -a/--arc")
	}

	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Output:       flagOutput,
		Format:       flagFormat,
		IndexURL:     flagIndexURL,
		UserAgent:    flagUserAgent,
		Join:         flagJoin,
	})
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seconds") {
		cfg.Seconds = flagSeconds
	}

	format, err := transform.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(verbosityLevel())
	if usedPath != "" {
		logSvc.Verbosef("config file: %s\n", usedPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client := fetch.NewClient(fetch.ClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   fetch.PickUserAgent(cfg.UserAgent),
		DebugLogger: logSvc,
	})
	fetcher := fetch.New(client, cfg.Seconds)

	logSvc.Infof("Downloading table of contents...\n")
	page, err := fetcher.Page(ctx, cfg.IndexURL)
	if err != nil {
		return fmt.Errorf("table of contents: %w", err)
	}
	idx, err := index.Parse(page, cfg.IndexURL)
	if err != nil {
		return fmt.Errorf("table of contents: %w", err)
	}
	logSvc.Verbosef("index: %d arcs, %d chapters\n", len(idx.Arcs), idx.Chapters())

	if !downloadMode() {
		printIndex(idx)
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	return runDownload(ctx, cfg, format, idx, fetcher, logSvc)
}

// downloadMode reports whether any download-implying flag was given;
// without one the run only prints the index.
func downloadMode() bool {
	return flagDownload || len(flagArcs) > 0 || len(flagChapters) > 0
}

func verbosityLevel() ui.Level {
	switch {
	case flagQuiet:
		return ui.Quiet
	case flagDebug:
		return ui.ErrorsOnly
	case flagVerbose:
		return ui.Verbose
	default:
		return ui.Normal
	}
}

// foldSelectionArgs folds trailing bare integers into the most specific
// selection flag present, so `-a 2 -c 1 3` reads chapter 3 as part of the
// -c list the way the space-separated CLI always accepted it.
func foldSelectionArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	nums := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("unexpected argument %q", a)
		}
		nums = append(nums, n)
	}

	switch {
	case cmd.Flags().Changed("chapter"):
		flagChapters = append(flagChapters, nums...)
	case cmd.Flags().Changed("arc"):
		flagArcs = append(flagArcs, nums...)
	default:
		return fmt.Errorf("unexpected arguments %v (use -a or -c to select)", args)
	}
	return nil
}

func countDistinct(nums []int) int {
	seen := map[int]bool{}
	for _, n := range nums {
		seen[n] = true
	}
	return len(seen)
}
