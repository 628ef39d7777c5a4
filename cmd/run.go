package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Zoetrophy/pervade/internal/config"
	"github.com/Zoetrophy/pervade/internal/fetch"
	"github.com/Zoetrophy/pervade/internal/index"
	"github.com/Zoetrophy/pervade/internal/transform"
	"github.com/Zoetrophy/pervade/internal/ui"
	"github.com/Zoetrophy/pervade/internal/writer"
)

func printIndex(idx *index.SeriesIndex) {
	fmt.Println("\nTABLE OF CONTENTS:")
	fmt.Println("------------------")
	for _, arc := range idx.Arcs {
		fmt.Printf("%d. %s\n", arc.Number, arc.Title)
		for _, ch := range arc.Chapters {
			fmt.Printf("    %d. %s ... %s\n", ch.Number, ch.Title, ch.URL)
		}
	}
}

// runDownload drives the fetch → transform → write loop over the selected
// arcs. Failures stay local: a failed chapter is skipped, a failed arc
// write skips that arc, and the run carries on either way.
func runDownload(
	ctx context.Context,
	cfg *config.Config,
	format transform.Format,
	idx *index.SeriesIndex,
	fetcher *fetch.Fetcher,
	logSvc *ui.Logger,
) error {
	selected, unknown := index.FilterArcs(idx.Arcs, flagArcs)
	if len(unknown) > 0 {
		logSvc.Errorf("selected arcs %v do not exist; deselected\n", unknown)
	}
	if len(selected) == 0 {
		return fmt.Errorf("no valid arcs selected")
	}

	w := writer.New(cfg.Output, format, cfg.Join)
	progress := ui.NewProgress(logSvc.Level() == ui.Normal)
	defer progress.Close()

	logSvc.Infof("Downloading chapter(s)...\n")
	start := time.Now()

	var stats struct {
		chapters int
		skipped  int
		files    int
		bytes    int64
	}

	for _, arc := range selected {
		chaps, unknownChapters := index.FilterChapters(arc, flagChapters)
		if len(unknownChapters) > 0 {
			logSvc.Errorf("arc %d: selected chapters %v do not exist; deselected\n", arc.Number, unknownChapters)
		}
		if len(chaps) == 0 {
			logSvc.Errorf("arc %d: no valid chapters selected; skipping arc\n", arc.Number)
			continue
		}

		bar := progress.ArcBar(fmt.Sprintf("%02d %s", arc.Number, arc.Title), len(chaps))
		docs := make([]writer.Document, 0, len(chaps))

		for _, ch := range chaps {
			if ctx.Err() != nil {
				bar.Done()
				return ctx.Err()
			}

			logSvc.Verbosef("%02d-%02d. %s <%s>\n", arc.Number, ch.Number, ch.Title, ch.URL)

			page, err := fetcher.Page(ctx, ch.URL)
			if err != nil {
				logSvc.Errorf("chapter %02d-%02d (%s): %v; skipped\n", arc.Number, ch.Number, ch.Title, err)
				stats.skipped++
				bar.Increment()
				continue
			}

			body, err := transform.Chapter(page, ch.URL, format)
			if err != nil {
				logSvc.Errorf("chapter %02d-%02d (%s): %v; skipped\n", arc.Number, ch.Number, ch.Title, err)
				stats.skipped++
				bar.Increment()
				continue
			}

			docs = append(docs, writer.Document{
				ArcNumber:     arc.Number,
				ArcTitle:      arc.Title,
				ChapterNumber: ch.Number,
				ChapterTitle:  ch.Title,
				SourceURL:     ch.URL,
				Body:          body,
			})
			stats.chapters++
			bar.Increment()
		}
		bar.Done()

		if len(docs) == 0 {
			logSvc.Errorf("arc %d: no chapters downloaded; no file written\n", arc.Number)
			continue
		}

		paths, written, err := w.WriteArc(arc.Title, docs)
		if err != nil {
			logSvc.Errorf("arc %d: %v; remaining writes for this arc skipped\n", arc.Number, err)
			continue
		}
		stats.files += len(paths)
		stats.bytes += written
		for _, p := range paths {
			logSvc.Verbosef("wrote %s\n", p)
		}
	}

	progress.Close()

	logSvc.Infof("\nDownload summary:\n")
	logSvc.Infof("Chapters: %d (%d skipped)\n", stats.chapters, stats.skipped)
	logSvc.Infof("Files:    %d\n", stats.files)
	logSvc.Infof("Data:     %s\n", human(stats.bytes))
	logSvc.Infof("Time:     %s\n", time.Since(start).Round(time.Second))

	return nil
}

func human(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
