package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/JacobKramerDK/noteprep/internal/adapters/driven/vault/filesystem"
	"github.com/JacobKramerDK/noteprep/internal/core/domain"
	"github.com/JacobKramerDK/noteprep/internal/logger"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan the vault and build the search index",
	Long: `Walks the vault directory, parses every markdown note and builds
the in-memory index. With --watch the command keeps running and
re-indexes whenever notes change on disk.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep watching the vault and re-index on changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	vault, err := requireVault()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := reindexFromVault(ctx, vault); err != nil {
		return err
	}
	printStatus(cmd)

	if !indexWatch {
		return nil
	}

	// Watch mode: one re-index per change burst, until interrupted.
	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := rate.NewLimiter(rate.Every(2*time.Second), 1)
	watcher, err := filesystem.NewWatcher(vault, limiter, func() {
		if err := reindexFromVault(watchCtx, vault); err != nil {
			logger.Warn("Re-index failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	if err := watcher.Run(watchCtx); err != nil && watchCtx.Err() == nil {
		return err
	}
	return nil
}

// reindexFromVault drains a vault scan into one Reindex call.
// Scan failures count toward the index's failed total by feeding the
// offending paths as unparseable placeholder documents.
func reindexFromVault(ctx context.Context, vault *filesystem.Vault) error {
	docsCh, failuresCh := vault.Scan(ctx)

	var docs []domain.Document
	var failed int
	for docsCh != nil || failuresCh != nil {
		select {
		case doc, ok := <-docsCh:
			if !ok {
				docsCh = nil
				continue
			}
			docs = append(docs, doc)
		case failure, ok := <-failuresCh:
			if !ok {
				failuresCh = nil
				continue
			}
			failed++
			logger.Warn("Skipping %s: %v", failure.Path, failure.Err)
			// Keep the failure in the index counts.
			docs = append(docs, domain.Document{Path: failure.Path})
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("Scanned vault: %d notes, %d failures", len(docs)-failed, failed)
	return contextService.Reindex(ctx, docs)
}

func printStatus(cmd *cobra.Command) {
	status := contextService.IndexStatus()
	cmd.Printf("Indexed %d notes", status.DocumentCount)
	if status.FailedCount > 0 {
		cmd.Printf(" (%d failed)", status.FailedCount)
	}
	cmd.Println()
}
