// Package cli provides the cobra command tree for noteprep.
// Commands are wired against the driving ports; the concrete services
// are constructed once in setup and shared across commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JacobKramerDK/noteprep/internal/adapters/driven/config/file"
	indexmem "github.com/JacobKramerDK/noteprep/internal/adapters/driven/index/memory"
	"github.com/JacobKramerDK/noteprep/internal/adapters/driven/vault/filesystem"
	"github.com/JacobKramerDK/noteprep/internal/core/ports/driving"
	"github.com/JacobKramerDK/noteprep/internal/core/services"
	"github.com/JacobKramerDK/noteprep/internal/logger"
)

const version = "0.1.0"

var (
	flagVault     string
	flagConfigDir string
	flagVerbose   bool

	contextService driving.ContextService
	settingsStore  *file.Store
	noteVault      *filesystem.Vault
)

var rootCmd = &cobra.Command{
	Use:   "noteprep",
	Short: "Meeting context retrieval over your notes",
	Long: `noteprep indexes a directory of markdown notes and, given the
title, attendees and topics of an upcoming meeting, returns the notes
most likely to be relevant, with scores and display snippets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagVault, "vault", "", "path to the notes directory")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.noteprep)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
}

// setup wires the adapters into the retrieval service. Tests replace
// contextService directly, so wiring is skipped once it is set.
func setup() error {
	if contextService != nil {
		return nil
	}

	store, err := file.NewStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	settingsStore = store

	index := indexmem.NewIndex()
	svc := services.NewRetrievalService(index)
	svc.SetWeightsStore(store)
	index.SetProgress(svc.HandleProgress)

	if minScore, maxResults, ok := store.Retrieval(); ok {
		svc.SetMinScore(minScore)
		svc.SetMaxResults(maxResults)
	}

	if flagVault != "" {
		noteVault = filesystem.NewVault(flagVault)
	}

	contextService = svc
	return nil
}

// requireVault returns the configured vault or a usage error.
func requireVault() (*filesystem.Vault, error) {
	if noteVault == nil {
		return nil, errors.New("no vault configured; pass --vault <dir>")
	}
	return noteVault, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
