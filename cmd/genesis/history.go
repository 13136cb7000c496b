package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/genesis/internal/catalog"
	"github.com/vovakirdan/genesis/internal/persist"
	"github.com/vovakirdan/genesis/internal/storage"
)

var flagAllProfiles bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show discovery history",
	Long: `Display the elements a profile has discovered by combining, oldest first.

Examples:
  genesis history
  genesis history --profile alice
  genesis history --profile ssh:alice
  genesis history --all`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagAllProfiles, "all", false, "List every profile with a saved canvas")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if flagAllProfiles {
		return listProfiles(cmd, store)
	}

	entries, err := store.Discoveries(cmd.Context(), flagProfile)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	fmt.Printf("Discoveries - %s\n", flagProfile)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("Nothing discovered yet.")
		fmt.Println()
		fmt.Println("Run 'genesis play' and drag one element onto another.")
		return nil
	}

	fmt.Printf("  %-3s  %-8s  %s\n", "#", "Element", "Date")
	fmt.Printf("  %-3s  %-8s  %s\n", "-", "-------", "----")
	for i, e := range entries {
		fmt.Printf("  %-3d  %-8s  %s\n", i+1, catalog.Name(e.DefinitionID), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Found %d of %d elements by combining.\n", len(entries), len(catalog.Recipes()))
	return nil
}

// listProfiles prints every profile with a saved canvas and its discovery count.
func listProfiles(cmd *cobra.Command, store *storage.Store) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	profiles, err := store.Profiles(ctx, cfg.Persistence.Key)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	switch _, err := store.Load(ctx, cfg.Persistence.Key); {
	case err == nil:
		profiles = append([]string{defaultProfile}, profiles...)
	case !errors.Is(err, persist.ErrNotFound):
		return fmt.Errorf("read local profile: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No saved profiles.")
		return nil
	}

	fmt.Printf("  %-20s  %s\n", "Profile", "Discovered")
	fmt.Printf("  %-20s  %s\n", "-------", "----------")
	for _, p := range profiles {
		entries, err := store.Discoveries(ctx, p)
		if err != nil {
			return fmt.Errorf("read history for %s: %w", p, err)
		}
		fmt.Printf("  %-20s  %d\n", p, len(entries))
	}
	return nil
}
