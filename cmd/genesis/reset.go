package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/genesis/internal/storage"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget a profile's canvas and discoveries",
	Long: `Delete the saved canvas, favorites, hint usage and discovery history of
a profile. This cannot be undone.

Examples:
  genesis reset --yes
  genesis reset --profile alice --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Confirm the reset")
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagYes {
		return fmt.Errorf("refusing to reset profile %q without --yes", flagProfile)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := store.Delete(ctx, stateKey(cfg)); err != nil {
		return err
	}
	if err := store.ClearDiscoveries(ctx, flagProfile); err != nil {
		return err
	}

	fmt.Printf("Profile %q reset.\n", flagProfile)
	return nil
}
