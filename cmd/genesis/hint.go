package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/genesis/internal/discovery"
	"github.com/vovakirdan/genesis/internal/storage"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Reveal an undiscovered combination",
	Long: `Spend one of today's hints (3 per UTC day) on the first combination
whose inputs you have and whose result you have not discovered.`,
	Args: cobra.NoArgs,
	RunE: runHint,
}

func runHint(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	sess, err := openSession(cmd.Context(), store)
	if err != nil {
		return err
	}
	defer sess.Close(context.Background())

	hint, err := sess.RequestHint()
	switch {
	case errors.Is(err, discovery.ErrQuotaExhausted):
		fmt.Println("No hints left today. Come back tomorrow.")
		return nil
	case errors.Is(err, discovery.ErrNoCandidates):
		fmt.Println("Nothing left to reveal with what you have discovered.")
		return nil
	case err != nil:
		return err
	}

	q := sess.View().Quota
	fmt.Printf("Hint: %s\n", hint)
	fmt.Printf("%d of %d hints left today.\n", q.Remaining(), q.Limit)
	return nil
}
