package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/genesis/internal/core"
	"github.com/vovakirdan/genesis/internal/persist"
	"github.com/vovakirdan/genesis/internal/platform/tui"
	"github.com/vovakirdan/genesis/internal/session"
	"github.com/vovakirdan/genesis/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the canvas",
	Long: `Open the element canvas in the terminal.

Controls:
  Double-click   - Summon Fire, Water, Wind and Earth around the pointer
  Drag           - Move an element; drop it on another to combine
  Drop on rail   - Delete the element (the rail shows while dragging)
  Double-click   - On an element, duplicate it
  C              - Compendium (favorite and place discovered elements)
  1-9, 0         - Place a favorite from its quick slot
  H              - Hint (3 per day)
  Esc            - Cancel a drag
  Q/Ctrl+C       - Quit

The canvas is saved automatically and restored on the next start.

Examples:
  genesis play
  genesis play --profile alice
  genesis play --config ./my-genesis.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.DefaultConfig()
	rt.ScreenW = width
	rt.ScreenH = height
	rt.TickRate = flagFPS

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithKey(stateKey(cfg)),
	}

	var store persist.Store
	db, err := storage.Open(flagDBPath)
	if err != nil {
		// The canvas still works, it just is not kept.
		logger.Warn("could not open state database", "error", err)
		store = persist.NewMemoryStore()
	} else {
		defer db.Close()
		store = db
		opts = append(opts, session.WithJournal(db.Journal(flagProfile)))
	}

	w, h := tui.CanvasConfig(rt).CanvasSize()
	sess := session.New(cfg, store, w, h, opts...)
	if err := sess.Start(cmd.Context()); err != nil {
		return err
	}

	if err := tui.Run(sess, rt); err != nil {
		return fmt.Errorf("run canvas: %w", err)
	}
	return nil
}

// openSession loads the selected profile without a terminal.
func openSession(ctx context.Context, db *storage.Store) (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	w, h := tui.CanvasConfig(core.DefaultConfig()).CanvasSize()
	sess := session.New(cfg, db, w, h,
		session.WithLogger(newLogger()),
		session.WithKey(stateKey(cfg)),
		session.WithJournal(db.Journal(flagProfile)),
	)
	if err := sess.Start(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}
