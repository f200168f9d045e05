package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justestif/spotify-mood-explorer/internal/db"
	"github.com/justestif/spotify-mood-explorer/internal/importer"
	"github.com/justestif/spotify-mood-explorer/internal/spotify"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the songs table from an external source",
	}
	cmd.AddCommand(
		newImportCSVCmd(a),
		newImportSpotifyCmd(a),
	)
	return cmd
}

func newImportCSVCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "csv <file>",
		Short: "Import a Spotify tracks dataset CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening dataset: %w", err)
			}
			defer f.Close()

			records, stats, err := importer.FromCSV(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			return a.replaceSongs(ctx, records, stats)
		},
	}
}

func newImportSpotifyCmd(a *app) *cobra.Command {
	var genre string

	cmd := &cobra.Command{
		Use:   "spotify <playlist-id>",
		Short: "Import a Spotify playlist labeled with one genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireSpotify(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, err := spotify.NewWithCredentials(ctx, a.cfg.Spotify.ClientID, a.cfg.Spotify.ClientSecret, a.log)
			if err != nil {
				return fmt.Errorf("authenticating with Spotify: %w", err)
			}

			records, stats, err := importer.NewSpotifySource(client, a.log).Import(ctx, args[0], genre)
			if err != nil {
				return fmt.Errorf("importing playlist %s: %w", args[0], err)
			}

			return a.replaceSongs(ctx, records, stats)
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "genre label for every imported track (required)")
	_ = cmd.MarkFlagRequired("genre")
	return cmd
}

func (a *app) replaceSongs(ctx context.Context, records []db.Record, stats importer.ImportStats) error {
	store, err := openStore(ctx, a.cfg.Storage, a.log)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("writing songs: %w", err)
	}

	a.log.Info("import complete",
		zap.Int("rows", stats.Rows),
		zap.Int("incomplete", stats.Incomplete),
		zap.Int("invalid", stats.Invalid),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("kept", stats.Kept),
	)
	return nil
}
