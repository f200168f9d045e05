package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/justestif/spotify-mood-explorer/internal/explorer"
	"github.com/justestif/spotify-mood-explorer/internal/export"
	"github.com/justestif/spotify-mood-explorer/internal/render"
)

var errNoSink = errors.New("choose exactly one of --dir or --minio")

func newExportCmd(a *app) *cobra.Command {
	var (
		dir     string
		toMinio bool
		bucket  string
		genres  []string
		dpi     int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render charts to a directory or a MinIO bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (dir != "") == toMinio {
				return errNoSink
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var sink export.Sink
			if dir != "" {
				s, err := export.NewDirSink(dir)
				if err != nil {
					return err
				}
				sink = s
			} else {
				if err := a.cfg.RequireMinio(); err != nil {
					return err
				}
				m := a.cfg.Minio
				if bucket != "" {
					m.Bucket = bucket
				}
				s, err := export.NewMinioSink(ctx, export.MinioOptions{
					Endpoint:  m.Endpoint,
					AccessKey: m.AccessKey,
					SecretKey: m.SecretKey,
					Bucket:    m.Bucket,
					Region:    m.Region,
					UseSSL:    m.UseSSL,
				}, a.log)
				if err != nil {
					return fmt.Errorf("connecting to minio: %w", err)
				}
				sink = s
			}

			store, err := openStore(ctx, a.cfg.Storage, a.log)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := explorer.New(store, render.PNG{DPI: dpi}, a.log)
			if _, err := export.Export(ctx, svc, sink, genres, a.log); err != nil {
				return fmt.Errorf("exporting charts: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dir, "dir", "", "write charts below this directory")
	flags.BoolVar(&toMinio, "minio", false, "upload charts to the configured MinIO bucket")
	flags.StringVar(&bucket, "bucket", "", "bucket name (overrides MINIO_BUCKET)")
	flags.StringSliceVar(&genres, "genre", nil, "genres to export (default: all)")
	flags.IntVar(&dpi, "dpi", 100, "image resolution")

	return cmd
}
