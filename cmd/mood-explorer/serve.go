package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/justestif/spotify-mood-explorer/internal/explorer"
	"github.com/justestif/spotify-mood-explorer/internal/render"
	"github.com/justestif/spotify-mood-explorer/internal/web"
	webfs "github.com/justestif/spotify-mood-explorer/web"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context(), a.cfg.Storage, a.log)
			if err != nil {
				return err
			}
			defer store.Close()

			// Create sub-filesystems for templates and static files
			templates, err := fs.Sub(webfs.TemplatesFS, "templates")
			if err != nil {
				return fmt.Errorf("creating templates filesystem: %w", err)
			}

			static, err := fs.Sub(webfs.StaticFS, "static")
			if err != nil {
				return fmt.Errorf("creating static filesystem: %w", err)
			}

			// Create and start server
			server, err := web.NewServer(web.ServerConfig{
				Addr:        a.cfg.Server.Addr,
				Explorer:    explorer.New(store, render.PNG{}, a.log),
				Logger:      a.log,
				TemplatesFS: templates,
				StaticFS:    static,
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return server.Run()
		},
	}
}
