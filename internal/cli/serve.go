package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout engines over HTTP",
		Long: `Serve starts the HTTP host. Documents are kept in the configured store
and edited through JSON endpoints:

  POST   /documents                 create (body: document, empty for the sample)
  GET    /documents                 list stored documents
  GET    /documents/{id}            current snapshot
  POST   /documents/{id}/select     {"row":0,"column":0,"tile":1}
  POST   /documents/{id}/hover      {"row":1,"column":0,"tile":0,"kind":"tile","direction":"bottom"}
  POST   /documents/{id}/drop       {"row":0,"column":0,"tile":1}
  POST   /documents/{id}/delete     {"row":0,"column":1,"tile":0}
  PUT    /documents/{id}/content    {"row":0,"column":0,"tile":0,"markup":"<p>..</p>"}
  POST   /documents/{id}/events     batch of events
  POST   /documents/{id}/save       write the session back to the store
  GET    /documents/{id}/export     document JSON
  GET    /documents/{id}/outline.svg
  DELETE /documents/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(st,
				server.WithLogger(c.Logger),
				server.WithDecoder(c.Config.Decoder()))
			c.Logger.Info("serving documents", "store", c.Config.Store.Backend)
			return srv.ListenAndServe(ctx, addr, c.Config.Server.ReadTimeout, c.Config.Server.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
