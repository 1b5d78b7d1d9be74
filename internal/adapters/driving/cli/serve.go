package cli

import (
	"github.com/spf13/cobra"

	"github.com/lawgic-labs/lawgic/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the JSON chat API with signup, login, per-user history,
and corpus file listing and download. The vector store directory is
watched; a rebuilt index is picked up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.Config.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	server, err := web.NewServer(a, addr)
	if err != nil {
		return err
	}

	cmd.Printf("Listening on %s\n", addr)
	return server.Run(cmd.Context())
}
