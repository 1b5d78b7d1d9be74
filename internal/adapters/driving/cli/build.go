package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Ingest the PDF corpus and build the vector index",
	Long: `Reads every PDF in the data directory, splits the text into
overlapping chunks, embeds each chunk and writes a fresh vector index
and chunk database. Any previous index is replaced wholesale.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	builder, err := newBuilder()
	if err != nil {
		return err
	}
	defer builder.Close()

	report, err := builder.Build.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Indexed %d documents (%d chunks)\n", report.Documents, report.Chunks)
	cmd.Printf("Index written to %s\n", report.IndexPath)
	return nil
}
