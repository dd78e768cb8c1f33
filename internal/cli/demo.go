package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	bierrors "github.com/matzehuels/bisect/pkg/errors"
	"github.com/matzehuels/bisect/pkg/graph"
)

// demoCommand creates the demo command, which writes the bundled example.
func (c *CLI) demoCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write the twelve-node reference graph",
		Long: `Demo writes the classic twelve-node example: two partitions of six nodes
joined by one-way weighted entries. Use it to try the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bierrors.ValidatePath(output); err != nil {
				return err
			}
			if err := graph.WriteGraphFile(graph.Reference(), output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Wrote reference graph")
			printFile(output)
			printNewline()
			printNextStep("Optimize it", "bisect partition "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "reference.json", "output file")
	return cmd
}
