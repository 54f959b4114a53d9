package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the quotectl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Operator tools for the Colchester Plumber quote API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(sendTestCmd(), previewCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
