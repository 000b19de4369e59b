package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ferry",
		Short: "Ferry is a single-secret file transfer service and client",
		Long: `Ferry moves files to and from a ferry server over HTTP, authenticated
by a single shared API key. Run without arguments for an interactive shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), a)
		},
	}

	cmd.AddCommand(
		newSrvCmd(),
		newUploadCmd(a),
		newListCmd(a),
		newDownloadCmd(a),
		newDeleteCmd(a),
		newConfigCmd(a),
	)

	return cmd
}
