package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a file from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.Context(), a, args[0])
		},
	}
}

func runDelete(ctx context.Context, a *app, id string) error {
	if err := a.ensureConfig(); err != nil {
		return err
	}
	resp, err := a.client().Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}
