package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// close <session-id>: close the session and delete its files. The local
// record is removed too when a passphrase is supplied.
func closeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <session-id>",
		Short: "Close a session and delete its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := appCtx.API.Close(cmd.Context(), id); err != nil {
				return err
			}
			if passphrase != "" {
				if err := appCtx.Sessions.DeleteSession(passphrase, id); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: local record not removed: %v\n", err)
				}
			}
			fmt.Println("closed")
			return nil
		},
	}
}
