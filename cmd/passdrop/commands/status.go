package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// status <session-id>: print a session snapshot.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <session-id>",
		Short: "Show a session snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := appCtx.API.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Session: %s\nStatus:  %s\nCreated: %s\nFiles:   %d\n", st.SessionID, st.Status, st.CreatedAt, st.FileCount)
			return nil
		},
	}
}
