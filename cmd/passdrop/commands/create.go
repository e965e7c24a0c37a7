package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// create <password>: open a session and print what the peer needs to join.
func createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <password>",
		Short: "Open a new session on the daemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := appCtx.API.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Session created.\nSession ID:        %s\nVerification code: %s\n", res.SessionID, res.VerificationCode)
			fmt.Println("Share the id, the code and the password with your peer out of band.")
			return nil
		},
	}
}
