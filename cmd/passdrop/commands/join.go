package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"passdrop/internal/crypto"
	"passdrop/internal/domain"
)

// join <session-id> <password>: run the responder exchange and remember the
// derived secret locally.
func joinCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "join <session-id> <password>",
		Short: "Join a waiting session with its verification code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, password := args[0], args[1]

			secret, err := appCtx.API.Join(cmd.Context(), id, password, code)
			if err != nil {
				return err
			}

			cs := domain.ClientSession{
				SessionID: id,
				ServerURL: appCtx.API.Base,
				Secret:    secret,
				JoinedUTC: time.Now().Unix(),
			}
			if err := appCtx.Sessions.SaveSession(passphrase, cs); err != nil {
				return err
			}

			// A short digest both sides can compare aloud.
			fmt.Printf("Connected.\nKey check: %s\n", crypto.HashHex(secret)[:12])
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "6-digit verification code from the creator")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
