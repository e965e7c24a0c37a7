package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passdrop/internal/crypto"
)

// fetch <session-id> <file-id>: download a file, optionally opening a
// sealed payload.
func fetchCmd() *cobra.Command {
	var (
		out     string
		decrypt bool
	)
	cmd := &cobra.Command{
		Use:   "fetch <session-id> <file-id>",
		Short: "Download a file from a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var fileID int
			if _, err := fmt.Sscanf(args[1], "%d", &fileID); err != nil {
				return fmt.Errorf("file-id must be numeric: %q", args[1])
			}

			content, err := appCtx.API.Download(cmd.Context(), id, fileID)
			if err != nil {
				return err
			}

			if decrypt {
				if passphrase == "" {
					return fmt.Errorf("passphrase required (-p) with --decrypt")
				}
				cs, ok, err := appCtx.Sessions.LoadSession(passphrase, id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("session %s not joined on this machine", id)
				}
				if len(content) < crypto.NonceSize {
					return fmt.Errorf("payload too short to carry a nonce")
				}
				content, err = crypto.Open(cs.Secret, content[crypto.NonceSize:], content[:crypto.NonceSize])
				if err != nil {
					return err
				}
			}

			if out == "" || out == "-" {
				_, err := os.Stdout.Write(content)
				return err
			}
			if err := os.WriteFile(out, content, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(content), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default stdout)")
	cmd.Flags().BoolVar(&decrypt, "decrypt", false, "open a payload sealed with send --encrypt")
	return cmd
}
