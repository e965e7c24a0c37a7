package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"passdrop/internal/crypto"
)

// send <session-id> <file>: upload a file, optionally sealed under the
// session secret.
func sendCmd() *cobra.Command {
	var encrypt bool
	cmd := &cobra.Command{
		Use:   "send <session-id> <file>",
		Short: "Upload a file into a session",
		Long: `Upload a file into a connected session.

With --encrypt the payload is sealed under the session's shared secret
before upload; the 12-byte nonce is prepended to the ciphertext and the
original filename is kept. The server stores only ciphertext; fetch the
file with --decrypt on the other side.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, path := args[0], args[1]

			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if encrypt {
				if passphrase == "" {
					return fmt.Errorf("passphrase required (-p) with --encrypt")
				}
				cs, ok, err := appCtx.Sessions.LoadSession(passphrase, id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("session %s not joined on this machine", id)
				}
				ct, nonce, err := crypto.Seal(cs.Secret, content)
				if err != nil {
					return err
				}
				content = append(nonce, ct...)
			}

			res, err := appCtx.API.Upload(cmd.Context(), id, filepath.Base(path), content)
			if err != nil {
				return err
			}
			fmt.Printf("Uploaded %s as file %d (%d bytes).\nHash: %s\n", res.Filename, res.FileID, res.Size, res.Hash)
			return nil
		},
	}
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "seal the payload under the session secret")
	return cmd
}
