package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ls <session-id>: list the session's files in upload order.
func lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <session-id>",
		Short: "List a session's files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := appCtx.API.ListFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("no files")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tHASH\tUPLOADED")
			for _, f := range files {
				fmt.Fprintf(w, "%d\t%s\t%d\t%.12s\t%s\n", f.FileID, f.Filename, f.Size, f.Hash, f.UploadedAt)
			}
			return w.Flush()
		},
	}
}
