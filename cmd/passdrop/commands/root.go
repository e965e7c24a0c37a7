package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"passdrop/internal/app"
)

var (
	home       string
	serverURL  string
	passphrase string
	appCtx     *app.CLI
)

func Execute() error {
	cfg := app.LoadConfig()

	root := &cobra.Command{
		Use:   "passdrop",
		Short: "Password-paired file drop CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".passdrop")
			}
			cfg.Home = home
			if serverURL != "" {
				cfg.ServerURL = serverURL
			}

			var err error
			appCtx, err = app.NewCLI(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "local state dir (default ~/.passdrop)")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "daemon base URL (default "+cfg.ServerURL+")")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local session store")

	root.AddCommand(createCmd(), joinCmd(), sendCmd(), lsCmd(), fetchCmd(), statusCmd(), closeCmd())
	return root.Execute()
}
