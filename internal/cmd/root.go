package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitpost/internal/logging"
)

var (
	verbosity int
	since     string
	preview   bool
	category  string
	tokenFile string
)

var rootCmd = &cobra.Command{
	Use:   "fitpost",
	Short: "Post your latest run from Fitbit to the fediverse",
	Long: `fitpost fetches your most recent run activity from the Fitbit API,
computes heart-rate distribution and per-kilometer splits from its
activity log, and posts a formatted summary to Mastodon or Misskey.

Configuration is read from the environment (or a .env file):
FITBIT_API_URL, FITBIT_CLIENT_ID, FITBIT_CLIENT_SECRET, plus
MASTODON_API_URL/MASTODON_ACCESS_TOKEN or
MISSKEY_API_URL/MISSKEY_ACCESS_TOKEN depending on POST_TARGET.

On first run you will be asked to authorize the app and paste the
authorization code.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.Level(verbosity))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &Options{
			Since:     since,
			Preview:   preview,
			Category:  category,
			TokenFile: tokenFile,
		}
		return Run(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v for debug, -vv for trace with HTTP headers)")

	rootCmd.Flags().StringVar(&since, "since", "", "only consider activities after this date (YYYY-MM-DD)")
	rootCmd.Flags().BoolVar(&preview, "preview", false, "print the summary instead of posting it")
	rootCmd.Flags().StringVar(&category, "activity", "Run", "activity category to report on")
	rootCmd.Flags().StringVar(&tokenFile, "token-file", "", "path of the stored OAuth token (overrides TOKEN_FILE)")

	rootCmd.MarkFlagRequired("since")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
