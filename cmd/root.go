package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "tap",
		Short:         "Alignment console: command the crew through MOTHER",
		Long:          "tap connects to the MOTHER mainframe, plays the boot sequence and mission briefing, then streams the ship log and crew manifest while you send private @Agent commands.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts, false)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/tap/config.toml)")
	flags.StringVar(&opts.baseURL, "base-url", "", "mainframe base URL (overrides config and TAP_BASE_URL)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "write debug records to the diagnostics log")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConsoleCmd(opts),
		newCrewCmd(opts),
		newSayCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}
