package cmd

import (
	"strings"

	"github.com/Iron-Ham/calgrid/internal/cmd/config"
	appconfig "github.com/Iron-Ham/calgrid/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "calgrid",
	Short: "Scrollable month calendar for the terminal",
	Long: `Calgrid shows a continuously scrollable month calendar with week numbers,
holidays and agenda entries loaded from YAML files.

Run 'calgrid show' for the interactive grid or 'calgrid month' to print
a single month.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/calgrid/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(eventsCmd)
	config.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath("$HOME/.config/calgrid")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CALGRID")
	// e.g., CALGRID_CALENDAR_ROWS for calendar.rows
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
