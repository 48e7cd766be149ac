package root

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const Version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "rg",
	Short:         "Gamified trading discipline tracker",
	Long:          "Ruleguard turns rule-following into a game: compliant trades grow a simulated account, build streaks and climb a monthly leaderboard.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newTradeCmd(),
		newViolateCmd(),
		newComplyCmd(),
		newRulesCmd(),
		newGoalCmd(),
		newJournalCmd(),
		newStatusCmd(),
		newReportCmd(),
		newLeaderboardCmd(),
		newHistoryCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ruleguard.yaml)")
	rootCmd.PersistentFlags().String("db", "", "store path (default is $HOME/.ruleguard.db)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "warn", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel"))
}

// initConfig reads in config file and RULEGUARD_* env variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".ruleguard")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ruleguard")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "read config:", err)
		}
	}

	if lvl, err := log.ParseLevel(viper.GetString("loglevel")); err == nil {
		log.SetLevel(lvl)
	}
}
