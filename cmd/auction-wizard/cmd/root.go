package cmd

import (
	"fmt"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	cmdTimeout = time.Minute

	// Cmd is the root command of the auction wizard CLI.
	Cmd = &cobra.Command{
		Use:   "auction-wizard",
		Short: "Configure and publish NFT auction listings from a scripted plan",
		Long: `Runs the listing wizard against a catalog of drafts the seller owns. A plan file
scripts the wizard inputs step by step; the result can be reviewed, compiled into the
auction builder request, or published through a dry-run builder.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			level, err := log.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			log.SetLevel(level)
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	Cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.auctionwizard.yaml)")
	Cmd.PersistentFlags().String("catalog", "catalog.yaml", "drafts, quote mint and whitelisted creators (yaml or json)")
	Cmd.PersistentFlags().String("plan", "plan.yaml", "scripted wizard actions (yaml or json)")
	Cmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		checkErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigName(".auctionwizard")
	}

	viper.SetEnvPrefix("AUCTIONWIZARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		Message("Using config file: %s", viper.ConfigFileUsed())
	}
}
