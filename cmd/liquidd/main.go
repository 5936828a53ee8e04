package main

import (
	"fmt"
	"os"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/cmd/liquidd/app"
	"github.com/iov-one/liquid/commands/server"
	"github.com/iov-one/liquid/operator"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "liquidd",
	Short:         "Liquid infrastructure ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var initCmd = &cobra.Command{
	Use:   "init [ticker] [admin address]",
	Short: "Add the application state to the genesis file created by tendermint init",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := server.LoadConfig(configPath)
		if err != nil {
			return err
		}
		out, err := server.InitGenesis(app.GenInitOptions, cfg.Home, args)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Println(out)
		}
		return nil
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the ABCI application",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		return server.Start(generateApp, cfg, logger)
	},
}

var operateCmd = &cobra.Command{
	Use:   "operate",
	Short: "Periodically withdraw and distribute the revenue of configured tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		return server.Operate(operator.NewHTTPClient(cfg.Operator.Node), cfg, logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(liquid.Version())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "liquidd.yaml", "configuration file")
	rootCmd.AddCommand(initCmd, startCmd, operateCmd, versionCmd)
}

func setup() (*server.Config, log.Logger, error) {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := server.NewLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.With("module", "liquidd"), nil
}

func generateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	a, err := app.GenerateApp(home, logger, debug)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
