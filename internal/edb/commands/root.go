package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DylanHe215/edb-debugger/pkg/logger"
)

var cfgFile string

func NewRootCmd(log *logger.Logger) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		SilenceErrors: true,
		Use:           "edb",
		Short:         "Controls a debugged process and traces its debug events",
		Long: `edb establishes debug control over a target process, either by launching
it suspended under the debugger or by attaching to a running process, and
streams the debug events the operating system reports for it.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $HOME/.edb/config.yaml)")
	log.AddLevelFlag(rootCmd.PersistentFlags())

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}

	runCmd, err := newRunCmd(log)
	if err != nil {
		return nil, err
	}

	attachCmd, err := newAttachCmd(log)
	if err != nil {
		return nil, err
	}

	psCmd, err := newPsCmd(log)
	if err != nil {
		return nil, err
	}

	rootCmd.AddCommand(runCmd, attachCmd, psCmd)

	return rootCmd, nil
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".edb"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("EDB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	return nil
}
