package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DylanHe215/edb-debugger/internal/debugger"
	"github.com/DylanHe215/edb-debugger/pkg/logger"
)

var runCwd string

func newRunCmd(log *logger.Logger) (*cobra.Command, error) {
	runCmd := &cobra.Command{
		Use:   "run <program> [args...]",
		Short: "Launches a program under debug control and traces its debug events",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runProgram(log),
	}

	runCmd.Flags().StringVarP(&runCwd, "cwd", "C", "", "Working directory for the debugged program (defaults to the program's directory)")
	if err := viper.BindPFlag("cwd", runCmd.Flags().Lookup("cwd")); err != nil {
		return nil, err
	}

	return runCmd, nil
}

func runProgram(log *logger.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := log.WithName("run")

		dbg := debugger.New(debugger.Config{Logger: log.Logger})
		defer dbg.Close()

		path := args[0]
		cwd := viper.GetString("cwd")

		if spawnErr := dbg.Spawn(path, cwd, args[1:]); spawnErr != nil {
			log.Error(spawnErr, "could not launch program under debug control", "Path", path)
			return spawnErr
		}

		log.Info("launched program under debug control",
			"Path", path,
			"PID", dbg.Process().Pid(),
			"SessionID", dbg.SessionID(),
			"CPU", dbg.CPU(),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stopWatch := watchKill(ctx, dbg)
		defer stopWatch()

		exitCode, traceErr := traceEvents(ctx, dbg, log.Logger)
		if traceErr != nil {
			log.Error(traceErr, "debug session ended abnormally")
			return traceErr
		}

		if exitCode != 0 {
			return fmt.Errorf("debuggee exited with code %d", exitCode)
		}

		return nil
	}
}
