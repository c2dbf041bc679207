package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DylanHe215/edb-debugger/internal/debugger"
	"github.com/DylanHe215/edb-debugger/pkg/logger"
	"github.com/DylanHe215/edb-debugger/pkg/process"
)

func newAttachCmd(log *logger.Logger) (*cobra.Command, error) {
	attachCmd := &cobra.Command{
		Use:   "attach <pid>",
		Short: "Attaches to a running process and traces its debug events",
		Args:  cobra.ExactArgs(1),
		RunE:  attachProcess(log),
	}

	return attachCmd, nil
}

func attachProcess(log *logger.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := log.WithName("attach")

		pid, pidErr := process.StringToPidT(args[0])
		if pidErr != nil {
			log.Error(pidErr, "invalid PID", "PID", args[0])
			return pidErr
		}

		dbg := debugger.New(debugger.Config{Logger: log.Logger})
		defer dbg.Close()

		if attachErr := dbg.Attach(pid); attachErr != nil {
			log.Error(attachErr, "could not attach to process", "PID", pid)
			return attachErr
		}

		log.Info("attached to process",
			"PID", pid,
			"SessionID", dbg.SessionID(),
			"CPU", dbg.CPU(),
		)

		// Interrupt detaches rather than kills: the process was running
		// before we attached and should keep running after.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stopWatch := watchDetach(ctx, dbg)
		defer stopWatch()

		_, traceErr := traceEvents(ctx, dbg, log.Logger)
		if traceErr != nil && ctx.Err() == nil {
			log.Error(traceErr, "debug session ended abnormally", "PID", pid)
			return traceErr
		}

		return nil
	}
}
