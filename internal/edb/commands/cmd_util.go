package commands

import (
	"os"

	"github.com/DylanHe215/edb-debugger/pkg/logger"
	"github.com/DylanHe215/edb-debugger/pkg/osutil"
)

func ErrorExit(log *logger.Logger, err error, exitCode int) {
	log.Error(err, "fatal error")
	os.Stderr.WriteString(err.Error() + string(osutil.LineSep()))
	log.Flush()
	os.Exit(exitCode)
}
