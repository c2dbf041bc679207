package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/DylanHe215/edb-debugger/pkg/logger"
	"github.com/DylanHe215/edb-debugger/pkg/maps"
	"github.com/DylanHe215/edb-debugger/pkg/osutil"
	"github.com/DylanHe215/edb-debugger/pkg/process"
)

var psJSONOutput bool

func newPsCmd(log *logger.Logger) (*cobra.Command, error) {
	psCmd := &cobra.Command{
		Use:   "ps",
		Short: "Lists processes that can be attached to",
		Args:  cobra.NoArgs,
		RunE:  listProcesses(log),
	}

	psCmd.Flags().BoolVar(&psJSONOutput, "json", false, "Output the process list as JSON")

	return psCmd, nil
}

type processListEntry struct {
	Pid     process.Pid_t `json:"pid"`
	Ppid    process.Pid_t `json:"ppid"`
	Name    string        `json:"name"`
	Started time.Time     `json:"started,omitempty"`
}

func listProcesses(log *logger.Logger) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := log.WithName("ps")

		procs := process.ListProcesses(log.Logger)

		entries := maps.MapToSlice(procs, func(pid process.Pid_t, handle process.ProcessHandle) processListEntry {
			return processListEntry{
				Pid:     pid,
				Ppid:    process.ParentPid(pid),
				Name:    handle.Name,
				Started: process.StartTimeForProcess(pid),
			}
		})
		sort.Slice(entries, func(i, j int) bool { return entries[i].Pid < entries[j].Pid })

		if psJSONOutput {
			output, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal process list: %w", err)
			}
			fmt.Println(string(output))
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"PID", "PPID", "Name", "Uptime"})

		now := time.Now()
		for _, entry := range entries {
			uptime := "-"
			if !entry.Started.IsZero() {
				uptime = osutil.FormatDuration(now.Sub(entry.Started))
			}
			table.Append([]string{
				fmt.Sprintf("%d", entry.Pid),
				fmt.Sprintf("%d", entry.Ppid),
				entry.Name,
				uptime,
			})
		}

		table.Render()
		fmt.Printf("%sTotal processes: %d%s", osutil.LineSep(), len(entries), osutil.LineSep())

		return nil
	}
}
