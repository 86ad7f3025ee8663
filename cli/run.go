package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"tasksched/scenario"
	"tasksched/task"
)

func newRunCmd() *cobra.Command {
	var showEvents bool

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Replay a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), s, showEvents)
		},
	}
	cmd.Flags().BoolVar(&showEvents, "events", false, "Print the event log after the run")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var showEvents bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the built-in two-node scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return replay(cmd.OutOrStdout(), scenario.Demo(), showEvents)
		},
	}
	cmd.Flags().BoolVar(&showEvents, "events", false, "Print the event log after the run")

	return cmd
}

func replay(w io.Writer, s *scenario.Scenario, showEvents bool) error {
	m := newManager()
	results, runErr := scenario.Run(m, s, cfg.Threshold)

	fmt.Fprintf(w, "%-4s  %-16s  %-8s  %s\n", "STEP", "OP", "ARG", "RESULT")
	fmt.Fprintf(w, "%-4s  %-16s  %-8s  %s\n", "----", "--", "---", "------")
	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-16s  %-8s  %s\n", i, r.Step.Op, stepArg(r.Step), r.Code)
	}

	var statuses []task.Status
	m.QueryTaskStatus(&statuses)
	fmt.Fprintln(w)
	if len(statuses) == 0 {
		fmt.Fprintln(w, "No tasks.")
	} else {
		fmt.Fprintf(w, "%-8s  %-10s  %s\n", "TASK", "STATE", "NODE")
		fmt.Fprintf(w, "%-8s  %-10s  %s\n", "----", "-----", "----")
		for _, st := range statuses {
			fmt.Fprintf(w, "%-8d  %-10s  %s\n", st.TaskID, st.State(), nodeLabel(st.NodeID))
		}
	}

	if showEvents {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d events\n", m.EventCount())
		fmt.Fprintf(w, "%-4s  %-18s  %-6s  %-6s  %s\n", "SEQ", "EVENT", "TASK", "NODE", "ID")
		for _, e := range m.Events() {
			fmt.Fprintf(w, "%-4d  %-18s  %-6d  %-6s  %s\n", e.Seq, e.Kind, e.TaskID, nodeLabel(e.NodeID), e.ID)
		}
	}

	if runErr != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, runErr)
	}
	return nil
}

func stepArg(st scenario.Step) string {
	switch st.Op {
	case scenario.OpRegisterNode, scenario.OpUnregisterNode:
		return strconv.Itoa(st.Node)
	case scenario.OpAddTask:
		return fmt.Sprintf("%d:%d", st.Task, st.Consumption)
	case scenario.OpDeleteTask:
		return strconv.Itoa(st.Task)
	case scenario.OpSchedule:
		return strconv.Itoa(st.ThresholdOr(cfg.Threshold))
	default:
		return "-"
	}
}

func nodeLabel(id int) string {
	if id == task.Unassigned {
		return "-"
	}
	return strconv.Itoa(id)
}
