package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tasksched/manager"
	"tasksched/task"
)

type Op string

const (
	OpInit           Op = "init"
	OpRegisterNode   Op = "register_node"
	OpUnregisterNode Op = "unregister_node"
	OpAddTask        Op = "add_task"
	OpDeleteTask     Op = "delete_task"
	OpSchedule       Op = "schedule"
	OpQuery          Op = "query"
)

// Step is one operation. Only the fields the op uses are read. A schedule
// step without a threshold uses the default one.
type Step struct {
	Op          Op     `yaml:"op"`
	Node        int    `yaml:"node,omitempty"`
	Task        int    `yaml:"task,omitempty"`
	Consumption int    `yaml:"consumption,omitempty"`
	Threshold   *int   `yaml:"threshold,omitempty"`
	Expect      string `yaml:"expect,omitempty"`
}

// ThresholdOr returns the step's threshold, or def when none was given.
func (s Step) ThresholdOr(def int) int {
	if s.Threshold == nil {
		return def
	}
	return *s.Threshold
}

type Scenario struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

type Result struct {
	Step     Step
	Code     manager.Code
	Statuses []task.Status
}

// Parse decodes a YAML scenario and checks every step's op and expect.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, st := range s.Steps {
		switch st.Op {
		case OpInit, OpRegisterNode, OpUnregisterNode, OpAddTask, OpDeleteTask, OpSchedule, OpQuery:
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
		if st.Expect != "" {
			if _, ok := manager.ParseCode(st.Expect); !ok {
				return nil, fmt.Errorf("step %d: unknown expected code %q", i, st.Expect)
			}
		}
	}
	return &s, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Run replays s against m. It stops at the first step whose result differs
// from its Expect and returns the results gathered so far.
func Run(m *manager.Manager, s *Scenario, defaultThreshold int) ([]Result, error) {
	results := make([]Result, 0, len(s.Steps))
	for i, st := range s.Steps {
		r := Result{Step: st}
		switch st.Op {
		case OpInit:
			r.Code = m.Init()
		case OpRegisterNode:
			r.Code = m.RegisterNode(st.Node)
		case OpUnregisterNode:
			r.Code = m.UnregisterNode(st.Node)
		case OpAddTask:
			r.Code = m.AddTask(st.Task, st.Consumption)
		case OpDeleteTask:
			r.Code = m.DeleteTask(st.Task)
		case OpSchedule:
			r.Code = m.ScheduleTask(st.ThresholdOr(defaultThreshold))
		case OpQuery:
			r.Code = m.QueryTaskStatus(&r.Statuses)
		default:
			return results, fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
		results = append(results, r)

		if st.Expect != "" && r.Code.String() != st.Expect {
			return results, fmt.Errorf("step %d (%s): got %s, want %s", i, st.Op, r.Code, st.Expect)
		}
	}
	return results, nil
}

// Demo is the two-node walkthrough: tasks 10 and 11 end up on nodes 2 and 1.
func Demo() *Scenario {
	one := 1
	return &Scenario{
		Name: "demo",
		Steps: []Step{
			{Op: OpInit, Expect: "initialized"},
			{Op: OpRegisterNode, Node: 1, Expect: "node_registered"},
			{Op: OpRegisterNode, Node: 2, Expect: "node_registered"},
			{Op: OpAddTask, Task: 10, Consumption: 5, Expect: "task_added"},
			{Op: OpAddTask, Task: 11, Consumption: 3, Expect: "task_added"},
			{Op: OpSchedule, Threshold: &one, Expect: "scheduled"},
			{Op: OpSchedule, Threshold: &one, Expect: "nothing_to_schedule"},
			{Op: OpQuery, Expect: "status_reported"},
		},
	}
}
