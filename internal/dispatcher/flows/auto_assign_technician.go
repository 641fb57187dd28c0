package flows

import (
	"shoptrack/internal/dispatcher/core"
)

// AutoAssignTechnicianFlow picks a technician for an existing scheduled
// work order: load the order, pull the shop roster and the day's orders,
// aggregate per-technician workload, select, and write the assignment
// back through the work orders service.
type AutoAssignTechnicianFlow struct{}

func (f *AutoAssignTechnicianFlow) Name() string {
	return "auto_assign_technician"
}

func (f *AutoAssignTechnicianFlow) Steps() []*core.Step {
	steps := []*core.Step{
		core.NewStep("fetch_work_order", FetchWorkOrder),
	}
	return append(steps, assignmentSteps()...)
}
