package core

type Step struct {
	Name    string
	Execute func(ctx *FlowContext) error
}

func NewStep(name string, execute func(ctx *FlowContext) error) *Step {
	return &Step{
		Name:    name,
		Execute: execute,
	}
}

const haltKey = "__halt"

// Halt stops the pipeline after the current step. Used when a flow
// reaches a legitimate terminal outcome before its last step, like an
// assignment flow finding no eligible technician.
func (c *FlowContext) Halt() {
	c.Process[haltKey] = true
}

func (c *FlowContext) Halted() bool {
	halted, _ := c.Process[haltKey].(bool)
	return halted
}
