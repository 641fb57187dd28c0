package core

import "fmt"

type Flow interface {
	Name() string
	Steps() []*Step
}

type Engine struct {
	flows map[string]Flow
}

func NewEngine(flows ...Flow) *Engine {
	m := map[string]Flow{}
	for _, f := range flows {
		m[f.Name()] = f
	}
	return &Engine{flows: m}
}

func (e *Engine) FlowNames() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	return names
}

func (e *Engine) Run(flowName string, ctx *FlowContext) error {
	f, exists := e.flows[flowName]
	if !exists {
		return fmt.Errorf("unsupported flow: %v", flowName)
	}
	for _, step := range f.Steps() {
		if ctx.Halted() {
			break
		}
		if err := step.Execute(ctx); err != nil {
			return fmt.Errorf("%s step failed, pipeline errored: %s", step.Name, err)
		}
	}
	return nil
}
