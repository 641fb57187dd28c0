package core

import (
	"fmt"
	"time"

	"shoptrack/pkg/client"
	"shoptrack/pkg/logger"
)

// FlowContext carries state through a flow pipeline. Input is what the
// caller sent, Process is scratch space between steps, Output is what the
// caller gets back.
type FlowContext struct {
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Client  *client.Client
	Log     *logger.Logger
}

func NewFlowContext(input map[string]any, client *client.Client, log *logger.Logger) *FlowContext {
	return &FlowContext{
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Client:  client,
		Log:     log,
	}
}

func (c *FlowContext) ExtractString(key string) string {
	raw, ok := c.Input[key]
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return s
}

func (c *FlowContext) RequireString(key string) (string, error) {
	s := c.ExtractString(key)
	if IsMissing(s) {
		return "", MissingParamErr(key)
	}
	return s, nil
}

func (c *FlowContext) ExtractTime(key string) (time.Time, error) {
	raw, ok := c.Input[key]
	if !ok {
		return time.Time{}, MissingParamErr(key)
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("param [%v] must be an RFC3339 string", key)
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("param [%v] is not valid RFC3339: %w", key, err)
	}
	return parsed, nil
}

func (c *FlowContext) ExtractBool(key string) bool {
	raw, ok := c.Input[key]
	if !ok {
		return false
	}
	b, _ := raw.(bool)
	return b
}
