package core

import (
	"errors"
	"strings"
	"testing"
)

type stubFlow struct {
	name  string
	steps []*Step
}

func (f *stubFlow) Name() string   { return f.name }
func (f *stubFlow) Steps() []*Step { return f.steps }

func TestRun_ExecutesStepsInOrder(t *testing.T) {
	var order []string
	flow := &stubFlow{
		name: "test_flow",
		steps: []*Step{
			NewStep("first", func(ctx *FlowContext) error {
				order = append(order, "first")
				return nil
			}),
			NewStep("second", func(ctx *FlowContext) error {
				order = append(order, "second")
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	ctx := NewFlowContext(map[string]any{}, nil, nil)

	if err := engine.Run("test_flow", ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("steps ran out of order: %v", order)
	}
}

func TestRun_UnknownFlow(t *testing.T) {
	engine := NewEngine()
	ctx := NewFlowContext(map[string]any{}, nil, nil)

	err := engine.Run("nope", ctx)
	if err == nil {
		t.Fatal("expected error for unknown flow")
	}
}

func TestRun_StepErrorStopsPipeline(t *testing.T) {
	ran := false
	flow := &stubFlow{
		name: "failing_flow",
		steps: []*Step{
			NewStep("boom", func(ctx *FlowContext) error {
				return errors.New("step failure")
			}),
			NewStep("unreached", func(ctx *FlowContext) error {
				ran = true
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	ctx := NewFlowContext(map[string]any{}, nil, nil)

	err := engine.Run("failing_flow", ctx)
	if err == nil {
		t.Fatal("expected pipeline error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should name the failed step, got: %v", err)
	}
	if ran {
		t.Error("step after a failure should not run")
	}
}

func TestRun_HaltStopsPipelineWithoutError(t *testing.T) {
	ran := false
	flow := &stubFlow{
		name: "halting_flow",
		steps: []*Step{
			NewStep("halts", func(ctx *FlowContext) error {
				ctx.Output["assigned"] = false
				ctx.Halt()
				return nil
			}),
			NewStep("unreached", func(ctx *FlowContext) error {
				ran = true
				return nil
			}),
		},
	}

	engine := NewEngine(flow)
	ctx := NewFlowContext(map[string]any{}, nil, nil)

	if err := engine.Run("halting_flow", ctx); err != nil {
		t.Fatalf("halt is not an error, got: %v", err)
	}
	if ran {
		t.Error("step after halt should not run")
	}
	if assigned, ok := ctx.Output["assigned"].(bool); !ok || assigned {
		t.Error("output written before halt should survive")
	}
}

func TestRequireString(t *testing.T) {
	ctx := NewFlowContext(map[string]any{"shop_id": "abc"}, nil, nil)

	got, err := ctx.RequireString("shop_id")
	if err != nil || got != "abc" {
		t.Errorf("expected abc, got %q err %v", got, err)
	}

	if _, err := ctx.RequireString("missing"); err == nil {
		t.Error("expected error for missing param")
	}
}

func TestExtractTime(t *testing.T) {
	ctx := NewFlowContext(map[string]any{
		"good": "2026-03-01T09:00:00Z",
		"bad":  "yesterday",
	}, nil, nil)

	if _, err := ctx.ExtractTime("good"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ctx.ExtractTime("bad"); err == nil {
		t.Error("expected error for non-RFC3339 value")
	}
	if _, err := ctx.ExtractTime("absent"); err == nil {
		t.Error("expected error for missing key")
	}
}
