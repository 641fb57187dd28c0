package service

import (
	"shoptrack/internal/dispatcher/core"
	"shoptrack/internal/dispatcher/flows"
	"shoptrack/pkg/client"
	"shoptrack/pkg/logger"
)

type DispatcherService struct {
	engine *core.Engine
	client *client.Client
	log    *logger.Logger
}

func NewDispatcherService(client *client.Client, log *logger.Logger) *DispatcherService {
	engine := core.NewEngine(
		&flows.CreateWorkOrderFlow{},
		&flows.AutoAssignTechnicianFlow{},
		&flows.GetDailyScheduleFlow{},
	)
	return &DispatcherService{
		engine: engine,
		client: client,
		log:    log,
	}
}

func (s *DispatcherService) ExecuteFlow(flowName string, input map[string]any) (map[string]any, error) {
	ctx := core.NewFlowContext(input, s.client, s.log)
	if err := s.engine.Run(flowName, ctx); err != nil {
		return nil, err
	}
	return ctx.Output, nil
}

func (s *DispatcherService) GetAvailableFlows() []string {
	return s.engine.FlowNames()
}
