package validator

import (
	"shoptrack/pkg/logger"
	"shoptrack/pkg/model"
	"strings"
	"testing"
	"time"
)

func newTestValidator() *WorkOrderValidator {
	log := logger.New(logger.Config{
		Level:     logger.INFO,
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewWorkOrderValidator(log)
}

func TestValidateUpdate_TimeFields(t *testing.T) {
	validator := newTestValidator()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	later := base.Add(2 * time.Hour)
	earlier := base.Add(-time.Hour)

	tests := []struct {
		name      string
		update    *model.WorkOrderUpdate
		wantError bool
		wantMsg   string
	}{
		{
			name:      "end_time only",
			update:    &model.WorkOrderUpdate{EndTime: &later},
			wantError: false,
		},
		{
			name:      "start_time only",
			update:    &model.WorkOrderUpdate{StartTime: &base},
			wantError: false,
		},
		{
			name:      "both set in order",
			update:    &model.WorkOrderUpdate{StartTime: &base, EndTime: &later},
			wantError: false,
		},
		{
			name:      "both set reversed",
			update:    &model.WorkOrderUpdate{StartTime: &base, EndTime: &earlier},
			wantError: true,
			wantMsg:   "end_time must be after start_time",
		},
		{
			name:      "both set equal",
			update:    &model.WorkOrderUpdate{StartTime: &base, EndTime: &base},
			wantError: true,
			wantMsg:   "end_time must be after start_time",
		},
		{
			name:      "empty update",
			update:    &model.WorkOrderUpdate{},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateUpdate(tt.update)
			if tt.wantError && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
			if tt.wantMsg != "" && err != nil && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got: %v", tt.wantMsg, err)
			}
		})
	}
}

func TestValidateUpdate_FieldRules(t *testing.T) {
	validator := newTestValidator()

	badHours := -1.0
	goodHours := 3.5

	tests := []struct {
		name      string
		update    *model.WorkOrderUpdate
		wantError bool
	}{
		{
			name:      "valid service label",
			update:    &model.WorkOrderUpdate{ServiceLabel: "Brake inspection"},
			wantError: false,
		},
		{
			name:      "service label too short",
			update:    &model.WorkOrderUpdate{ServiceLabel: "x"},
			wantError: true,
		},
		{
			name:      "negative estimated hours",
			update:    &model.WorkOrderUpdate{EstimatedHours: &badHours},
			wantError: true,
		},
		{
			name:      "valid estimated hours",
			update:    &model.WorkOrderUpdate{EstimatedHours: &goodHours},
			wantError: false,
		},
		{
			name:      "unknown priority",
			update:    &model.WorkOrderUpdate{Priority: "urgent"},
			wantError: true,
		},
		{
			name:      "unknown skill level",
			update:    &model.WorkOrderUpdate{MinimumSkillLevel: "wizard"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateUpdate(tt.update)
			if tt.wantError && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}
