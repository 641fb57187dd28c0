package service

import (
	"context"
	"errors"
	"fmt"
	"shoptrack/internal/scheduling"
	workordererrors "shoptrack/internal/workorders/errors"
	"shoptrack/internal/workorders/repository"
	"shoptrack/internal/workorders/validator"
	"shoptrack/pkg/config"
	apperrors "shoptrack/pkg/errors"
	"shoptrack/pkg/events"
	"shoptrack/pkg/model"
	"shoptrack/pkg/sanitizer"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

type WorkOrderService interface {
	Create(ctx context.Context, order *model.WorkOrder) error
	GetByID(ctx context.Context, id string) (*model.WorkOrder, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, int64, error)
	Update(ctx context.Context, id string, updates *model.WorkOrderUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, int64, error)
	Assign(ctx context.Context, id string, assignment *model.Assignment) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

type workOrderService struct {
	repo      repository.WorkOrderRepository
	lockRepo  repository.SlotLockRepository
	validator *validator.WorkOrderValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewWorkOrderService(
	repo repository.WorkOrderRepository,
	lockRepo repository.SlotLockRepository,
	validator *validator.WorkOrderValidator,
	publisher events.Publisher,
	cfg *config.Config,
) WorkOrderService {
	return &workOrderService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *workOrderService) Create(ctx context.Context, order *model.WorkOrder) error {
	s.applyDefaults(order)
	s.sanitize(order)
	if err := s.validate(order); err != nil {
		return err
	}
	if order.Status != model.StatusScheduled {
		return apperrors.InvalidInput("New work orders must start in 'scheduled' status")
	}

	// Advisory locks serialize concurrent bookings of the same slot.
	lockIDs, err := s.acquireSlotLocks(ctx, order)
	if err != nil {
		return err
	}
	defer s.releaseSlotLocks(ctx, lockIDs)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, order); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, order); err != nil {
			return apperrors.Internal("Failed to create work order", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create work order", "error", err)
		return err
	}

	s.cfg.Log.Info("Work order created successfully",
		"id", order.ID,
		"shop_id", order.ShopID,
		"technician_id", order.TechnicianID,
		"start_time", order.StartTime,
	)

	if err := s.publisher.WorkOrderCreated(ctx, events.WorkOrderCreated{
		WorkOrderID:  order.ID,
		ShopID:       order.ShopID,
		CustomerID:   order.CustomerID,
		VehicleID:    order.VehicleID,
		TechnicianID: order.TechnicianID,
		ServiceLabel: order.ServiceLabel,
		StartTime:    order.StartTime,
		EndTime:      order.EndTime,
		Priority:     order.Priority,
		IsEmergency:  order.IsEmergency,
		CreatedAt:    order.CreatedAt,
	}); err != nil {
		// The order is already persisted; losing the event is an
		// observability gap, not a failure of the request.
		s.cfg.Log.Warn("Failed to publish work order created event", "id", order.ID, "error", err)
	}

	return nil
}

func (s *workOrderService) GetByID(ctx context.Context, id string) (*model.WorkOrder, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Work order ID cannot be empty")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, workordererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Work order", id)
		}
		if errors.Is(err, workordererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid work order ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve work order", err)
	}

	return order, nil
}

func (s *workOrderService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, int64, error) {
	var count int64
	var orders []*model.WorkOrder
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count work orders", "error", errCount)
			errCount = apperrors.Internal("Failed to count work orders", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		orders, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list work orders", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve work orders", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return orders, count, nil
}

func (s *workOrderService) Update(ctx context.Context, id string, updates *model.WorkOrderUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Work order ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, workordererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Work order", id)
		}
		if errors.Is(err, workordererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid work order ID format")
		}
		return apperrors.Internal("Failed to check work order existence", err)
	}
	if existing.Status == model.StatusCompleted || existing.Status == model.StatusCancelled {
		return apperrors.Conflict(fmt.Sprintf("Cannot update a %s work order", existing.Status))
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Work order update validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}
	merged := s.mergeUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return err
	}
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, merged); err != nil {
			return err
		}
		if _, err := s.repo.Update(sessCtx, id, merged); err != nil {
			return apperrors.Internal("Failed to update work order", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update work order", "id", id, "error", err)
		return err
	}
	s.cfg.Log.Info("Work order updated successfully", "id", id)
	return nil
}

func (s *workOrderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Work order ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, workordererrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Work order", id)
			}
			if errors.Is(err, workordererrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid work order ID format")
			}
			return apperrors.Internal("Failed to delete work order", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Work order deleted successfully", "id", id)
	return nil
}

func (s *workOrderService) Search(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, int64, error) {
	if filter.ShopID == "" {
		return nil, 0, apperrors.InvalidInput("ShopID is required")
	}

	var count int64
	var orders []*model.WorkOrder
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count work orders by search",
				"shop_id", filter.ShopID,
				"technician_id", filter.TechnicianID,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count work orders", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		orders, err = s.repo.Search(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search work orders",
				"shop_id", filter.ShopID,
				"technician_id", filter.TechnicianID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search work orders", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Work order search completed",
		"shop_id", filter.ShopID,
		"count", len(orders),
		"total_count", count,
	)
	return orders, count, nil
}

func (s *workOrderService) Assign(ctx context.Context, id string, assignment *model.Assignment) error {
	if id == "" {
		return apperrors.InvalidInput("Work order ID cannot be empty")
	}
	if err := s.validator.ValidateAssignment(assignment); err != nil {
		s.cfg.Log.Warn("Assignment validation failed", "id", id, "error", err)
		return apperrors.Validation("Invalid assignment input", map[string]any{"error": err.Error()})
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != model.StatusScheduled {
		return apperrors.Conflict(fmt.Sprintf("Cannot assign a technician to a %s work order", order.Status))
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// The technician may have been booked since the caller decided.
		candidate := *order
		candidate.TechnicianID = assignment.TechnicianID
		if err := s.verifyNoConflict(sessCtx, &candidate); err != nil {
			return err
		}
		if err := s.repo.UpdateAssignment(sessCtx, id, assignment); err != nil {
			if errors.Is(err, workordererrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Work order", id)
			}
			return apperrors.Internal("Failed to assign work order", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to assign work order", "id", id, "technician_id", assignment.TechnicianID, "error", err)
		return err
	}

	s.cfg.Log.Info("Work order assigned successfully",
		"id", id,
		"technician_id", assignment.TechnicianID,
	)

	if err := s.publisher.WorkOrderAssigned(ctx, events.WorkOrderAssigned{
		WorkOrderID:  id,
		ShopID:       order.ShopID,
		TechnicianID: assignment.TechnicianID,
		AssignedAt:   time.Now().UTC(),
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish work order assigned event", "id", id, "error", err)
	}

	return nil
}

func (s *workOrderService) UpdateStatus(ctx context.Context, id string, status string) error {
	if id == "" {
		return apperrors.InvalidInput("Work order ID cannot be empty")
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !model.ValidStatusTransition(order.Status, status) {
		return apperrors.Conflict(fmt.Sprintf(
			"Invalid status transition from '%s' to '%s'", order.Status, status,
		))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, workordererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Work order", id)
		}
		return apperrors.Internal("Failed to update work order status", err)
	}

	s.cfg.Log.Info("Work order status updated",
		"id", id,
		"from", order.Status,
		"to", status,
	)

	if err := s.publisher.WorkOrderStatusChanged(ctx, events.WorkOrderStatusChanged{
		WorkOrderID: id,
		ShopID:      order.ShopID,
		FromStatus:  order.Status,
		ToStatus:    status,
		ChangedAt:   time.Now().UTC(),
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish status changed event", "id", id, "error", err)
	}

	return nil
}

// --- Helpers ---

func (s *workOrderService) applyDefaults(o *model.WorkOrder) {
	if o.Status == "" {
		o.Status = model.StatusScheduled
	}
	if o.Priority == "" {
		o.Priority = model.PriorityNormal
	}
	if o.EndTime.IsZero() && !o.StartTime.IsZero() {
		o.EndTime = o.StartTime.Add(time.Duration(s.cfg.DefaultJobDurationMin) * time.Minute)
	}
}

func (s *workOrderService) sanitize(o *model.WorkOrder) {
	o.ServiceLabel = sanitizer.SanitizeServiceLabel(o.ServiceLabel)
	o.RequiredSpecialties = sanitizer.NormalizeSpecialties(o.RequiredSpecialties)
}

func (s *workOrderService) mergeUpdates(existing *model.WorkOrder, updates *model.WorkOrderUpdate) *model.WorkOrder {
	merged := *existing

	if updates.ServiceLabel != "" {
		merged.ServiceLabel = updates.ServiceLabel
	}
	if updates.BayID != nil {
		merged.BayID = *updates.BayID
	}
	if updates.RequiredSpecialties != nil {
		merged.RequiredSpecialties = *updates.RequiredSpecialties
	}
	if updates.MinimumSkillLevel != "" {
		merged.MinimumSkillLevel = updates.MinimumSkillLevel
	}
	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.EstimatedHours != nil {
		merged.EstimatedHours = *updates.EstimatedHours
	}
	if updates.Priority != "" {
		merged.Priority = updates.Priority
	}
	if updates.IsEmergency != nil {
		merged.IsEmergency = *updates.IsEmergency
	}

	return &merged
}

func (s *workOrderService) validate(order *model.WorkOrder) error {
	if err := s.validator.Validate(order); err != nil {
		s.cfg.Log.Warn("Work order validation failed", "error", err)
		return apperrors.Validation("Work order validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// verifyNoConflict rejects the order when its window overlaps another
// non-cancelled order for the same technician or the same bay. Half-open
// semantics: back-to-back orders sharing an endpoint are fine.
func (s *workOrderService) verifyNoConflict(ctx context.Context, order *model.WorkOrder) error {
	candidate, err := scheduling.NewTimeRange(order.StartTime, order.EndTime)
	if err != nil {
		return apperrors.Validation("Work order validation failed", map[string]any{
			"error": "end_time must be after start_time",
		})
	}

	resources := []repository.SearchFilter{}
	if order.TechnicianID != "" {
		resources = append(resources, repository.SearchFilter{
			ShopID:       order.ShopID,
			TechnicianID: order.TechnicianID,
			StartTime:    &order.StartTime,
			EndTime:      &order.EndTime,
		})
	}
	if order.BayID != "" {
		resources = append(resources, repository.SearchFilter{
			ShopID:    order.ShopID,
			BayID:     order.BayID,
			StartTime: &order.StartTime,
			EndTime:   &order.EndTime,
		})
	}

	for _, filter := range resources {
		existing, err := s.repo.Search(ctx, filter, config.DefaultMaxOverlapFetch, 0)
		if err != nil {
			return apperrors.Internal("Failed to check existing work orders", err)
		}

		ranges := make([]scheduling.TimeRange, 0, len(existing))
		for _, o := range existing {
			if o.ID == order.ID || o.Status == model.StatusCancelled {
				continue
			}
			ranges = append(ranges, scheduling.TimeRange{Start: o.StartTime, End: o.EndTime})
		}

		policy := scheduling.Policy{AllowOverlap: s.cfg.AllowOverlap}
		if err := scheduling.CheckConflict(candidate, ranges, policy); err != nil {
			if errors.Is(err, scheduling.ErrConflict) {
				return apperrors.Conflict(fmt.Sprintf(
					"Work order time overlaps with an existing order (%s - %s)",
					order.StartTime.Format(time.RFC3339),
					order.EndTime.Format(time.RFC3339),
				))
			}
			return apperrors.Validation("Work order validation failed", map[string]any{"error": err.Error()})
		}
	}

	return nil
}

// acquireSlotLocks creates advisory locks for every resource the order
// occupies. Locks auto-expire via the TTL index on expires_at.
func (s *workOrderService) acquireSlotLocks(ctx context.Context, order *model.WorkOrder) ([]string, error) {
	var resources []string
	if order.TechnicianID != "" {
		resources = append(resources, "tech_"+order.TechnicianID)
	}
	if order.BayID != "" {
		resources = append(resources, "bay_"+order.BayID)
	}
	if len(resources) == 0 {
		// Unassigned order with no bay occupies nothing yet.
		return nil, nil
	}

	var acquired []string
	for _, resource := range resources {
		lockID := fmt.Sprintf("slot_lock_%s_%s_%d", order.ShopID, resource, order.StartTime.Unix())

		lock := &model.SlotLock{
			ID:        lockID,
			ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
		}

		if _, err := s.lockRepo.Create(ctx, lock); err != nil {
			s.releaseSlotLocks(ctx, acquired)
			if mongo.IsDuplicateKeyError(err) {
				return nil, apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
			}
			return nil, apperrors.Internal("Failed to acquire slot lock", err)
		}
		acquired = append(acquired, lockID)
	}

	return acquired, nil
}

func (s *workOrderService) releaseSlotLocks(ctx context.Context, lockIDs []string) {
	for _, lockID := range lockIDs {
		if err := s.lockRepo.Delete(ctx, lockID); err != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", err)
		}
	}
}
