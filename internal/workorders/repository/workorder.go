package repository

import (
	"context"
	"errors"
	"fmt"
	workordererrors "shoptrack/internal/workorders/errors"
	"shoptrack/pkg/config"
	mongotx "shoptrack/pkg/db/mongo"
	"shoptrack/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Work_orders"
)

type mongoWorkOrderRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

// SearchFilter narrows work order queries. Zero fields are ignored; the
// time window uses half-open semantics (orders strictly overlapping
// [StartTime, EndTime) match).
type SearchFilter struct {
	ShopID       string
	TechnicianID string
	BayID        string
	StartTime    *time.Time
	EndTime      *time.Time
}

type WorkOrderRepository interface {
	Create(ctx context.Context, order *model.WorkOrder) error
	FindByID(ctx context.Context, id string) (*model.WorkOrder, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, error)
	Update(ctx context.Context, id string, order *model.WorkOrder) (*mongo.UpdateResult, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateAssignment(ctx context.Context, id string, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error)
	CountBySearch(ctx context.Context, filter SearchFilter) (int64, error)
	Count(ctx context.Context) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoWorkOrderRepository(cfg *config.Config) WorkOrderRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoWorkOrderRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics, so
// inside a transaction the original context is returned with a no-op cancel.
func (r *mongoWorkOrderRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoWorkOrderRepository) Create(ctx context.Context, order *model.WorkOrder) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	order.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid.Hex()
	}
	return nil
}

func (r *mongoWorkOrderRepository) FindByID(ctx context.Context, id string) (*model.WorkOrder, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", workordererrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}

	var order model.WorkOrder
	err = r.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, workordererrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}

	return &order, nil
}

func (r *mongoWorkOrderRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find work orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*model.WorkOrder
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode work orders: %w", err)
	}

	return orders, nil
}

func (r *mongoWorkOrderRepository) Update(ctx context.Context, id string, order *model.WorkOrder) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", workordererrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"service_label":        order.ServiceLabel,
			"bay_id":               order.BayID,
			"required_specialties": order.RequiredSpecialties,
			"minimum_skill_level":  order.MinimumSkillLevel,
			"start_time":           order.StartTime,
			"end_time":             order.EndTime,
			"estimated_hours":      order.EstimatedHours,
			"status":               order.Status,
			"priority":             order.Priority,
			"is_emergency":         order.IsEmergency,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, workordererrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoWorkOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", workordererrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update work order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return workordererrors.ErrNotFound
	}

	return nil
}

func (r *mongoWorkOrderRepository) UpdateAssignment(ctx context.Context, id string, assignment *model.Assignment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", workordererrors.ErrInvalidID, id)
	}

	set := bson.M{"technician_id": assignment.TechnicianID}
	if assignment.Priority != "" {
		set["priority"] = assignment.Priority
	}
	if assignment.IsEmergency != nil {
		set["is_emergency"] = *assignment.IsEmergency
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update work order assignment: %w", err)
	}
	if result.MatchedCount == 0 {
		return workordererrors.ErrNotFound
	}

	return nil
}

func (r *mongoWorkOrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", workordererrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete work order: %w", err)
	}

	if result.DeletedCount == 0 {
		return workordererrors.ErrNotFound
	}

	return nil
}

func (r *mongoWorkOrderRepository) Search(ctx context.Context, filter SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, buildSearchFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search work orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*model.WorkOrder
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode work orders: %w", err)
	}

	return orders, nil
}

func (r *mongoWorkOrderRepository) CountBySearch(ctx context.Context, filter SearchFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildSearchFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count work orders by search: %w", err)
	}
	return count, nil
}

func buildSearchFilter(f SearchFilter) bson.M {
	filter := bson.M{}
	if f.ShopID != "" {
		filter["shop_id"] = f.ShopID
	}
	if f.TechnicianID != "" {
		filter["technician_id"] = f.TechnicianID
	}
	if f.BayID != "" {
		filter["bay_id"] = f.BayID
	}

	// Half-open window: an order [s, e) overlaps [Start, End) iff
	// s < End and e > Start. Touching endpoints do not match.
	if f.StartTime != nil || f.EndTime != nil {
		timeFilters := bson.M{}
		if f.StartTime != nil && f.EndTime != nil {
			timeFilters = bson.M{
				"start_time": bson.M{"$lt": *f.EndTime},
				"end_time":   bson.M{"$gt": *f.StartTime},
			}
		} else if f.StartTime != nil {
			timeFilters = bson.M{
				"end_time": bson.M{"$gt": *f.StartTime},
			}
		} else if f.EndTime != nil {
			timeFilters = bson.M{
				"start_time": bson.M{"$lt": *f.EndTime},
			}
		}

		filter["$and"] = []bson.M{timeFilters}
	}

	return filter
}

func (r *mongoWorkOrderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count work orders: %w", err)
	}

	return count, nil
}

func (r *mongoWorkOrderRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
