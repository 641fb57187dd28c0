package flows

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"shoptrack/internal/dispatcher/core"
	"shoptrack/internal/scheduling"
	"shoptrack/pkg/client"
	"shoptrack/pkg/config"
	"shoptrack/pkg/model"
)

const (
	WORK_ORDER_ID = "work_order_id"
	SHOP_ID       = "shop_id"
	DATE          = "date"
	AUTO_ASSIGN   = "auto_assign"

	WORK_ORDER          = "work_order"
	ROSTER              = "roster"
	DAY                 = "day"
	DAY_ORDERS          = "day_orders"
	WORKLOAD            = "workload"
	SELECTED_TECHNICIAN = "selected_technician"
	CUSTOMER_ID         = "customer_id"
	VEHICLE_ID          = "vehicle_id"
)

// FetchWorkOrder loads the order named by work_order_id and records its
// shop as the flow's shop.
func FetchWorkOrder(ctx *core.FlowContext) error {
	id, err := ctx.RequireString(WORK_ORDER_ID)
	if err != nil {
		return err
	}

	resp, err := ctx.Client.WorkOrderClient.GetByID(id)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("work order lookup failed: %s", client.GetErrorMessage(resp))
	}
	order, err := ctx.Client.WorkOrderClient.DecodeWorkOrder(resp)
	if err != nil {
		return err
	}

	if order.Status != model.StatusScheduled {
		return fmt.Errorf("work order %s is %s, only scheduled orders can be assigned", id, order.Status)
	}

	ctx.Process[WORK_ORDER] = order
	ctx.Process[SHOP_ID] = order.ShopID
	ctx.Process[DAY] = dayOf(order.StartTime)
	return nil
}

// RequireShopAndDate seeds the flow from explicit input instead of an
// existing work order. date defaults to today.
func RequireShopAndDate(ctx *core.FlowContext) error {
	shopID, err := ctx.RequireString(SHOP_ID)
	if err != nil {
		return err
	}
	ctx.Process[SHOP_ID] = shopID

	day := dayOf(time.Now().UTC())
	if _, ok := ctx.Input[DATE]; ok {
		parsed, err := ctx.ExtractTime(DATE)
		if err != nil {
			return err
		}
		day = dayOf(parsed)
	}
	ctx.Process[DAY] = day
	return nil
}

func FetchRoster(ctx *core.FlowContext) error {
	shopID := ctx.Process[SHOP_ID].(string)

	resp, err := ctx.Client.TechnicianClient.GetByShop(shopID, config.DefaultMaxTechniciansPerShop, 0)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("roster lookup failed: %s", client.GetErrorMessage(resp))
	}
	roster, _, err := ctx.Client.TechnicianClient.DecodeTechnicians(resp)
	if err != nil {
		return err
	}

	ctx.Process[ROSTER] = roster
	return nil
}

// FetchDayOrders pulls the shop's work orders for the flow's day in a
// single window search.
func FetchDayOrders(ctx *core.FlowContext) error {
	shopID := ctx.Process[SHOP_ID].(string)
	day := ctx.Process[DAY].(time.Time)
	dayEnd := day.Add(24 * time.Hour)

	resp, err := ctx.Client.WorkOrderClient.Search(
		shopID, "",
		day.Format(time.RFC3339), dayEnd.Format(time.RFC3339),
		config.DefaultMaxDayOrdersFetch, 0,
	)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("day orders lookup failed: %s", client.GetErrorMessage(resp))
	}
	orders, _, err := ctx.Client.WorkOrderClient.DecodeWorkOrders(resp)
	if err != nil {
		return err
	}

	ctx.Process[DAY_ORDERS] = orders
	return nil
}

// FetchDayOrdersPerTechnician pulls each roster member's orders for the
// day with one search per technician, bounded by the shared request
// limiter. Used when per-technician order lists are part of the output.
func FetchDayOrdersPerTechnician(ctx *core.FlowContext) error {
	shopID := ctx.Process[SHOP_ID].(string)
	day := ctx.Process[DAY].(time.Time)
	dayEnd := day.Add(24 * time.Hour)
	roster := ctx.Process[ROSTER].([]*model.Technician)

	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error
	all := make([]*model.WorkOrder, 0)

	for _, tech := range roster {
		wg.Add(1)
		go func(technicianID string) {
			defer wg.Done()
			core.RunWithRateLimitedConcurrency(func() {
				resp, err := ctx.Client.WorkOrderClient.Search(
					shopID, technicianID,
					day.Format(time.RFC3339), dayEnd.Format(time.RFC3339),
					config.DefaultMaxDayOrdersFetch, 0,
				)
				if err == nil && resp.StatusCode != http.StatusOK {
					err = fmt.Errorf("day orders lookup failed for technician %s: %s", technicianID, client.GetErrorMessage(resp))
				}
				var orders []*model.WorkOrder
				if err == nil {
					orders, _, err = ctx.Client.WorkOrderClient.DecodeWorkOrders(resp)
				}

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					return
				}
				all = append(all, orders...)
			})
		}(tech.ID)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	ctx.Process[DAY_ORDERS] = all
	return nil
}

func ComputeWorkload(ctx *core.FlowContext) error {
	day := ctx.Process[DAY].(time.Time)
	orders := ctx.Process[DAY_ORDERS].([]*model.WorkOrder)
	roster := ctx.Process[ROSTER].([]*model.Technician)

	ids := make([]string, 0, len(roster))
	for _, tech := range roster {
		ids = append(ids, tech.ID)
	}

	ctx.Process[WORKLOAD] = scheduling.AggregateWorkload(orders, day, ids)
	return nil
}

// SelectTechnician runs the assignment selector over the roster. Finding
// no eligible technician is a terminal outcome, not a failure: the flow
// halts with assigned=false.
func SelectTechnician(ctx *core.FlowContext) error {
	order := ctx.Process[WORK_ORDER].(*model.WorkOrder)
	roster := ctx.Process[ROSTER].([]*model.Technician)
	workload := ctx.Process[WORKLOAD].(map[string]scheduling.Snapshot)

	req := scheduling.AssignmentRequest{
		WorkOrderID:         order.ID,
		RequiredSpecialties: order.RequiredSpecialties,
		MinimumSkillLevel:   order.MinimumSkillLevel,
		EstimatedJobHours:   order.JobHours(),
		IsEmergency:         order.IsEmergency,
	}

	technicianID, err := scheduling.SelectTechnician(req, roster, workload)
	if err != nil {
		if errors.Is(err, scheduling.ErrNoMatch) {
			ctx.Log.Info("no eligible technician for work order",
				"work_order_id", order.ID,
				"shop_id", order.ShopID,
				"roster_size", len(roster),
			)
			ctx.Output["assigned"] = false
			ctx.Output["reason"] = "no eligible technician"
			ctx.Halt()
			return nil
		}
		return err
	}

	ctx.Process[SELECTED_TECHNICIAN] = technicianID
	return nil
}

func AssignTechnician(ctx *core.FlowContext) error {
	order := ctx.Process[WORK_ORDER].(*model.WorkOrder)
	technicianID := ctx.Process[SELECTED_TECHNICIAN].(string)
	workload := ctx.Process[WORKLOAD].(map[string]scheduling.Snapshot)

	resp, err := ctx.Client.WorkOrderClient.Assign(order.ID, &model.Assignment{
		TechnicianID: technicianID,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assignment rejected: %s", client.GetErrorMessage(resp))
	}

	ctx.Log.Info("work order auto-assigned",
		"work_order_id", order.ID,
		"technician_id", technicianID,
	)

	snapshot := workload[technicianID]
	ctx.Output["assigned"] = true
	ctx.Output["work_order_id"] = order.ID
	ctx.Output["technician_id"] = technicianID
	ctx.Output["technician_day_hours"] = snapshot.TotalHours + order.JobHours()
	return nil
}

// dayOf truncates to midnight in the timestamp's location.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func assignmentSteps() []*core.Step {
	return []*core.Step{
		core.NewStep("fetch_roster", FetchRoster),
		core.NewStep("fetch_day_orders", FetchDayOrders),
		core.NewStep("compute_workload", ComputeWorkload),
		core.NewStep("select_technician", SelectTechnician),
		core.NewStep("assign_technician", AssignTechnician),
	}
}
