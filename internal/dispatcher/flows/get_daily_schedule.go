package flows

import (
	"sort"
	"time"

	"shoptrack/internal/dispatcher/core"
	"shoptrack/internal/dispatcher/types"
	"shoptrack/internal/scheduling"
	"shoptrack/pkg/model"
)

// GetDailyScheduleFlow builds a shop's schedule board for one day: the
// full roster with each technician's orders, committed hours, and
// remaining capacity.
type GetDailyScheduleFlow struct{}

func (f *GetDailyScheduleFlow) Name() string {
	return "get_daily_schedule"
}

func (f *GetDailyScheduleFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("require_shop_and_date", RequireShopAndDate),
		core.NewStep("fetch_roster", FetchRoster),
		core.NewStep("fetch_day_orders", FetchDayOrdersPerTechnician),
		core.NewStep("compute_workload", ComputeWorkload),
		core.NewStep("organize_daily_schedule", OrganizeDailySchedule),
	}
}

// OrganizeDailySchedule folds the roster, orders, and workload snapshots
// into the response board, busiest technician first.
func OrganizeDailySchedule(ctx *core.FlowContext) error {
	shopID := ctx.Process[SHOP_ID].(string)
	day := ctx.Process[DAY].(time.Time)
	roster := ctx.Process[ROSTER].([]*model.Technician)
	orders := ctx.Process[DAY_ORDERS].([]*model.WorkOrder)
	workload := ctx.Process[WORKLOAD].(map[string]scheduling.Snapshot)

	byTechnician := make(map[string][]*types.ScheduleEntry, len(roster))
	for _, order := range orders {
		if order.TechnicianID == "" || order.Status == model.StatusCancelled {
			continue
		}
		byTechnician[order.TechnicianID] = append(byTechnician[order.TechnicianID], &types.ScheduleEntry{
			WorkOrderID:  order.ID,
			ServiceLabel: order.ServiceLabel,
			CustomerID:   order.CustomerID,
			BayID:        order.BayID,
			StartTime:    order.StartTime,
			EndTime:      order.EndTime,
			Status:       order.Status,
			IsEmergency:  order.IsEmergency,
		})
	}

	days := make([]*types.TechnicianDay, 0, len(roster))
	for _, tech := range roster {
		entries := byTechnician[tech.ID]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].StartTime.Before(entries[j].StartTime)
		})

		snap := workload[tech.ID]
		days = append(days, &types.TechnicianDay{
			TechnicianID:   tech.ID,
			Name:           tech.Name,
			Status:         tech.Status,
			SkillLevel:     tech.SkillLevel,
			CommittedHours: snap.TotalHours,
			RemainingHours: tech.MaxDailyHours - snap.TotalHours,
			Orders:         entries,
		})
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].CommittedHours != days[j].CommittedHours {
			return days[i].CommittedHours > days[j].CommittedHours
		}
		return days[i].TechnicianID < days[j].TechnicianID
	})

	schedule := &types.DailySchedule{
		ShopID:      shopID,
		Date:        day.Format("2006-01-02"),
		Technicians: days,
	}

	ctx.Output["schedule"] = schedule
	return nil
}
