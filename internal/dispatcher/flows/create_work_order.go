package flows

import (
	"fmt"
	"net/http"
	"time"

	"shoptrack/internal/dispatcher/core"
	"shoptrack/pkg/client"
	"shoptrack/pkg/model"
	"shoptrack/pkg/sealer"
)

// CreateWorkOrderFlow books a work order end to end from front-desk
// input: resolve (or create) the customer by phone, optionally resolve
// the vehicle by VIN, create the order, mint the opaque slot token, and
// run the auto-assignment chain when the caller asked for it.
type CreateWorkOrderFlow struct{}

func (f *CreateWorkOrderFlow) Name() string {
	return "create_work_order"
}

func (f *CreateWorkOrderFlow) Steps() []*core.Step {
	return []*core.Step{
		core.NewStep("resolve_customer", ResolveCustomer),
		core.NewStep("resolve_vehicle", ResolveVehicle),
		core.NewStep("create_work_order", CreateWorkOrder),
		core.NewStep("maybe_auto_assign", MaybeAutoAssign),
	}
}

// ResolveCustomer finds the shop's customer record for the given phone,
// creating one when the phone is unknown. customer_name is required only
// on the create path.
func ResolveCustomer(ctx *core.FlowContext) error {
	shopID, err := ctx.RequireString(SHOP_ID)
	if err != nil {
		return err
	}
	phone, err := ctx.RequireString("customer_phone")
	if err != nil {
		return err
	}
	ctx.Process[SHOP_ID] = shopID

	resp, err := ctx.Client.CustomerClient.GetByPhone(phone)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK {
		customers, err := ctx.Client.CustomerClient.DecodeCustomers(resp)
		if err != nil {
			return err
		}
		// Phone lookup is global; the shop scope is ours to apply.
		for _, c := range customers {
			if c.ShopID == shopID {
				ctx.Process[CUSTOMER_ID] = c.ID
				return nil
			}
		}
	} else if resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("customer lookup failed: %s", client.GetErrorMessage(resp))
	}

	name, err := ctx.RequireString("customer_name")
	if err != nil {
		return fmt.Errorf("customer_phone %s is new to this shop and no customer_name was given", phone)
	}

	createResp, err := ctx.Client.CustomerClient.Create(&model.Customer{
		ShopID: shopID,
		Name:   name,
		Phone:  phone,
	})
	if err != nil {
		return err
	}
	if createResp.StatusCode != http.StatusCreated {
		return fmt.Errorf("customer create failed: %s", client.GetErrorMessage(createResp))
	}
	created, err := ctx.Client.CustomerClient.DecodeCustomer(createResp)
	if err != nil {
		return err
	}

	ctx.Log.Info("created customer for new booking", "customer_id", created.ID, "shop_id", shopID)
	ctx.Process[CUSTOMER_ID] = created.ID
	return nil
}

// ResolveVehicle matches the input VIN against the customer's vehicles.
// A missing vin input means a walk-in without a registered vehicle and
// is not an error.
func ResolveVehicle(ctx *core.FlowContext) error {
	vin := ctx.ExtractString("vin")
	if vin == "" {
		return nil
	}
	customerID := ctx.Process[CUSTOMER_ID].(string)

	resp, err := ctx.Client.CustomerClient.GetVehicles(customerID)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vehicle lookup failed: %s", client.GetErrorMessage(resp))
	}
	vehicles, err := ctx.Client.CustomerClient.DecodeVehicles(resp)
	if err != nil {
		return err
	}

	for _, v := range vehicles {
		if v.VIN == vin {
			ctx.Process[VEHICLE_ID] = v.ID
			return nil
		}
	}
	return fmt.Errorf("vin %s is not registered to this customer", vin)
}

func CreateWorkOrder(ctx *core.FlowContext) error {
	shopID := ctx.Process[SHOP_ID].(string)
	customerID := ctx.Process[CUSTOMER_ID].(string)

	serviceLabel, err := ctx.RequireString("service_label")
	if err != nil {
		return err
	}
	startTime, err := ctx.ExtractTime("start_time")
	if err != nil {
		return err
	}

	order := &model.WorkOrder{
		ShopID:       shopID,
		CustomerID:   customerID,
		ServiceLabel: serviceLabel,
		StartTime:    startTime,
	}
	if vehicleID, ok := ctx.Process[VEHICLE_ID].(string); ok {
		order.VehicleID = vehicleID
	}
	if bayID := ctx.ExtractString("bay_id"); bayID != "" {
		order.BayID = bayID
	}
	if _, ok := ctx.Input["end_time"]; ok {
		endTime, err := ctx.ExtractTime("end_time")
		if err != nil {
			return err
		}
		order.EndTime = endTime
	}
	if specialties, ok := ctx.Input["required_specialties"].([]any); ok {
		for _, s := range specialties {
			if str, ok := s.(string); ok {
				order.RequiredSpecialties = append(order.RequiredSpecialties, str)
			}
		}
	}
	if minSkill := ctx.ExtractString("minimum_skill_level"); minSkill != "" {
		order.MinimumSkillLevel = minSkill
	}
	order.IsEmergency = ctx.ExtractBool("is_emergency")

	resp, err := ctx.Client.WorkOrderClient.Create(order)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("work order create failed: %s", client.GetErrorMessage(resp))
	}
	created, err := ctx.Client.WorkOrderClient.DecodeWorkOrder(resp)
	if err != nil {
		return err
	}

	token, err := sealer.CreateOpaqueToken(shopID, created.ID)
	if err != nil {
		return err
	}

	ctx.Process[WORK_ORDER] = created
	ctx.Process[DAY] = dayOf(created.StartTime)
	ctx.Output["work_order_id"] = created.ID
	ctx.Output["customer_id"] = customerID
	ctx.Output["start_time"] = created.StartTime.Format(time.RFC3339)
	ctx.Output["end_time"] = created.EndTime.Format(time.RFC3339)
	ctx.Output["slot_token"] = token
	return nil
}

// MaybeAutoAssign runs the assignment chain inline when the caller set
// auto_assign. The booking itself already succeeded, so a selector miss
// leaves the order scheduled and unassigned rather than failing the flow.
func MaybeAutoAssign(ctx *core.FlowContext) error {
	if !ctx.ExtractBool(AUTO_ASSIGN) {
		return nil
	}

	for _, step := range assignmentSteps() {
		if err := step.Execute(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
		if ctx.Halted() {
			return nil
		}
	}
	return nil
}
