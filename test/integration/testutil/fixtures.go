package testutil

import (
	"time"

	"shoptrack/pkg/model"
)

const (
	FixtureShopID     = "507f1f77bcf86cd799439011"
	FixtureCustomerID = "507f1f77bcf86cd799439012"
)

type WorkOrderBuilder struct {
	wo model.WorkOrder
}

func NewWorkOrderBuilder() *WorkOrderBuilder {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return &WorkOrderBuilder{
		wo: model.WorkOrder{
			ShopID:       FixtureShopID,
			CustomerID:   FixtureCustomerID,
			ServiceLabel: "Oil change",
			StartTime:    start,
			EndTime:      start.Add(time.Hour),
		},
	}
}

func (b *WorkOrderBuilder) WithShopID(shopID string) *WorkOrderBuilder {
	b.wo.ShopID = shopID
	return b
}

func (b *WorkOrderBuilder) WithCustomerID(customerID string) *WorkOrderBuilder {
	b.wo.CustomerID = customerID
	return b
}

func (b *WorkOrderBuilder) WithServiceLabel(label string) *WorkOrderBuilder {
	b.wo.ServiceLabel = label
	return b
}

func (b *WorkOrderBuilder) WithTechnicianID(id string) *WorkOrderBuilder {
	b.wo.TechnicianID = id
	return b
}

func (b *WorkOrderBuilder) WithBayID(id string) *WorkOrderBuilder {
	b.wo.BayID = id
	return b
}

func (b *WorkOrderBuilder) WithWindow(start, end time.Time) *WorkOrderBuilder {
	b.wo.StartTime = start
	b.wo.EndTime = end
	return b
}

func (b *WorkOrderBuilder) WithSpecialties(specialties ...string) *WorkOrderBuilder {
	b.wo.RequiredSpecialties = specialties
	return b
}

func (b *WorkOrderBuilder) WithEmergency() *WorkOrderBuilder {
	b.wo.IsEmergency = true
	return b
}

func (b *WorkOrderBuilder) Build() model.WorkOrder {
	return b.wo
}

func (b *WorkOrderBuilder) BuildPtr() *model.WorkOrder {
	wo := b.wo
	return &wo
}

func ValidWorkOrder() model.WorkOrder {
	return NewWorkOrderBuilder().Build()
}

type TechnicianBuilder struct {
	tech model.Technician
}

func NewTechnicianBuilder() *TechnicianBuilder {
	return &TechnicianBuilder{
		tech: model.Technician{
			ShopID:        FixtureShopID,
			Name:          "Dana Levi",
			Phone:         "+14155552671",
			Specialties:   []string{"brakes", "engine"},
			SkillLevel:    model.SkillIntermediate,
			MaxDailyHours: 8,
			Status:        model.TechnicianActive,
		},
	}
}

func (b *TechnicianBuilder) WithName(name string) *TechnicianBuilder {
	b.tech.Name = name
	return b
}

func (b *TechnicianBuilder) WithPhone(phone string) *TechnicianBuilder {
	b.tech.Phone = phone
	return b
}

func (b *TechnicianBuilder) WithSpecialties(specialties ...string) *TechnicianBuilder {
	b.tech.Specialties = specialties
	return b
}

func (b *TechnicianBuilder) WithSkillLevel(level string) *TechnicianBuilder {
	b.tech.SkillLevel = level
	return b
}

func (b *TechnicianBuilder) Build() model.Technician {
	return b.tech
}

func ValidTechnician() model.Technician {
	return NewTechnicianBuilder().Build()
}

func ValidCustomer() model.Customer {
	return model.Customer{
		ShopID: FixtureShopID,
		Name:   "Avi Cohen",
		Phone:  "+14155552672",
	}
}
