package workorders

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"shoptrack/pkg/model"
	"shoptrack/test/integration/testutil"
)

func TestCreate_ValidWorkOrder(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Arrange
	wo := testutil.ValidWorkOrder()

	// Act
	resp := client.POST(t, "/api/v1/work-orders", wo)

	// Assert
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.WorkOrder
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Status != model.StatusScheduled {
		t.Errorf("expected status %q, got %q", model.StatusScheduled, created.Status)
	}
	if created.Priority != model.PriorityNormal {
		t.Errorf("expected default priority %q, got %q", model.PriorityNormal, created.Priority)
	}

	count := mongo.CountDocuments(t, testutil.WorkOrdersCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreate_OverlappingTechnicianWindow(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	technicianID := "507f1f77bcf86cd799439020"
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	first := testutil.NewWorkOrderBuilder().
		WithTechnicianID(technicianID).
		WithWindow(start, start.Add(90*time.Minute)).
		Build()
	resp := client.POST(t, "/api/v1/work-orders", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	// Overlaps the tail of the first booking
	second := testutil.NewWorkOrderBuilder().
		WithTechnicianID(technicianID).
		WithWindow(start.Add(time.Hour), start.Add(2*time.Hour)).
		Build()
	resp = client.POST(t, "/api/v1/work-orders", second)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	count := mongo.CountDocuments(t, testutil.WorkOrdersCollection)
	if count != 1 {
		t.Errorf("expected only the first order in DB, got %d", count)
	}
}

func TestCreate_TouchingWindowsAllowed(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	technicianID := "507f1f77bcf86cd799439020"
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	first := testutil.NewWorkOrderBuilder().
		WithTechnicianID(technicianID).
		WithWindow(start, start.Add(time.Hour)).
		Build()
	resp := client.POST(t, "/api/v1/work-orders", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	// Back-to-back: starts exactly when the first ends
	second := testutil.NewWorkOrderBuilder().
		WithTechnicianID(technicianID).
		WithWindow(start.Add(time.Hour), start.Add(2*time.Hour)).
		Build()
	resp = client.POST(t, "/api/v1/work-orders", second)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	count := mongo.CountDocuments(t, testutil.WorkOrdersCollection)
	if count != 2 {
		t.Errorf("expected 2 documents in DB, got %d", count)
	}
}

func TestCreate_CancelledOrderDoesNotBlock(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	technicianID := "507f1f77bcf86cd799439020"
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	first := testutil.NewWorkOrderBuilder().
		WithTechnicianID(technicianID).
		WithWindow(start, start.Add(time.Hour)).
		Build()
	resp := client.POST(t, "/api/v1/work-orders", first)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.WorkOrder
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	resp = client.POST(t, fmt.Sprintf("/api/v1/work-orders/id/%s/status", created.ID),
		map[string]string{"status": model.StatusCancelled})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	// Same slot is free again after cancellation
	second := testutil.NewWorkOrderBuilder().
		WithTechnicianID(technicianID).
		WithWindow(start, start.Add(time.Hour)).
		Build()
	resp = client.POST(t, "/api/v1/work-orders", second)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/work-orders", model.WorkOrder{})
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertContains(t, resp, "validation")

	count := mongo.CountDocuments(t, testutil.WorkOrdersCollection)
	if count != 0 {
		t.Errorf("expected 0 documents in DB, got %d", count)
	}
}

func TestSearch_ByTechnicianAndWindow(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	technicianID := "507f1f77bcf86cd799439020"
	otherTechID := "507f1f77bcf86cd799439021"
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)

	for i, techID := range []string{technicianID, otherTechID} {
		wo := testutil.NewWorkOrderBuilder().
			WithTechnicianID(techID).
			WithWindow(start.Add(time.Duration(i)*2*time.Hour), start.Add(time.Duration(i)*2*time.Hour+time.Hour)).
			Build()
		resp := client.POST(t, "/api/v1/work-orders", wo)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	}

	path := fmt.Sprintf("/api/v1/work-orders/search?shop_id=%s&technician_id=%s&start_time=%s&end_time=%s",
		testutil.FixtureShopID,
		technicianID,
		start.UTC().Format(time.RFC3339),
		start.Add(8*time.Hour).UTC().Format(time.RFC3339),
	)
	resp := client.GET(t, path)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var found []model.WorkOrder
	if err := resp.UnmarshalData(&found); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 order for technician, got %d", len(found))
	}
	if found[0].TechnicianID != technicianID {
		t.Errorf("expected technician %s, got %s", technicianID, found[0].TechnicianID)
	}
}

func TestStatus_TerminalTransitionRejected(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/work-orders", testutil.ValidWorkOrder())
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.WorkOrder
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	statusPath := fmt.Sprintf("/api/v1/work-orders/id/%s/status", created.ID)

	resp = client.POST(t, statusPath, map[string]string{"status": model.StatusCancelled})
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	// Cancelled is terminal
	resp = client.POST(t, statusPath, map[string]string{"status": model.StatusInProgress})
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}
