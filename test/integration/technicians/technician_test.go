package technicians

import (
	"fmt"
	"net/http"
	"testing"

	"shoptrack/pkg/model"
	"shoptrack/test/integration/testutil"
)

func TestCreate_ValidTechnician(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	tech := testutil.ValidTechnician()

	resp := client.POST(t, "/api/v1/technicians", tech)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created model.Technician
	if err := resp.UnmarshalData(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if created.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Status != model.TechnicianActive {
		t.Errorf("expected status %q, got %q", model.TechnicianActive, created.Status)
	}

	count := mongo.CountDocuments(t, testutil.TechniciansCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreate_DuplicatePhoneInShop(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	tech := testutil.ValidTechnician()

	resp := client.POST(t, "/api/v1/technicians", tech)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = client.POST(t, "/api/v1/technicians", tech)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	count := mongo.CountDocuments(t, testutil.TechniciansCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestSearch_BySpecialty(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	brakes := testutil.NewTechnicianBuilder().
		WithName("Brakes Only").
		WithPhone("+14155552680").
		WithSpecialties("brakes").
		Build()
	engine := testutil.NewTechnicianBuilder().
		WithName("Engine Only").
		WithPhone("+14155552681").
		WithSpecialties("engine").
		Build()

	for _, tech := range []model.Technician{brakes, engine} {
		resp := client.POST(t, "/api/v1/technicians", tech)
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	}

	path := fmt.Sprintf("/api/v1/technicians/search?shop_id=%s&specialties=engine", testutil.FixtureShopID)
	resp := client.GET(t, path)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var found []model.Technician
	if err := resp.UnmarshalData(&found); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 technician, got %d", len(found))
	}
	if found[0].Name != "Engine Only" {
		t.Errorf("expected Engine Only, got %s", found[0].Name)
	}
}
