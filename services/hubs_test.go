package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"craftedbyher/cache"
	"craftedbyher/geo"
	"craftedbyher/models"

	"github.com/alicebob/miniredis/v2"
)

func newHubService(t *testing.T, hubs *memHubs, store cache.Store) (*HubService, *memManagers, *memUsers) {
	t.Helper()
	managers := &memManagers{}
	users := newMemUsers()
	return NewHubService(hubs, managers, users, store, time.Minute, ""), managers, users
}

func TestHubCreate(t *testing.T) {
	svc, _, _ := newHubService(t, &memHubs{}, nil)
	ctx := context.Background()

	h, err := svc.Create(ctx, "admin-1", CreateHubInput{Name: " Kochi Hub ", District: "ernakulam"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if h.HubID != "HUB0001" || h.District != "Ernakulam" || h.Name != "Kochi Hub" {
		t.Errorf("hub = %s %s %q", h.HubID, h.District, h.Name)
	}
	if h.Capacity.MaxOrders != defaultHubCapacity || h.Status != models.HubActive {
		t.Errorf("defaults = %+v %s", h.Capacity, h.Status)
	}
	h2, err := svc.Create(ctx, "admin-1", CreateHubInput{Name: "Second", District: "Kollam", MaxOrders: 50})
	if err != nil || h2.HubID != "HUB0002" {
		t.Errorf("second hub = %v %v", h2, err)
	}

	if _, err := svc.Create(ctx, "admin-1", CreateHubInput{Name: "X", District: "Bangalore"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown district error = %v", err)
	}
	if _, err := svc.Create(ctx, "admin-1", CreateHubInput{District: "Kollam"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name error = %v", err)
	}
}

func TestHubCreateSkipsTakenIDs(t *testing.T) {
	hubs := &memHubs{hubs: []*models.Hub{{HubID: "HUB0002", District: "Kollam"}}}
	svc, _, _ := newHubService(t, hubs, nil)
	h, err := svc.Create(context.Background(), "admin-1", CreateHubInput{Name: "Kochi", District: "Ernakulam"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if h.HubID != "HUB0003" {
		t.Errorf("HubID = %s, want HUB0003", h.HubID)
	}
}

func TestHubSeed(t *testing.T) {
	hubs := &memHubs{hubs: []*models.Hub{{HubID: "HUB0001", District: "Ernakulam", Status: models.HubActive}}}
	svc, _, _ := newHubService(t, hubs, nil)
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != len(geo.Districts)-1 {
		t.Errorf("seeded %d hubs, want %d", n, len(geo.Districts)-1)
	}
	if n, _ := svc.Seed(ctx); n != 0 {
		t.Errorf("second Seed() created %d", n)
	}
	for _, d := range geo.Districts {
		if _, err := svc.RouteToDistrict(ctx, d); err != nil {
			t.Errorf("RouteToDistrict(%s) error = %v", d, err)
		}
	}
}

func TestActiveHubsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	store, err := cache.NewRedisClient(ctx, mr.Addr(), "")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	hubs := &memHubs{}
	svc, _, _ := newHubService(t, hubs, store)
	h, err := svc.Create(ctx, "admin-1", CreateHubInput{Name: "Kochi", District: "Ernakulam"})
	if err != nil {
		t.Fatal(err)
	}
	list, err := svc.ActiveHubs(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ActiveHubs() = %v %v", list, err)
	}
	if !mr.Exists(activeHubsKey) {
		t.Fatal("active hubs were not cached")
	}

	// a write behind the service's back is invisible until invalidation
	hubs.SetStatus(ctx, h.HubID, models.HubInactive)
	if list, _ := svc.ActiveHubs(ctx); len(list) != 1 {
		t.Errorf("cached list = %d hubs", len(list))
	}
	if err := svc.SetStatus(ctx, h.HubID, models.HubMaintenance); err != nil {
		t.Fatal(err)
	}
	if list, _ := svc.ActiveHubs(ctx); len(list) != 0 {
		t.Errorf("after SetStatus ActiveHubs() = %d hubs", len(list))
	}
	if _, err := svc.RouteToDistrict(ctx, "Ernakulam"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RouteToDistrict() error = %v", err)
	}
}

func TestHubSetStatusValidates(t *testing.T) {
	svc, _, _ := newHubService(t, &memHubs{}, nil)
	if err := svc.SetStatus(context.Background(), "HUB0001", "closed"); !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v", err)
	}
	if err := svc.SetStatus(context.Background(), "HUB0001", models.HubActive); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing hub error = %v", err)
	}
}

func TestSellerDistrict(t *testing.T) {
	svc, _, users := newHubService(t, &memHubs{}, nil)
	ctx := context.Background()
	users.byUID["located"] = &models.User{UID: "located", SellerLocation: &models.SellerLocation{District: "kannur"}}
	users.byUID["addressed"] = &models.User{UID: "addressed", Addresses: []models.SavedAddress{
		{Address: models.Address{City: "Thrissur", State: "Kerala"}},
	}}
	users.byUID["bare"] = &models.User{UID: "bare"}

	cases := map[string]string{
		"located":   "Kannur",
		"addressed": "Thrissur",
		"bare":      geo.DefaultDistrict,
		"missing":   geo.DefaultDistrict,
	}
	for uid, want := range cases {
		got, err := svc.SellerDistrict(ctx, uid)
		if err != nil || got != want {
			t.Errorf("SellerDistrict(%s) = %q, %v, want %q", uid, got, err, want)
		}
	}
}

func TestSaveSellerLocation(t *testing.T) {
	svc, _, users := newHubService(t, &memHubs{}, nil)
	ctx := context.Background()
	users.byUID["s1"] = &models.User{UID: "s1", Role: models.RoleSeller}

	loc, err := svc.SaveSellerLocation(ctx, "s1", SellerLocationInput{Address: models.Address{City: "Palakkad town"}})
	if err != nil {
		t.Fatalf("SaveSellerLocation() error = %v", err)
	}
	if loc.District != "Palakkad" || users.byUID["s1"].SellerLocation.District != "Palakkad" {
		t.Errorf("district = %s", loc.District)
	}
	if _, err := svc.SaveSellerLocation(ctx, "s1", SellerLocationInput{District: "Goa"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown district error = %v", err)
	}
	if _, err := svc.SaveSellerLocation(ctx, "nobody", SellerLocationInput{District: "Idukki"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown seller error = %v", err)
	}
}

func TestNearestHubs(t *testing.T) {
	hubs := &memHubs{hubs: []*models.Hub{
		{HubID: "TVM", District: "Thiruvananthapuram", Status: models.HubActive,
			Location: models.HubLocation{Coordinates: &models.Coordinates{Latitude: 8.5241, Longitude: 76.9366}}},
		{HubID: "EKM", District: "Ernakulam", Status: models.HubActive,
			Location: models.HubLocation{Coordinates: &models.Coordinates{Latitude: 9.9312, Longitude: 76.2673}}},
	}}
	svc, _, _ := newHubService(t, hubs, nil)
	ranked, err := svc.Nearest(context.Background(), models.Coordinates{Latitude: 10.0, Longitude: 76.3})
	if err != nil {
		t.Fatal(err)
	}
	if ranked[0].HubID != "EKM" || !ranked[0].IsNearest {
		t.Errorf("nearest = %s", ranked[0].HubID)
	}
	if _, err := svc.Nearest(context.Background(), models.Coordinates{Latitude: 91}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad coordinates error = %v", err)
	}
}

func TestAssignManager(t *testing.T) {
	hubs := &memHubs{hubs: []*models.Hub{{HubID: "HUB0001", Name: "Kochi", District: "Ernakulam"}}}
	svc, managers, _ := newHubService(t, hubs, nil)
	managers.list = []*models.HubManager{
		{ManagerID: "HM0001", Name: "Devi"},
		{ManagerID: "HM0002", Name: "Central", HubID: models.AllHubs},
	}
	ctx := context.Background()

	if err := svc.AssignManager(ctx, "HUB0001", "HM0001"); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}
	if managers.list[0].HubID != "HUB0001" || managers.list[0].District != "Ernakulam" {
		t.Errorf("manager = %+v", managers.list[0])
	}
	if hubs.hubs[0].ManagerID != "HM0001" || hubs.hubs[0].ManagerName != "Devi" {
		t.Errorf("hub = %+v", hubs.hubs[0])
	}
	if err := svc.AssignManager(ctx, "HUB0001", "HM0002"); !errors.Is(err, ErrConflict) {
		t.Errorf("central manager error = %v", err)
	}
	if err := svc.AssignManager(ctx, "HUB0009", "HM0001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing hub error = %v", err)
	}
}
