package geo

import (
	"math"
	"testing"

	"craftedbyher/models"
)

func TestExtractDistrict(t *testing.T) {
	cases := []struct {
		addr     models.Address
		fallback string
		want     string
	}{
		{models.Address{City: "Kochi, ERNAKULAM"}, "", "Ernakulam"},
		{models.Address{City: "Tirur", State: "Malappuram district"}, "", "Malappuram"},
		{models.Address{City: "Thrissur", State: "Palakkad"}, "", "Thrissur"},
		{models.Address{City: "Bengaluru", State: "Karnataka"}, "", "Ernakulam"},
		{models.Address{}, "Kollam", "Kollam"},
	}
	for _, tc := range cases {
		if got := ExtractDistrict(tc.addr, tc.fallback); got != tc.want {
			t.Errorf("ExtractDistrict(%+v) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}

func TestNearestByDistrictFirstActiveMatch(t *testing.T) {
	hubs := []models.Hub{
		{HubID: "HUB0001", District: "Kollam", Status: models.HubActive},
		{HubID: "HUB0002", District: "Ernakulam", Status: models.HubMaintenance},
		{HubID: "HUB0003", District: "ernakulam", Status: models.HubActive},
		{HubID: "HUB0004", District: "Ernakulam", Status: models.HubActive},
	}
	h, ok := NearestByDistrict(hubs, "Ernakulam")
	if !ok || h.HubID != "HUB0003" {
		t.Fatalf("got %+v, %v", h, ok)
	}
	if _, ok := NearestByDistrict(hubs, "Wayanad"); ok {
		t.Error("expected no hub for Wayanad")
	}
}

func TestCanonicalDistrict(t *testing.T) {
	if d, ok := CanonicalDistrict(" kozhikode "); !ok || d != "Kozhikode" {
		t.Errorf("got %q %v", d, ok)
	}
	if _, ok := CanonicalDistrict("Chennai"); ok {
		t.Error("Chennai is not served")
	}
}

func TestDistance(t *testing.T) {
	kochi := models.Coordinates{Latitude: 9.9312, Longitude: 76.2673}
	tvm := models.Coordinates{Latitude: 8.5241, Longitude: 76.9366}
	d := Distance(kochi, tvm)
	if math.Abs(d-172) > 5 {
		t.Errorf("Kochi-Thiruvananthapuram = %.1f km, want ~172", d)
	}
	if Distance(kochi, kochi) != 0 {
		t.Error("distance to self should be 0")
	}
}

func TestRankByDistance(t *testing.T) {
	origin := models.Coordinates{Latitude: 10.5276, Longitude: 76.2144} // Thrissur
	hubs := []models.Hub{
		{HubID: "TVM", Location: models.HubLocation{Coordinates: &models.Coordinates{Latitude: 8.5241, Longitude: 76.9366}}},
		{HubID: "NOCOORD"},
		{HubID: "TSR", Location: models.HubLocation{Coordinates: &models.Coordinates{Latitude: 10.52, Longitude: 76.21}}},
		{HubID: "EKM", Location: models.HubLocation{Coordinates: &models.Coordinates{Latitude: 9.9312, Longitude: 76.2673}}},
	}
	ranked := RankByDistance(origin, hubs)
	order := []string{"TSR", "EKM", "TVM", "NOCOORD"}
	for i, id := range order {
		if ranked[i].HubID != id {
			t.Fatalf("rank[%d] = %s, want %s", i, ranked[i].HubID, id)
		}
	}
	if !ranked[0].IsNearest || ranked[1].IsNearest {
		t.Error("nearest flag misplaced")
	}
	if ranked[3].DistanceKm != nil {
		t.Error("hub without coordinates should have nil distance")
	}
}

func TestDistrictForPincode(t *testing.T) {
	cases := map[string]string{
		"682001": "Ernakulam",
		"683579": "Ernakulam",
		"695001": "Thiruvananthapuram",
		"673570": "Kozhikode",
		"673571": "Wayanad",
		"670731": "Kannur",
		"676320": "Malappuram",
		"560001": "",
		"670200": "",
		"68200":  "",
		"68200a": "",
	}
	for pin, want := range cases {
		got, ok := DistrictForPincode(pin)
		if got != want || ok != (want != "") {
			t.Errorf("DistrictForPincode(%q) = %q, %v; want %q", pin, got, ok, want)
		}
	}
}

func TestPincodeDistrictsAreServed(t *testing.T) {
	for _, d := range pincodeRanges {
		if _, ok := CanonicalDistrict(d.district); !ok {
			t.Errorf("%s is not a served district", d.district)
		}
	}
}
