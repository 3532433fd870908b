package geo

import (
	"strings"

	"craftedbyher/models"
)

// Districts served by the hub network.
var Districts = []string{
	"Thiruvananthapuram", "Kollam", "Pathanamthitta", "Alappuzha",
	"Kottayam", "Idukki", "Ernakulam", "Thrissur",
	"Palakkad", "Malappuram", "Kozhikode", "Wayanad",
	"Kannur", "Kasaragod",
}

const DefaultDistrict = "Ernakulam"

// CanonicalDistrict returns the canonical spelling of name, if it is a known district.
func CanonicalDistrict(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, d := range Districts {
		if strings.EqualFold(d, name) {
			return d, true
		}
	}
	return "", false
}

// ExtractDistrict finds the first district named in the address city or state.
// Falls back to fallback (or DefaultDistrict when empty).
func ExtractDistrict(addr models.Address, fallback string) string {
	if fallback == "" {
		fallback = DefaultDistrict
	}
	city := strings.ToLower(addr.City)
	state := strings.ToLower(addr.State)
	for _, d := range Districts {
		ld := strings.ToLower(d)
		if strings.Contains(city, ld) || strings.Contains(state, ld) {
			return d
		}
	}
	return fallback
}

// NearestByDistrict returns the first active hub in district. No tie-breaking.
func NearestByDistrict(hubs []models.Hub, district string) (*models.Hub, bool) {
	for i := range hubs {
		h := &hubs[i]
		if h.Status == models.HubActive && strings.EqualFold(h.District, district) {
			return h, true
		}
	}
	return nil, false
}
