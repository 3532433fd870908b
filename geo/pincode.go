package geo

import (
	"regexp"
	"strconv"
)

var pincodeFormat = regexp.MustCompile(`^[0-9]{6}$`)

type pinRange struct{ lo, hi int }

// pincodeRanges lists the postal code ranges of each district. The first
// matching district wins.
var pincodeRanges = []struct {
	district string
	ranges   []pinRange
}{
	{"Kasaragod", []pinRange{{671121, 671551}}},
	{"Kannur", []pinRange{{670001, 670120}, {670301, 670706}, {670731, 670734}}},
	{"Wayanad", []pinRange{{673571, 673595}}},
	{"Kozhikode", []pinRange{{673001, 673570}}},
	{"Malappuram", []pinRange{{676101, 676123}, {676301, 676320}, {676501, 676553}}},
	{"Palakkad", []pinRange{{678001, 679593}}},
	{"Thrissur", []pinRange{{680001, 680733}}},
	{"Ernakulam", []pinRange{{682001, 683579}}},
	{"Idukki", []pinRange{{685501, 685620}}},
	{"Kottayam", []pinRange{{686001, 686651}}},
	{"Alappuzha", []pinRange{{688001, 688999}}},
	{"Pathanamthitta", []pinRange{{689001, 689999}}},
	{"Kollam", []pinRange{{690001, 691999}}},
	{"Thiruvananthapuram", []pinRange{{695001, 695615}}},
}

func ValidPincode(pin string) bool {
	return pincodeFormat.MatchString(pin)
}

// DistrictForPincode maps a six digit postal code to the district it falls in.
func DistrictForPincode(pin string) (string, bool) {
	if !ValidPincode(pin) {
		return "", false
	}
	n, _ := strconv.Atoi(pin)
	for _, d := range pincodeRanges {
		for _, r := range d.ranges {
			if n >= r.lo && n <= r.hi {
				return d.district, true
			}
		}
	}
	return "", false
}
