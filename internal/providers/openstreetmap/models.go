package openstreetmap

import "encoding/json"

// LookupAPIResponse is a Nominatim reverse result. Over open water Nominatim
// answers 200 with only Error set to "Unable to geocode".
type LookupAPIResponse struct {
	PlaceID     int     `json:"place_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Addresstype string  `json:"addresstype"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
	Address     Address `json:"address"`
	Error       string  `json:"error,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type Address struct {
	Water       string `json:"water"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	County      string `json:"county"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// Unlocated reports whether Nominatim found nothing at the point
func (r *LookupAPIResponse) Unlocated() bool {
	return r.Error != "" && r.Address.Country == ""
}
