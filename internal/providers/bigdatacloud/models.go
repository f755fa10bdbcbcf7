package bigdatacloud

import "encoding/json"

type ReverseGeocodeAPIResponse struct {
	Latitude             float64      `json:"latitude"`
	Longitude            float64      `json:"longitude"`
	Continent            string       `json:"continent"`
	ContinentCode        string       `json:"continentCode"`
	CountryName          string       `json:"countryName"`
	CountryCode          string       `json:"countryCode"`
	PrincipalSubdivision string       `json:"principalSubdivision"`
	City                 string       `json:"city"`
	Locality             string       `json:"locality"`
	Postcode             string       `json:"postcode"`
	LocalityInfo         LocalityInfo `json:"localityInfo"`

	// Raw is the undecoded response body
	Raw json.RawMessage `json:"-"`
}

type LocalityInfo struct {
	Administrative []LocalityEntry `json:"administrative"`
	Informative    []LocalityEntry `json:"informative"`
}

type LocalityEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	AdminLevel  int    `json:"adminLevel,omitempty"`
	ISOCode     string `json:"isoCode,omitempty"`
	WikidataID  string `json:"wikidataId,omitempty"`
}
