package location

import (
	"context"
	"fmt"
	"strings"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/providers/bigdatacloud"
	"iss-sky-scanner/internal/providers/openstreetmap"
	"iss-sky-scanner/internal/types"
)

const openOcean = "open ocean"

var waterKeywords = []string{"ocean", "sea"}

type bigDataCloudGeocoder struct {
	provider ReverseGeocodeProvider
}

// NewBigDataCloudGeocoder describes points with the BigDataCloud client
func NewBigDataCloudGeocoder(provider ReverseGeocodeProvider) Geocoder {
	return &bigDataCloudGeocoder{provider: provider}
}

func (g *bigDataCloudGeocoder) Describe(ctx context.Context, latitude, longitude float64) (*types.LocationDetails, error) {
	resp, err := g.provider.ReverseGeocode(ctx, latitude, longitude)
	if err != nil {
		return nil, apperr.Upstream("Failed to reverse geocode location", fmt.Errorf("failed to get location: %w", err))
	}
	return translateBigDataCloud(resp)
}

type nominatimGeocoder struct {
	provider LookupProvider
}

// NewNominatimGeocoder describes points with the OpenStreetMap Nominatim client
func NewNominatimGeocoder(provider LookupProvider) Geocoder {
	return &nominatimGeocoder{provider: provider}
}

func (g *nominatimGeocoder) Describe(ctx context.Context, latitude, longitude float64) (*types.LocationDetails, error) {
	resp, err := g.provider.Lookup(ctx, latitude, longitude)
	if err != nil {
		return nil, apperr.Upstream("Failed to reverse geocode location", fmt.Errorf("failed to get location: %w", err))
	}
	return translateNominatim(resp)
}

// translateBigDataCloud applies the open-water rule to a BigDataCloud response
func translateBigDataCloud(resp *bigdatacloud.ReverseGeocodeAPIResponse) (*types.LocationDetails, error) {
	if resp == nil {
		return nil, apperr.Upstream("Failed to reverse geocode location", fmt.Errorf("lookup response is nil"))
	}

	details := &types.LocationDetails{
		Country:     strings.TrimSpace(resp.CountryName),
		CountryCode: strings.ToUpper(strings.TrimSpace(resp.CountryCode)),
		Raw:         resp.Raw,
	}

	if details.Country == "" {
		body := ""
		for _, info := range resp.LocalityInfo.Informative {
			if isWaterName(info.Name) {
				body = info.Name
				break
			}
		}
		if body == "" {
			body = resp.Locality
		}
		details.OverWater = true
		details.CountryCode = ""
		details.LocationName = overWater(body)
		return details, nil
	}

	place := resp.City
	if strings.TrimSpace(place) == "" {
		place = resp.Locality
	}
	details.LocationName = joinParts(place, resp.PrincipalSubdivision, details.Country)
	return details, nil
}

// translateNominatim applies the open-water rule to a Nominatim response
func translateNominatim(resp *openstreetmap.LookupAPIResponse) (*types.LocationDetails, error) {
	if resp == nil {
		return nil, apperr.Upstream("Failed to reverse geocode location", fmt.Errorf("lookup response is nil"))
	}

	details := &types.LocationDetails{
		Country:     strings.TrimSpace(resp.Address.Country),
		CountryCode: strings.ToUpper(strings.TrimSpace(resp.Address.CountryCode)),
		Raw:         resp.Raw,
	}

	if resp.Unlocated() || details.Country == "" {
		body := resp.Address.Water
		if body == "" && isWaterName(resp.Name) {
			body = resp.Name
		}
		details.OverWater = true
		details.CountryCode = ""
		details.LocationName = overWater(body)
		return details, nil
	}

	place := firstNonEmpty(resp.Address.City, resp.Address.Town, resp.Address.Village, resp.Address.County)
	details.LocationName = joinParts(place, resp.Address.State, details.Country)
	return details, nil
}

func isWaterName(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range waterKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// overWater renders "Over the <body>", never doubling a leading "the"
func overWater(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		body = openOcean
	}
	if len(body) >= 4 && strings.EqualFold(body[:4], "the ") {
		body = body[4:]
	}
	return "Over the " + body
}

func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
