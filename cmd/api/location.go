package main

import (
	"net/http"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/bff"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/types"

	"github.com/gin-gonic/gin"
)

// Timing reports how long each upstream call of a realtime lookup took
type Timing struct {
	PositionSeconds float64 `json:"nasa_api_duration_seconds" example:"0.21"`
	GeocodeSeconds  float64 `json:"geocode_duration_seconds" example:"0.34"`
	TotalSeconds    float64 `json:"total_duration_seconds" example:"0.55"`
}

// RealtimeLocationResponse is the live position of the station
type RealtimeLocationResponse struct {
	Timestamp       time.Time             `json:"timestamp"`
	Latitude        float64               `json:"latitude" example:"29.7604"`
	Longitude       float64               `json:"longitude" example:"-95.3698"`
	LocationDetails types.LocationDetails `json:"location_details"`
	Timing          Timing                `json:"timing"`
	Status          string                `json:"status" example:"success"`
}

// StoreLocationResponse is returned once the live position has been stored
type StoreLocationResponse struct {
	Status string              `json:"status" example:"success"`
	Data   types.HistoryRecord `json:"data"`
}

// LatestLocationResponse is the most recent stored position
type LatestLocationResponse struct {
	Timestamp       time.Time `json:"timestamp"`
	Latitude        float64   `json:"latitude" example:"29.7604"`
	Longitude       float64   `json:"longitude" example:"-95.3698"`
	LocationDetails string    `json:"location_details" example:"Houston, Texas, United States"`
	CountryCode     string    `json:"country_code,omitempty" example:"US"`
	Timezone        string    `json:"timezone,omitempty" example:"America/Chicago"`
	Status          string    `json:"status" example:"success"`
	Version         string    `json:"version" example:"1.0"`
}

// HistoryResponse lists stored positions
type HistoryResponse struct {
	Locations []types.HistoryRecord `json:"locations"`
	Count     int                   `json:"count" example:"1"`
	Status    string                `json:"status" example:"success"`
	Version   string                `json:"version" example:"1.0"`
}

// TimeRangeResponse lists the positions stored in the last minutes minutes
type TimeRangeResponse struct {
	Locations        []types.HistoryRecord `json:"locations"`
	Count            int                   `json:"count" example:"12"`
	MinutesRequested int                   `json:"minutes_requested" example:"60"`
	Status           string                `json:"status" example:"success"`
}

// QueryHistoryInput defines the query parameters for the history endpoint
type QueryHistoryInput struct {
	StartTime      time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime        time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
	CountryCode    string    `form:"country_code"`
	LatitudeRange  string    `form:"latitude_range"`
	LongitudeRange string    `form:"longitude_range"`
	Limit          int       `form:"limit"`
	OrderBy        string    `form:"order_by"`
	OrderDirection string    `form:"order_direction"`
}

// QueryTimeRangeInput defines the query parameters for the time range endpoint
type QueryTimeRangeInput struct {
	Minutes int `form:"minutes"`
}

// handleGetRealtimeLocation godoc
// @Summary Get the live ISS position
// @Description Fetch the current sub-satellite point and reverse-geocode it. Nothing is stored.
// @Tags location
// @Produce json
// @Success 200 {object} RealtimeLocationResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/location/realtime [get]
func (app *App) handleGetRealtimeLocation(c *gin.Context) {
	start := time.Now()
	reading, err := app.locationService.FetchCurrentPosition(c.Request.Context())
	if err != nil {
		app.respondError(c, err)
		return
	}
	positionDuration := time.Since(start)

	geocodeStart := time.Now()
	details, err := app.locationService.Describe(c.Request.Context(), reading.Latitude, reading.Longitude)
	if err != nil {
		app.respondError(c, err)
		return
	}
	geocodeDuration := time.Since(geocodeStart)

	c.JSON(http.StatusOK, RealtimeLocationResponse{
		Timestamp:       reading.Timestamp,
		Latitude:        reading.Latitude,
		Longitude:       reading.Longitude,
		LocationDetails: *details,
		Timing: Timing{
			PositionSeconds: seconds(positionDuration),
			GeocodeSeconds:  seconds(geocodeDuration),
			TotalSeconds:    seconds(time.Since(start)),
		},
		Status: bff.StatusSuccess,
	})
}

// handleStoreLocation godoc
// @Summary Store the live ISS position
// @Description Fetch, enrich and append the current position to the history. Called by the scheduler.
// @Tags location
// @Produce json
// @Success 200 {object} StoreLocationResponse
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /v1/location/store [post]
func (app *App) handleStoreLocation(c *gin.Context) {
	record, err := app.locationService.StoreCurrent(c.Request.Context())
	if err != nil {
		app.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StoreLocationResponse{
		Status: bff.StatusSuccess,
		Data:   *record,
	})
}

// handleGetLatestLocation godoc
// @Summary Get the last stored ISS position
// @Tags location
// @Produce json
// @Success 200 {object} LatestLocationResponse
// @Failure 503 {object} ErrorResponse
// @Router /v1/location/latest [get]
func (app *App) handleGetLatestLocation(c *gin.Context) {
	record, err := app.locationService.Latest(c.Request.Context())
	if err != nil {
		app.respondError(c, err)
		return
	}

	name := record.Details.LocationName
	if name == "" {
		name = bff.UnavailableLocation
	}

	c.JSON(http.StatusOK, LatestLocationResponse{
		Timestamp:       record.Timestamp,
		Latitude:        record.Latitude,
		Longitude:       record.Longitude,
		LocationDetails: name,
		CountryCode:     record.Details.CountryCode,
		Timezone:        record.Timezone,
		Status:          bff.StatusSuccess,
		Version:         bff.Version,
	})
}

// handleQueryHistory godoc
// @Summary Query the stored ISS positions
// @Tags location
// @Produce json
// @Param start_time query string false "RFC 3339 start time"
// @Param end_time query string false "RFC 3339 end time"
// @Param country_code query string false "Two-letter country code" example(US)
// @Param latitude_range query string false "min,max latitude" example(-10,10)
// @Param longitude_range query string false "min,max longitude" example(-180,0)
// @Param limit query int false "Maximum number of results" default(100) maximum(1000)
// @Param order_by query string false "Field to order by" Enums(timestamp, latitude, longitude, country_code)
// @Param order_direction query string false "Sort direction" Enums(ASCENDING, DESCENDING)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/location/history [get]
func (app *App) handleQueryHistory(c *gin.Context) {
	var input QueryHistoryInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		app.respondError(c, apperr.InvalidQueryCause("Invalid query parameters", err))
		return
	}

	filter, err := input.filter()
	if err != nil {
		app.respondError(c, err)
		return
	}

	records, err := app.history.Query(c.Request.Context(), filter)
	if err != nil {
		app.respondError(c, err)
		return
	}
	if records == nil {
		records = []types.HistoryRecord{}
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Locations: records,
		Count:     len(records),
		Status:    bff.StatusSuccess,
		Version:   bff.Version,
	})
}

func (in QueryHistoryInput) filter() (history.Filter, error) {
	var lat, lon *history.Range
	if in.LatitudeRange != "" {
		r, err := history.ParseRange(in.LatitudeRange)
		if err != nil {
			return history.Filter{}, err
		}
		lat = &r
	}
	if in.LongitudeRange != "" {
		r, err := history.ParseRange(in.LongitudeRange)
		if err != nil {
			return history.Filter{}, err
		}
		lon = &r
	}

	return history.Filter{
		Start:       in.StartTime,
		End:         in.EndTime,
		CountryCode: in.CountryCode,
		Bounds:      history.NewBounds(lat, lon),
		OrderBy:     in.OrderBy,
		Direction:   in.OrderDirection,
		Limit:       in.Limit,
	}.Normalize()
}

// handleQueryTimeRange godoc
// @Summary Positions stored in the last minutes
// @Tags location
// @Produce json
// @Param minutes query int false "Window size in minutes" default(60) minimum(1) maximum(1440)
// @Success 200 {object} TimeRangeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/location/time-range [get]
func (app *App) handleQueryTimeRange(c *gin.Context) {
	var input QueryTimeRangeInput
	if err := c.ShouldBindQuery(&input); err != nil {
		app.respondError(c, apperr.InvalidQuery("Minutes parameter must be an integer"))
		return
	}

	minutes := history.ClampMinutes(input.Minutes)
	records, err := app.history.Query(c.Request.Context(), history.TimeRange(minutes, time.Now()))
	if err != nil {
		app.respondError(c, err)
		return
	}
	if records == nil {
		records = []types.HistoryRecord{}
	}

	c.JSON(http.StatusOK, TimeRangeResponse{
		Locations:        records,
		Count:            len(records),
		MinutesRequested: minutes,
		Status:           bff.StatusSuccess,
	})
}

func seconds(d time.Duration) float64 {
	return float64(d.Round(10*time.Millisecond)) / float64(time.Second)
}
