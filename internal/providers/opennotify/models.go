package opennotify

// NowAPIResponse is the iss-now.json payload. Coordinates arrive as strings.
type NowAPIResponse struct {
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	ISSPosition struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"iss_position"`
}
