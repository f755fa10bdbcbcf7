package types

// Fact is a short generated statement about a place. It is never persisted.
type Fact struct {
	Location string `json:"location"`
	Fact     string `json:"fact"`
}
