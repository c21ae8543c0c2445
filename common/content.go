package common

// Payload is the content presented by one body while it is hovered.
type Payload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
}
