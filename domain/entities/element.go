package entities

// Element represents one interactive element found within a scope
type Element struct {
	Tag         string            `json:"tag"`        // button, a, input, etc.
	Selector    string            `json:"selector"`   // best unique CSS selector
	Text        string            `json:"text"`       // visible text or value
	Attributes  map[string]string `json:"attributes"` // id, name, data-* attributes
	IsVisible   bool              `json:"is_visible"`
	IsClickable bool              `json:"is_clickable"`
}
