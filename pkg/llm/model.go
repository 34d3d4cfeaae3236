package llm

// Model describes a selectable model in the upstream catalog.
// The list is passed through verbatim; no filtering or reordering.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"` // Optional display name
}
