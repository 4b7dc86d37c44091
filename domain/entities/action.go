package entities

// ActionType represents the kind of UI action a wrapper performs
type ActionType string

const (
	ActionClick        ActionType = "click"
	ActionFill         ActionType = "fill"
	ActionSelectOption ActionType = "select_option"
	ActionReadText     ActionType = "read_text"
)

// Action describes a single wrapped action before it runs
type Action struct {
	Type        ActionType `json:"type"`
	ElementName string     `json:"element_name"`
	Locator     string     `json:"locator"`
	Value       string     `json:"value,omitempty"`
}
