package domain

// EventWithCount is an event annotated with its direct photo count,
// i.e. associations whose event is exactly this node.
type EventWithCount struct {
	Event
	PhotoCount int `json:"photo_count"`
}

type EventTreeNode struct {
	Event
	PhotoCount int              `json:"photo_count"`
	Children   []*EventTreeNode `json:"children"`
}

// EventTree is a nested view of a user's events (or of one subtree).
// Events holds the roots of the requested view; TotalEvents counts every
// node in it.
type EventTree struct {
	Events      []*EventTreeNode `json:"events"`
	TotalEvents int              `json:"total_events"`
}
