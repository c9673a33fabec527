package request

// WindowRequest selects count rows starting at start.
type WindowRequest struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// DefaultWindow is used when the query omits start or count.
func DefaultWindow() WindowRequest {
	return WindowRequest{Start: 0, Count: 10}
}
