package view

// PointerType names a pointer gesture.
type PointerType string

const (
	PointerDown  PointerType = "down"
	PointerMove  PointerType = "move"
	PointerUp    PointerType = "up"
	PointerWheel PointerType = "wheel"
	PointerLeave PointerType = "leave"
)

// PointerEvent is a pointer gesture in screen coordinates. A down/up pair
// with no movement in between on a node is a click.
type PointerEvent struct {
	Type   PointerType `json:"type"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	DeltaY float64     `json:"deltaY,omitempty"`
}
