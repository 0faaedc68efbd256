package protocol

// MessageType discriminates inbound viewer messages
type MessageType string

const (
	// MessageData carries a full encoded model that replaces the scene
	MessageData MessageType = "data"
	// MessageUpdates carries changed UI state keys
	MessageUpdates MessageType = "updates"
	// MessageListen registers this process as the measurement backend
	MessageListen MessageType = "listen"
)

// Message is the envelope of an inbound viewer event
type Message struct {
	Type    MessageType `json:"type"`
	Model   string      `json:"model,omitempty"` // base64 payload for data messages
	Changes *Changes    `json:"changes,omitempty"`
}

// Changes is the set of changed UI state keys of an updates message.
// Absent keys are left as nil so unchanged state is distinguishable
// from an explicit update.
type Changes struct {
	ActiveTool       *string  `json:"activeTool,omitempty"`
	SelectedShapeIDs []string `json:"selectedShapeIDs,omitempty"`
}

// Tool name literals as sent by the viewer
const (
	ToolNone       = "None"
	ToolDistance   = "DistanceMeasurement"
	ToolProperties = "PropertiesMeasurement"
	ToolAngle      = "AngleMeasurement"
)

// Arity returns the number of selected shapes a tool requires. The
// second return value is false for unknown tool names, which therefore
// never dispatch.
func Arity(tool string) (int, bool) {
	switch tool {
	case ToolDistance, ToolAngle:
		return 2, true
	case ToolProperties:
		return 1, true
	}
	return 0, false
}
