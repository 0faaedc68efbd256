package backend

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"viewer-backend/internal/comms"
	"viewer-backend/internal/logger"
	"viewer-backend/internal/protocol"
	"viewer-backend/pkg/analysis"
	"viewer-backend/pkg/model"
)

// Backend owns the event loop state: the current scene and the active
// measurement tool. Both are only ever written from the single
// event-handling path, so no synchronization is needed.
type Backend struct {
	port       int
	scene      *model.Scene
	activeTool string

	send func(v any, port int) error
	log  *logrus.Entry
}

// New creates a backend for the viewer listening on the given port
func New(port int) *Backend {
	return &Backend{
		port: port,
		send: comms.SendResponse,
		log:  logger.Named("backend"),
	}
}

// Run connects to the viewer and processes events until the connection
// closes
func (b *Backend) Run() error {
	b.log.WithField("port", b.port).Info("viewer backend started")
	return comms.Listen(b.port, b.HandleEvent)
}

// HandleEvent is the single entry point for inbound events. It is a
// blanket error boundary: a failing handler is logged with its stack
// context and the event loop resumes. State mutation happens only
// through atomic replacement, so a failed event never leaves the scene
// or tool state corrupted.
func (b *Backend) HandleEvent(msg *protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("panic", r).
				WithField("stack", string(debug.Stack())).
				Error("event handler panicked, backend still running")
		}
	}()

	if err := b.handle(msg); err != nil {
		b.log.WithError(err).Error("event handling failed, backend still running")
	}
}

func (b *Backend) handle(msg *protocol.Message) error {
	switch msg.Type {
	case protocol.MessageData:
		return b.loadModel(msg.Model)

	case protocol.MessageUpdates:
		if msg.Changes == nil {
			return nil
		}
		b.updateTool(msg.Changes)
		if b.activeTool == "" {
			return nil
		}
		return b.dispatchSelection(msg.Changes)
	}

	b.log.WithField("type", msg.Type).Debug("ignoring unknown message type")
	return nil
}

// loadModel replaces the scene with the decoded payload
func (b *Backend) loadModel(raw string) error {
	scene, err := model.Decode([]byte(raw))
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	b.scene = scene
	b.log.WithField("shapes", scene.Len()).Info("model loaded")
	return nil
}

// updateTool applies an activeTool change. Tool names are accepted
// permissively: an unknown name is stored but never matches a dispatch
// arity, so selections under it are silent no-ops.
func (b *Backend) updateTool(changes *protocol.Changes) {
	if changes.ActiveTool == nil {
		return
	}
	name := *changes.ActiveTool
	if name == protocol.ToolNone {
		b.activeTool = ""
		return
	}
	if _, known := protocol.Arity(name); !known {
		b.log.WithField("tool", name).Warn("unrecognized measurement tool")
	}
	b.activeTool = name
}

// dispatchSelection routes a selection change to the handler of the
// active tool, but only when the selection count matches the tool's
// arity. Mismatched counts are silently ignored.
func (b *Backend) dispatchSelection(changes *protocol.Changes) error {
	ids := changes.SelectedShapeIDs
	if ids == nil {
		return nil
	}

	arity, known := protocol.Arity(b.activeTool)
	if !known || len(ids) != arity {
		return nil
	}

	switch b.activeTool {
	case protocol.ToolDistance:
		return b.handleDistance(ids[0], ids[1])
	case protocol.ToolProperties:
		return b.handleProperties(ids[0])
	case protocol.ToolAngle:
		return b.handleAngle(ids[0], ids[1])
	}
	return nil
}

func (b *Backend) handleProperties(id string) error {
	shape, err := b.scene.Get(id)
	if err != nil {
		return err
	}
	response, err := analysis.Properties(shape)
	if err != nil {
		return err
	}
	return b.emit(response)
}

func (b *Backend) handleDistance(id1, id2 string) error {
	shape1, err := b.scene.Get(id1)
	if err != nil {
		return err
	}
	shape2, err := b.scene.Get(id2)
	if err != nil {
		return err
	}
	return b.emit(analysis.Distance(shape1, shape2))
}

func (b *Backend) handleAngle(id1, id2 string) error {
	shape1, err := b.scene.Get(id1)
	if err != nil {
		return err
	}
	shape2, err := b.scene.Get(id2)
	if err != nil {
		return err
	}
	response, err := analysis.Angle(shape1, shape2)
	if err != nil {
		return err
	}
	return b.emit(response)
}

// emit sends a response record back to the viewer. Fire and forget: no
// acknowledgment is awaited and failures surface to the error boundary.
func (b *Backend) emit(response protocol.Response) error {
	if err := b.send(response, b.port); err != nil {
		return fmt.Errorf("send response: %w", err)
	}
	b.log.WithField("tool", b.activeTool).Info("response sent")
	return nil
}
