package handler

import (
	"encoding/json"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext extends Context with SSE streaming capabilities.
// It provides methods to send events, components and signals through an
// established SSE connection. All methods are safe for concurrent use.
type StreamContext interface {
	Context

	// SendEvent writes one named event. The id is omitted when empty and
	// every line of data becomes its own data line, so multi-line HTML
	// reaches the client unchanged.
	//
	// Example:
	//
	//	err := stream.SendEvent("notification", n.ID.String(), fragment)
	SendEvent(name, id, data string) error

	// SendComponent sends a templ component as a Datastar element patch.
	//
	// Example:
	//
	//	err := stream.SendComponent(
	//		views.Entry(entry),
	//		handler.WithTarget("#entries"),
	//		handler.WithPatchMode(handler.PatchAppend),
	//	)
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// SendSignals updates Datastar signals.
	//
	// Example:
	//
	//	err := stream.SendSignals(map[string]any{"entries": 3})
	SendSignals(signals map[string]any) error
}

// streamContext implements StreamContext by wrapping a base Context
// with a Datastar event generator.
type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendEvent(name, id, data string) error {
	var opts []datastar.SSEEventOption
	if id = singleLine(id); id != "" {
		opts = append(opts, datastar.WithSSEEventId(id))
	}
	return c.sse.Send(datastar.EventType(singleLine(name)), dataLines(data), opts...)
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

// dataLines splits data on any line ending. Empty data still yields one
// empty line so the client dispatches the event.
func dataLines(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(data, "\r", "\n"), "\n")
}

// singleLine strips line breaks from fields that must not span lines.
func singleLine(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
