// Package workerproto defines the message protocol between the UI
// thread and the background formatting worker (§5): UiCommand flows
// worker-ward, RequestResponse flows back, each tagged with a
// correlation id so the UI can discard stale responses. It is a
// command/event channel pair over the Navigate/NavigateToPath/Search/
// List/ToggleSource command set.
package workerproto

import (
	"github.com/google/uuid"

	"rdoc/internal/docgraph"
	"rdoc/internal/docir"
)

// CommandKind is the closed set of commands the worker accepts (§5).
type CommandKind int

const (
	CommandNavigate CommandKind = iota
	CommandNavigateToPath
	CommandSearch
	CommandList
	CommandToggleSource
)

// UiCommand is sent UI -> worker. Exactly one of the payload fields is
// meaningful, selected by Kind.
type UiCommand struct {
	ID   uuid.UUID
	Kind CommandKind

	NavigateTarget docgraph.Ref // CommandNavigate
	Path           string       // CommandNavigateToPath
	Query          string       // CommandSearch
	AllCrates      bool         // CommandSearch scope
	DefaultCrate   string       // CommandSearch: crate scope when AllCrates is false
	SourceName     string       // CommandToggleSource
}

// NewCommand stamps a fresh correlation id onto cmd.
func NewCommand(kind CommandKind) UiCommand {
	return UiCommand{ID: uuid.New(), Kind: kind}
}

// RequestResponse is sent worker -> UI (§5, §7): carries either a
// rendered Document or an error, tagged with the id of the command it
// answers.
type RequestResponse struct {
	CommandID   uuid.UUID
	Document    []docir.Node
	Suggestions []string
	Err         error
}

// Channels bundles the bounded MPSC transport in each direction (§5:
// "The transport is a bounded MPSC channel in each direction").
type Channels struct {
	Commands  chan UiCommand
	Responses chan RequestResponse
}

// NewChannels builds a bounded channel pair with the given buffer
// depth.
func NewChannels(buffer int) *Channels {
	return &Channels{
		Commands:  make(chan UiCommand, buffer),
		Responses: make(chan RequestResponse, buffer),
	}
}
