package products

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	ProcessRefAssign    = "assign"
	ProcessRefCreateNew = "create_new"
)

// ProcessRef selects how a product-process gets its process row: either an
// existing process id or an inline new process.
type ProcessRef interface {
	processRefTag() string
}

type AssignProcess struct {
	ProcessID uuid.UUID
}

type CreateProcess struct {
	Process ProcessCreate
}

func (AssignProcess) processRefTag() string { return ProcessRefAssign }
func (CreateProcess) processRefTag() string { return ProcessRefCreateNew }

type ProcessCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProcessPayload is the wire form of a ProcessRef:
//
//	{"type":"assign","process_id":"..."}
//	{"type":"create_new","process":{"name":"...","description":"..."}}
type ProcessPayload struct {
	Ref ProcessRef
}

type processPayloadWire struct {
	Type      string         `json:"type"`
	ProcessID *uuid.UUID     `json:"process_id,omitempty"`
	Process   *ProcessCreate `json:"process,omitempty"`
}

func (p *ProcessPayload) UnmarshalJSON(data []byte) error {
	var w processPayloadWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Type {
	case ProcessRefAssign:
		if w.ProcessID == nil || *w.ProcessID == uuid.Nil {
			return fmt.Errorf("process payload %q requires process_id", w.Type)
		}
		p.Ref = AssignProcess{ProcessID: *w.ProcessID}
	case ProcessRefCreateNew:
		if w.Process == nil {
			return fmt.Errorf("process payload %q requires process", w.Type)
		}
		p.Ref = CreateProcess{Process: *w.Process}
	default:
		return fmt.Errorf("unknown process payload type %q", w.Type)
	}
	return nil
}

func (p ProcessPayload) MarshalJSON() ([]byte, error) {
	switch ref := p.Ref.(type) {
	case AssignProcess:
		return json.Marshal(processPayloadWire{Type: ProcessRefAssign, ProcessID: &ref.ProcessID})
	case CreateProcess:
		return json.Marshal(processPayloadWire{Type: ProcessRefCreateNew, Process: &ref.Process})
	case nil:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unknown process ref %T", ref)
	}
}
