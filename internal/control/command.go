package control

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Protocol errors. All of them are local to the offending request: the
// connection stays open and no shared state changes.
var (
	ErrMalformed       = errors.New("malformed command")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownProperty = errors.New("unknown property")
)

// request is the wire form: one JSON object per line with a positional
// command array, e.g. {"command":["set_property","speed",1.5]}.
type request struct {
	Command []json.RawMessage `json:"command"`
}

// SetProperty is the one recognized command variant.
type SetProperty struct {
	Name  string
	Value float64
}

// parseCommand decodes one request line into a typed command. Unknown
// command names and malformed payloads are rejected rather than ignored.
func parseCommand(line []byte) (SetProperty, error) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return SetProperty{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(req.Command) == 0 {
		return SetProperty{}, fmt.Errorf("%w: empty command array", ErrMalformed)
	}
	var name string
	if err := json.Unmarshal(req.Command[0], &name); err != nil {
		return SetProperty{}, fmt.Errorf("%w: command name is not a string", ErrMalformed)
	}
	switch name {
	case "set_property":
		if len(req.Command) != 3 {
			return SetProperty{}, fmt.Errorf("%w: set_property takes 2 arguments", ErrMalformed)
		}
		var cmd SetProperty
		if err := json.Unmarshal(req.Command[1], &cmd.Name); err != nil {
			return SetProperty{}, fmt.Errorf("%w: property name is not a string", ErrMalformed)
		}
		if err := json.Unmarshal(req.Command[2], &cmd.Value); err != nil {
			return SetProperty{}, fmt.Errorf("%w: property value is not a number", ErrMalformed)
		}
		return cmd, nil
	default:
		return SetProperty{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

// reply is the per-request acknowledgement line. "success" mirrors the
// mpv-style IPC convention; anything else is the failure reason.
type reply struct {
	Error string `json:"error"`
}

func successReply() reply { return reply{Error: "success"} }

func errorReply(err error) reply { return reply{Error: err.Error()} }
