package engine

import "fmt"

// Command is a discrete player request consumed once per invocation.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdHardDrop
	CmdRotateClockwise
	CmdRotateCounterClockwise
)

var commandNames = map[Command]string{
	CmdNone:                   "none",
	CmdMoveLeft:               "left",
	CmdMoveRight:              "right",
	CmdSoftDrop:               "soft_drop",
	CmdHardDrop:               "hard_drop",
	CmdRotateClockwise:        "rotate_cw",
	CmdRotateCounterClockwise: "rotate_ccw",
}

// String returns the wire name of the command.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// MarshalText encodes the command by name, keeping replays readable.
func (c Command) MarshalText() ([]byte, error) {
	name, ok := commandNames[c]
	if !ok {
		return nil, fmt.Errorf("engine: unknown command %d", int(c))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a command name.
func (c *Command) UnmarshalText(text []byte) error {
	s := string(text)
	for cmd, name := range commandNames {
		if name == s {
			*c = cmd
			return nil
		}
	}
	return fmt.Errorf("engine: unknown command %q", s)
}
