package game

import (
	"fmt"
	"strings"
)

// ActionType is the kind of a ply. It doubles as the phase of a turn: a turn is
// a MoveAction ply followed by a BuildAction ply.
type ActionType int

const (
	MoveAction ActionType = iota
	BuildAction
)

func (t ActionType) String() string {
	switch t {
	case MoveAction:
		return "move"
	case BuildAction:
		return "build"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Direction is one of the 8 compass offsets around a cell.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// Directions lists every direction in canonical order.
var Directions = [8]Direction{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

var directionNames = [8]string{"u", "d", "l", "r", "ul", "ur", "dl", "dr"}

// Offset returns the (row, col) delta of the direction. Rows grow downwards.
func (d Direction) Offset() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case UpLeft:
		return -1, -1
	case UpRight:
		return -1, 1
	case DownLeft:
		return 1, -1
	case DownRight:
		return 1, 1
	default:
		panic(fmt.Sprintf("unknown direction %d", int(d)))
	}
}

// Opposite returns the direction pointing back to the origin cell.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpLeft:
		return DownRight
	case UpRight:
		return DownLeft
	case DownLeft:
		return UpRight
	case DownRight:
		return UpLeft
	default:
		panic(fmt.Sprintf("unknown direction %d", int(d)))
	}
}

func (d Direction) String() string {
	if d < Up || d > DownRight {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Action is a move or a build towards one of the 8 neighbouring cells.
type Action struct {
	Type      ActionType
	Direction Direction
}

func Move(d Direction) Action {
	return Action{Type: MoveAction, Direction: d}
}

func Build(d Direction) Action {
	return Action{Type: BuildAction, Direction: d}
}

func (a Action) String() string {
	return a.Type.String() + " " + a.Direction.String()
}

// ParseAction parses the textual form produced by Action.String, e.g. "move ul".
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return Action{}, fmt.Errorf("malformed action %q: expected \"<move|build> <direction>\"", s)
	}

	var action Action
	switch fields[0] {
	case "move", "m":
		action.Type = MoveAction
	case "build", "b":
		action.Type = BuildAction
	default:
		return Action{}, fmt.Errorf("malformed action %q: unknown action type %q", s, fields[0])
	}

	for i, name := range directionNames {
		if name == fields[1] {
			action.Direction = Direction(i)
			return action, nil
		}
	}
	return Action{}, fmt.Errorf("malformed action %q: unknown direction %q", s, fields[1])
}
