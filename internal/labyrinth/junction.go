package labyrinth

// Junction is the narrative shape of the corridor around the player.
type Junction int

const (
	JunctionStart      Junction = iota // Foot of the ladder
	JunctionCrossroads                 // Forward, left and right
	JunctionTeeLeft                    // Forward and left
	JunctionTeeRight                   // Forward and right
	JunctionFork                       // Left and right
	JunctionCorridor                   // Forward only
	JunctionBendLeft                   // Left only
	JunctionBendRight                  // Right only
	JunctionDeadEnd                    // Nothing ahead
)

// String returns the string representation of a Junction
func (j Junction) String() string {
	switch j {
	case JunctionStart:
		return "start"
	case JunctionCrossroads:
		return "crossroads"
	case JunctionTeeLeft:
		return "tee_left"
	case JunctionTeeRight:
		return "tee_right"
	case JunctionFork:
		return "fork"
	case JunctionCorridor:
		return "corridor"
	case JunctionBendLeft:
		return "bend_left"
	case JunctionBendRight:
		return "bend_right"
	case JunctionDeadEnd:
		return "dead_end"
	default:
		return "unknown"
	}
}

// ClassifyJunction buckets an availability pattern. Backward does not
// change the bucket: a player who walked in can always walk back out.
func ClassifyJunction(d Directions) Junction {
	switch {
	case d.Forward && d.Left && d.Right:
		return JunctionCrossroads
	case d.Forward && d.Left:
		return JunctionTeeLeft
	case d.Forward && d.Right:
		return JunctionTeeRight
	case d.Forward:
		return JunctionCorridor
	case d.Left && d.Right:
		return JunctionFork
	case d.Left:
		return JunctionBendLeft
	case d.Right:
		return JunctionBendRight
	default:
		return JunctionDeadEnd
	}
}

// JunctionAt classifies the player's surroundings, treating the foot of the
// ladder as its own shape.
func JunctionAt(o Orientation, x, y int) Junction {
	if o == Unfaced {
		return JunctionStart
	}
	return ClassifyJunction(RelativeDirections(o, x, y))
}
