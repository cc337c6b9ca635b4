package labyrinth

// Orientation is the player's facing on the second floor.
type Orientation int

const (
	Unfaced Orientation = iota // Just arrived, no facing yet
	North
	East
	South
	West
)

// String returns the string representation of an Orientation
func (o Orientation) String() string {
	switch o {
	case Unfaced:
		return "unfaced"
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the five known orientations.
func (o Orientation) Valid() bool {
	return o >= Unfaced && o <= West
}

// ParseOrientation converts a stored orientation number to an Orientation.
func ParseOrientation(n int) (Orientation, bool) {
	o := Orientation(n)
	if !o.Valid() {
		return Unfaced, false
	}
	return o, true
}

// clockwise rotates a compass heading by quarter turns. Unfaced is returned
// unchanged.
func (o Orientation) clockwise(quarters int) Orientation {
	if o < North || o > West {
		return o
	}
	return Orientation((int(o)-1+quarters)%4 + 1)
}

// Move is a direction relative to the player's facing.
type Move int

const (
	Forward Move = iota
	Backward
	Left
	Right
)

// String returns the string representation of a Move
func (m Move) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

var moves = [...]Move{Forward, Backward, Left, Right}

// Heading returns the compass heading taken by a relative move. The result
// is also the player's facing after the move. From Unfaced only forward
// (north) and right (east) lead anywhere; the others return Unfaced.
func Heading(o Orientation, m Move) Orientation {
	if o == Unfaced {
		switch m {
		case Forward:
			return North
		case Right:
			return East
		default:
			return Unfaced
		}
	}
	switch m {
	case Forward:
		return o
	case Right:
		return o.clockwise(1)
	case Backward:
		return o.clockwise(2)
	case Left:
		return o.clockwise(3)
	default:
		return Unfaced
	}
}

// Directions records which relative moves are open.
type Directions struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Has reports whether the move is open.
func (d Directions) Has(m Move) bool {
	switch m {
	case Forward:
		return d.Forward
	case Backward:
		return d.Backward
	case Left:
		return d.Left
	case Right:
		return d.Right
	default:
		return false
	}
}

func (d *Directions) set(m Move, open bool) {
	switch m {
	case Forward:
		d.Forward = open
	case Backward:
		d.Backward = open
	case Left:
		d.Left = open
	case Right:
		d.Right = open
	}
}

// Rotate maps absolute neighbours to directions relative to a facing.
// Facing north: forward=N, right=E, backward=S, left=W; each further
// orientation turns the mapping a quarter clockwise.
func Rotate(o Orientation, c Compass) Directions {
	var d Directions
	if o < North || o > West {
		return d
	}
	for _, m := range moves {
		d.set(m, c.Toward(Heading(o, m)))
	}
	return d
}

// Unrotate is the inverse of Rotate.
func Unrotate(o Orientation, d Directions) Compass {
	var c Compass
	if o < North || o > West {
		return c
	}
	for _, m := range moves {
		switch Heading(o, m) {
		case North:
			c.North = d.Has(m)
		case East:
			c.East = d.Has(m)
		case South:
			c.South = d.Has(m)
		case West:
			c.West = d.Has(m)
		}
	}
	return c
}

// RelativeDirections returns the moves open to a player at (x, y) facing o.
// At the foot of the ladder (Unfaced) forward and right are always open and
// nothing else is.
func RelativeDirections(o Orientation, x, y int) Directions {
	if o == Unfaced {
		return Directions{Forward: true, Right: true}
	}
	return Rotate(o, Neighbors(x, y))
}
