// Package session models the per-turn state the voice platform echoes back
// to the skill, and converts it to and from the platform's attribute map.
package session

import "github.com/mysterioushouse/server/internal/labyrinth"

// Floor identifies which part of the house is in play.
type Floor int

const (
	FloorOneNumber   Floor = 1
	FloorTwoNumber   Floor = 2
	FloorThreeNumber Floor = 3
)

// Valid reports whether f names one of the three floors.
func (f Floor) Valid() bool {
	return f >= FloorOneNumber && f <= FloorThreeNumber
}

// State is the session state of exactly one floor.
type State interface {
	Floor() Floor
}

// Room is a position on the first floor.
type Room int

const (
	BarrysRoom Room = iota
	EntranceHall
	LarrysRoom
)

// String returns the string representation of a Room
func (r Room) String() string {
	switch r {
	case BarrysRoom:
		return "barry"
	case EntranceHall:
		return "hall"
	case LarrysRoom:
		return "larry"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the three rooms.
func (r Room) Valid() bool {
	return r >= BarrysRoom && r <= LarrysRoom
}

// FloorOne is the entrance floor with the two ghosts.
type FloorOne struct {
	Position      Room
	VisitedBarry  bool
	VisitedLarry  bool
	SpokenToBarry bool
	SpokenToLarry bool
	// LarryAsking is set only while Larry waits for a yes or no about
	// Barry's permission.
	LarryAsking bool
}

// Floor implements State.
func (FloorOne) Floor() Floor { return FloorOneNumber }

// NewFloorOne returns the state of a player who has just arrived.
func NewFloorOne() FloorOne {
	return FloorOne{Position: EntranceHall}
}

// FloorTwo is the dark corridor maze patrolled by the armour.
type FloorTwo struct {
	Player  labyrinth.Point
	Facing  labyrinth.Orientation
	Pursuer labyrinth.Point
}

// Floor implements State.
func (FloorTwo) Floor() Floor { return FloorTwoNumber }

// NewFloorTwo returns the state at the foot of the ladder.
func NewFloorTwo() FloorTwo {
	return FloorTwo{
		Player:  labyrinth.Start,
		Facing:  labyrinth.Unfaced,
		Pursuer: labyrinth.PursuerStart,
	}
}

// FloorThree is the sealed room with the two treats. It has no fields.
type FloorThree struct{}

// Floor implements State.
func (FloorThree) Floor() Floor { return FloorThreeNumber }

// Initial returns the starting state of a floor.
func Initial(f Floor) State {
	switch f {
	case FloorTwoNumber:
		return NewFloorTwo()
	case FloorThreeNumber:
		return FloorThree{}
	default:
		return NewFloorOne()
	}
}
