// Package labyrinth holds the fixed geometry of the second floor: the
// corridor grid, facing and relative directions, junction shapes, and the
// patrol of the haunted armour.
package labyrinth

const (
	// Width is the number of grid columns (x = 0..MaxX).
	Width = 5
	// Height is the number of grid rows (y = 0..MaxY).
	Height = 4

	MaxX = Width - 1
	MaxY = Height - 1
)

// Point is a grid cell. North is +y, east is +x.
type Point struct {
	X int
	Y int
}

var (
	// Start is where the player lands after climbing down the ladder.
	Start = Point{X: 0, Y: 0}

	// Exit is the hatch leading up to the third floor.
	Exit = Point{X: MaxX, Y: MaxY}

	// PursuerStart is where the armour stands when the floor is entered.
	PursuerStart = Point{X: 1, Y: 1}
)

// passages[y][x] reports whether a corridor cell exists.
var passages = [Height][Width]bool{
	{true, true, false, false, false},
	{true, true, true, true, false},
	{true, true, true, true, false},
	{true, true, false, true, true},
}

// InBounds reports whether the point lies on the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x <= MaxX && y >= 0 && y <= MaxY
}

// IsPassable reports whether (x, y) is a corridor cell. Points off the grid
// are never passable.
func IsPassable(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	return passages[y][x]
}

// Passable reports whether the point is a corridor cell.
func (p Point) Passable() bool {
	return IsPassable(p.X, p.Y)
}

// Step returns the neighbouring point one cell along the heading.
// Unfaced has no heading and returns p unchanged.
func (p Point) Step(heading Orientation) Point {
	switch heading {
	case North:
		return Point{X: p.X, Y: p.Y + 1}
	case East:
		return Point{X: p.X + 1, Y: p.Y}
	case South:
		return Point{X: p.X, Y: p.Y - 1}
	case West:
		return Point{X: p.X - 1, Y: p.Y}
	default:
		return p
	}
}

// Compass holds the passability of the four absolute neighbours of a cell.
type Compass struct {
	North bool
	East  bool
	South bool
	West  bool
}

// Neighbors returns which absolute neighbours of (x, y) are passable.
func Neighbors(x, y int) Compass {
	return Compass{
		North: IsPassable(x, y+1),
		East:  IsPassable(x+1, y),
		South: IsPassable(x, y-1),
		West:  IsPassable(x-1, y),
	}
}

// Toward reports whether the neighbour in the given heading is open.
func (c Compass) Toward(heading Orientation) bool {
	switch heading {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return false
	}
}
