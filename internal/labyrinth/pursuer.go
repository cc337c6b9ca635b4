package labyrinth

// AdvancePursuer returns the armour's next position. It walks west along
// row 1, steps up to row 2 at the west wall, walks east along row 2 and
// drops back to row 1 at the east edge. The patrol depends only on the
// armour's previous position.
func AdvancePursuer(p Point) Point {
	if p.Y == 1 {
		if p.X == 0 {
			return Point{X: 0, Y: 2}
		}
		return Point{X: p.X - 1, Y: 1}
	}
	if p.X == MaxX {
		return Point{X: MaxX, Y: 1}
	}
	return Point{X: p.X + 1, Y: 2}
}
