package engine

// Ghost is the projected rest placement of the active piece.
type Ghost struct {
	Position Coord
	Cells    [CellsPerShape]Coord // absolute coordinates
}

// Project drops p straight down against g without mutating either and returns the last
// legal placement. The piece's own committed cells are ignored.
func Project(g *Grid, p *Piece) Ghost {
	self := p.Absolute()
	pos := p.Position
	floor := g.Bounds().Floor()

	for row := p.Position.Y; row >= floor; row-- {
		probe := Coord{X: p.Position.X, Y: row}
		if !g.IsValidPlacement(p.Cells, probe, self[:]) {
			break
		}
		pos = probe
	}

	return Ghost{Position: pos, Cells: translate(p.Cells, pos)}
}
