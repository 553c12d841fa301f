package game

// Terrain is the query surface the engine consumes. Map storage and
// generation live behind it; the engine never mutates terrain.
type Terrain interface {
	InBounds(p Position) bool
	IsPassable(p Position) bool
	BlocksLineOfSight(p Position) bool
}

// TerrainKind classifies a board tile.
type TerrainKind int

const (
	TerrainOpen TerrainKind = iota
	// TerrainDust is passable, visual-only ground cover.
	TerrainDust
	// TerrainLimestone blocks movement and line of sight.
	TerrainLimestone
	// TerrainPillar blocks movement and line of sight.
	TerrainPillar
	// TerrainFurniture blocks movement but not line of sight.
	TerrainFurniture
)

// Default board dimensions.
const (
	BoardHeight = 10
	BoardWidth  = 20
)

// Board is a rectangular grid with sparse non-open terrain.
type Board struct {
	Name    string
	Height  int
	Width   int
	terrain map[Position]TerrainKind
}

// NewBoard returns an all-open board of the given size.
func NewBoard(name string, height, width int) *Board {
	return &Board{
		Name:    name,
		Height:  height,
		Width:   width,
		terrain: make(map[Position]TerrainKind),
	}
}

// SetTerrain places a terrain kind on a tile.
func (b *Board) SetTerrain(p Position, k TerrainKind) {
	if k == TerrainOpen {
		delete(b.terrain, p)
		return
	}
	b.terrain[p] = k
}

// TerrainAt returns the kind at a tile; out-of-bounds reads as open.
func (b *Board) TerrainAt(p Position) TerrainKind { return b.terrain[p] }

func (b *Board) InBounds(p Position) bool {
	return p.Y >= 0 && p.Y < b.Height && p.X >= 0 && p.X < b.Width
}

func (b *Board) IsPassable(p Position) bool {
	switch b.terrain[p] {
	case TerrainLimestone, TerrainPillar, TerrainFurniture:
		return false
	}
	return true
}

func (b *Board) BlocksLineOfSight(p Position) bool {
	switch b.terrain[p] {
	case TerrainLimestone, TerrainPillar:
		return true
	}
	return false
}

// LineOfSight reports whether any tile strictly between a and b blocks
// sight, walking a Bresenham line.
func LineOfSight(t Terrain, a, b Position) bool {
	for _, p := range LineBetween(a, b) {
		if p == a || p == b {
			continue
		}
		if t.BlocksLineOfSight(p) {
			return false
		}
	}
	return true
}

// LineBetween returns the Bresenham line from a to b inclusive.
func LineBetween(a, b Position) []Position {
	pts := make([]Position, 0, Dist(a, b)+1)
	dy := abs(b.Y - a.Y)
	dx := abs(b.X - a.X)
	sy, sx := 1, 1
	if a.Y > b.Y {
		sy = -1
	}
	if a.X > b.X {
		sx = -1
	}
	err := dx - dy
	y, x := a.Y, a.X
	for {
		pts = append(pts, Position{Y: y, X: x})
		if y == b.Y && x == b.X {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return pts
}

// LimeFoyerBoard builds the default map: a 10x20 foyer with limestone
// pillars in the middle band and furniture near the entrances.
func LimeFoyerBoard() *Board {
	b := NewBoard("lime_foyer", BoardHeight, BoardWidth)

	// Entry vestibule decor.
	b.SetTerrain(Position{Y: 1, X: 1}, TerrainFurniture)
	b.SetTerrain(Position{Y: 1, X: 18}, TerrainFurniture)
	b.SetTerrain(Position{Y: 8, X: 1}, TerrainFurniture)
	b.SetTerrain(Position{Y: 8, X: 18}, TerrainFurniture)

	// Central pillar cluster.
	b.SetTerrain(Position{Y: 4, X: 9}, TerrainPillar)
	b.SetTerrain(Position{Y: 5, X: 9}, TerrainPillar)
	b.SetTerrain(Position{Y: 4, X: 10}, TerrainPillar)
	b.SetTerrain(Position{Y: 5, X: 10}, TerrainPillar)

	// Limestone formations flanking the center.
	b.SetTerrain(Position{Y: 2, X: 6}, TerrainLimestone)
	b.SetTerrain(Position{Y: 7, X: 6}, TerrainLimestone)
	b.SetTerrain(Position{Y: 2, X: 13}, TerrainLimestone)
	b.SetTerrain(Position{Y: 7, X: 13}, TerrainLimestone)

	// Dust drifts (passable).
	b.SetTerrain(Position{Y: 3, X: 4}, TerrainDust)
	b.SetTerrain(Position{Y: 6, X: 15}, TerrainDust)

	return b
}

// BoardByName returns a board implementation for a stored board name. An
// unknown name falls back to an empty default-size board so that an old
// save never faults.
func BoardByName(name string) *Board {
	switch name {
	case "lime_foyer":
		return LimeFoyerBoard()
	default:
		return NewBoard(name, BoardHeight, BoardWidth)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
