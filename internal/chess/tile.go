package chess

// Tile is one square of a Board, either empty or holding a single piece.
type Tile struct {
	square   Square
	piece    Piece
	occupied bool
}

// emptyTiles holds the 64 shared empty tiles; boards point at these instead
// of allocating their own.
var emptyTiles = initEmptyTiles()

func initEmptyTiles() [NumSquares]*Tile {
	var tiles [NumSquares]*Tile
	for i := range tiles {
		tiles[i] = &Tile{square: Square(i)}
	}
	return tiles
}

func newTile(sq Square, p *Piece) *Tile {
	if p == nil {
		return emptyTiles[sq]
	}
	return &Tile{square: sq, piece: *p, occupied: true}
}

func (t *Tile) Square() Square { return t.square }

func (t *Tile) Occupied() bool { return t.occupied }

// Piece returns the occupant. It is the zero Piece for an empty tile.
func (t *Tile) Piece() Piece { return t.piece }

func (t *Tile) String() string {
	if !t.occupied {
		return "-"
	}
	return string(t.piece.Letter())
}
