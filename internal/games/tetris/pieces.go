package tetris

import "github.com/vovakirdan/termfolio/internal/core"

// Kind is a tetromino type.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
	kindCount
)

func (k Kind) String() string {
	return [...]string{"I", "O", "T", "S", "Z", "J", "L"}[k]
}

var shapes = [kindCount][][]bool{
	KindI: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	KindO: {
		{true, true},
		{true, true},
	},
	KindT: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	KindS: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	KindZ: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	KindJ: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	KindL: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
}

var colors = [kindCount]core.Color{
	KindI: core.ColorPieceCyan,
	KindO: core.ColorPieceYellow,
	KindT: core.ColorPiecePurple,
	KindS: core.ColorPieceGreen,
	KindZ: core.ColorPieceRed,
	KindJ: core.ColorPieceBlue,
	KindL: core.ColorPieceOrange,
}

// Piece is a tetromino placed on the board. X, Y is the top-left corner of
// its shape matrix.
type Piece struct {
	Kind  Kind
	Shape [][]bool
	X, Y  int
	Color core.Color
}

func newPiece(k Kind) Piece {
	src := shapes[k]
	shape := make([][]bool, len(src))
	for i := range src {
		shape[i] = append([]bool(nil), src[i]...)
	}
	return Piece{Kind: k, Shape: shape, Color: colors[k]}
}

// Cells calls fn for every filled board cell of the piece.
func (p Piece) Cells(fn func(x, y int)) {
	for i, row := range p.Shape {
		for j, filled := range row {
			if filled {
				fn(p.X+j, p.Y+i)
			}
		}
	}
}

// rotate returns the shape turned clockwise: transpose, then reverse each row.
func rotate(shape [][]bool) [][]bool {
	size := len(shape)
	rotated := make([][]bool, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}
	for i := range size {
		for j := range size {
			rotated[j][size-1-i] = shape[i][j]
		}
	}
	return rotated
}
