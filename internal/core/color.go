package core

// Color names a theme token rather than a concrete color.
// Games tag draw commands with tokens; backends resolve them through the
// active theme palette at paint time.
type Color string

// Theme tokens used by games and the terminal.
const (
	ColorDefault    Color = ""
	ColorBackground Color = "background"
	ColorSurface    Color = "surface"
	ColorText       Color = "text"
	ColorMuted      Color = "muted"
	ColorAccent     Color = "accent"
	ColorAccentAlt  Color = "accent-alt"
	ColorDanger     Color = "danger"
	ColorSuccess    Color = "success"
	ColorWarning    Color = "warning"

	// Piece colors, shared by tetrominoes and breakout brick rows.
	ColorPieceCyan   Color = "piece-cyan"
	ColorPieceYellow Color = "piece-yellow"
	ColorPiecePurple Color = "piece-purple"
	ColorPieceGreen  Color = "piece-green"
	ColorPieceRed    Color = "piece-red"
	ColorPieceBlue   Color = "piece-blue"
	ColorPieceOrange Color = "piece-orange"
)

// PieceColors lists the piece tokens in a stable order.
var PieceColors = []Color{
	ColorPieceCyan,
	ColorPieceYellow,
	ColorPiecePurple,
	ColorPieceGreen,
	ColorPieceRed,
	ColorPieceBlue,
	ColorPieceOrange,
}

// Tokens returns every named token, in declaration order.
func Tokens() []Color {
	base := []Color{
		ColorBackground, ColorSurface, ColorText, ColorMuted,
		ColorAccent, ColorAccentAlt, ColorDanger, ColorSuccess, ColorWarning,
	}
	return append(base, PieceColors...)
}
