package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chesscore/internal/model"
)

var (
	rankLabel = color.New(color.Bold)
	lastMove  = color.New(color.BgYellow, color.FgBlack, color.Bold)
	cells     = [2][2]*color.Color{
		// light, dark squares for white pieces
		{color.New(color.BgHiBlack, color.FgHiWhite, color.Bold), color.New(color.BgGreen, color.FgHiWhite, color.Bold)},
		// and for black pieces
		{color.New(color.BgHiBlack, color.FgBlack, color.Bold), color.New(color.BgGreen, color.FgBlack, color.Bold)},
	}
)

var unicodeSymbols = map[model.Kind]string{
	model.KindKing:   "♚",
	model.KindQueen:  "♛",
	model.KindRook:   "♜",
	model.KindBishop: "♝",
	model.KindKnight: "♞",
	model.KindPawn:   "♟",
}

// drawBoard renders e's position from white's side with coloured squares.
func drawBoard(e *model.Engine) string {
	var highlight [2]model.Square
	last, moved := e.LastMove()
	if moved {
		highlight = [2]model.Square{last.From, last.To}
	}

	builder := strings.Builder{}
	for row := 0; row < model.Size; row++ {
		_, _ = builder.WriteString(rankLabel.Sprintf(" %d ", model.Size-row))
		for col := 0; col < model.Size; col++ {
			sq := model.Sq(row, col)
			p := e.At(sq)
			sym := " "
			if !p.IsEmpty() {
				sym = unicodeSymbols[p.Kind]
			}
			c := cells[p.Side][(row+col)%2]
			if moved && (sq == highlight[0] || sq == highlight[1]) {
				c = lastMove
			}
			_, _ = builder.WriteString(c.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for col := 0; col < model.Size; col++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %c ", 'a'+col))
	}
	_, _ = builder.WriteString("\n\n")
	_, _ = builder.WriteString(fmt.Sprintf("%s to move, %s", e.Turn(), e.Status()))
	if e.InCheck() {
		_, _ = builder.WriteString(", check")
	}
	_, _ = builder.WriteString("\n" + e.FEN())
	return builder.String()
}
