// Command chess plays a game on the terminal, reading moves such as "e2 e4"
// from standard input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

func main() {
	fen := flag.String("fen", "", "start from this FEN position instead of the standard one")
	flag.Parse()

	board := chess.NewStandardBoard()
	if *fen != "" {
		var err error
		if board, err = chess.ParseFEN(*fen); err != nil {
			log.Fatalf("parse FEN: %v", err)
		}
	}

	if err := play(board, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// play runs the game loop until the game ends or in is exhausted.
func play(board *chess.Board, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, board)

	for {
		player := board.CurrentPlayer()
		switch player.Status() {
		case chess.StatusCheckmate:
			fmt.Fprintf(out, "checkmate, %s wins\n", player.Side().Opponent())
			return nil
		case chess.StatusStalemate:
			fmt.Fprintln(out, "stalemate")
			return nil
		case chess.StatusCheck:
			fmt.Fprintf(out, "%s is in check\n", player.Side())
		}

		fmt.Fprintf(out, "%s to move: ", player.Side())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			fmt.Fprintln(out, `enter a move as "from to", e.g. "e2 e4"`)
			continue
		}
		from, err := chess.ParseSquare(fields[0])
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		to, err := chess.ParseSquare(fields[1])
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		transition := player.AttemptMove(chess.FindMove(board, from, to))
		switch transition.Status {
		case chess.MoveIllegal:
			fmt.Fprintf(out, "%s %s is not a legal move\n", from, to)
			continue
		case chess.MoveLeavesPlayerInCheck:
			fmt.Fprintf(out, "%s %s leaves your king in check\n", from, to)
			continue
		}

		board = transition.To
		fmt.Fprintf(out, "%s\n%s", chess.Notation(transition), board)
	}
}
