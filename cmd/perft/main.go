package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/benbeisheim/chesscore/internal/model"
)

var (
	depth  = flag.Int("depth", 4, "perft depth")
	fen    = flag.String("fen", model.StartFEN, "position to count from")
	divide = flag.Bool("divide", false, "print the node count below each root move")
	draw   = flag.Bool("draw", false, "draw the position before counting")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if *depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", *depth)
	}
	e, err := model.NewEngine(model.WithFEN(*fen))
	if err != nil {
		return err
	}
	if *draw {
		fmt.Println(drawBoard(e))
		fmt.Println()
	}

	p := message.NewPrinter(language.English)
	start := time.Now()
	var nodes uint64
	if *divide {
		counts := model.Divide(e, *depth)
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p.Printf("%s: %d\n", k, counts[k])
			nodes += counts[k]
		}
		p.Printf("\nmoves=%d\n", len(keys))
	} else {
		nodes = model.Perft(e, *depth)
	}
	elapsed := time.Since(start)

	p.Printf("d=%d nodes=%d rate=%dn/s (%.3fs elapsed)\n",
		*depth, nodes, int(float64(nodes)/elapsed.Seconds()), elapsed.Seconds())
	return nil
}
