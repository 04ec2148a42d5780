// Package solve parses solver command flags, runs the search and prints the
// shortest-path report.
package solve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/louisbranch/die-agony/internal/board"
	"github.com/louisbranch/die-agony/internal/boardscript"
	"github.com/louisbranch/die-agony/internal/platform/config"
	platformotel "github.com/louisbranch/die-agony/internal/platform/otel"
	"github.com/louisbranch/die-agony/internal/solver"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds solve command configuration.
type Config struct {
	Board   string `env:"DIE_AGONY_BOARD"`
	Explain bool   `env:"DIE_AGONY_EXPLAIN"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Board, "board", cfg.Board, "path to a Lua board script (empty solves the built-in puzzle)")
	fs.BoolVar(&cfg.Explain, "explain", cfg.Explain, "print the per-step narrative")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the requested board, searches for a shortest roll sequence and
// writes the report to out. An unsolvable board is a reported outcome, not
// an error.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	shutdown, err := platformotel.Setup(ctx, "solve")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(errOut, "otel shutdown: %v\n", err)
		}
	}()

	b := board.Default()
	if cfg.Board != "" {
		if b, err = boardscript.Load(cfg.Board); err != nil {
			return err
		}
	}

	start, _ := b.Start()
	fmt.Fprintf(out, "board %dx%d, start %v, goal %v\n", b.Rows(), b.Cols(), start, b.Goal())

	_, span := otel.Tracer("github.com/louisbranch/die-agony/internal/cmd/solve").Start(ctx, "solve")
	res, err := solver.Solve(b)
	span.SetAttributes(
		attribute.Int("board.rows", b.Rows()),
		attribute.Int("board.cols", b.Cols()),
		attribute.Bool("solve.solved", err == nil),
	)
	if err == nil {
		span.SetAttributes(attribute.Int("solve.rolls", res.Steps()))
	}
	span.End()

	if errors.Is(err, solver.ErrUnsolvable) {
		fmt.Fprintln(out, "no sequence of legal rolls reaches the goal")
		return nil
	}
	if err != nil {
		return err
	}

	writeReport(out, b, res)
	if cfg.Explain {
		for _, step := range solver.Explain(b, res) {
			fmt.Fprintln(out, step.Message)
		}
	}
	return nil
}

// writeReport prints the roll sequence, the coordinate path and, on labeled
// boards, the sum of labels the winning path never touches.
func writeReport(out io.Writer, b board.Board, res solver.Result) {
	if res.Steps() == 0 {
		fmt.Fprintln(out, "solved in 0 rolls")
	} else {
		names := make([]string, len(res.Moves))
		for i, m := range res.Moves {
			names[i] = m.Direction.String()
		}
		noun := "rolls"
		if res.Steps() == 1 {
			noun = "roll"
		}
		fmt.Fprintf(out, "solved in %d %s: %s\n", res.Steps(), noun, strings.Join(names, ", "))
	}

	path := res.Path()
	coords := make([]string, len(path))
	for i, c := range path {
		coords[i] = c.String()
	}
	fmt.Fprintf(out, "path: %s\n", strings.Join(coords, " -> "))

	if sum, ok := b.UnvisitedSum(path); ok {
		fmt.Fprintf(out, "unvisited label sum: %d\n", sum)
	}
}
