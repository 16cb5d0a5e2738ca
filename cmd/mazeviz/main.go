// Command mazeviz generates a maze, solves it and renders both live in the
// terminal. With -ascii it runs headless and prints the solved maze instead.
//
// Exit code 0 on normal completion; non-zero when the requested dimensions
// are invalid or the terminal cannot be initialized.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/beka-birhanu/labyrinth-api/maze"
	"github.com/beka-birhanu/labyrinth-api/render"
)

func main() {
	rows := flag.Int("rows", 12, "number of maze rows")
	cols := flag.Int("cols", 16, "number of maze columns")
	seed := flag.Int64("seed", 0, "generation seed; 0 means time-based")
	delay := flag.Duration("delay", 25*time.Millisecond, "pause between animation steps")
	ascii := flag.Bool("ascii", false, "skip the terminal animation and print the solved maze")
	flag.Parse()

	if err := run(*rows, *cols, *seed, *delay, *ascii); err != nil {
		fmt.Fprintf(os.Stderr, "mazeviz: %v\n", err)
		os.Exit(1)
	}
}

func run(rows, cols int, seed int64, delay time.Duration, ascii bool) error {
	opts := []maze.Option{}
	if seed != 0 {
		opts = append(opts, maze.WithSeed(seed))
	}

	if ascii {
		return runHeadless(rows, cols, opts)
	}
	return runTerminal(rows, cols, opts, delay)
}

// runHeadless generates, solves and prints the maze without a screen.
func runHeadless(rows, cols int, opts []maze.Option) error {
	m, err := maze.New(rows, cols, opts...)
	if err != nil {
		return err
	}

	if err := m.Generate(); err != nil {
		return err
	}

	solution, err := maze.NewSolver().Solve(context.Background(), m)
	if err != nil {
		return err
	}

	fmt.Print(m.Render(solution.Path))
	if !solution.Solved {
		return fmt.Errorf("no path from entrance to exit")
	}
	return nil
}

// runTerminal animates generation and solving on a tcell screen, then waits
// for a key press before tearing the screen down.
func runTerminal(rows, cols int, opts []maze.Option, delay time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	renderer := render.NewTerminalRenderer(screen, render.Config{
		OffsetX: 1,
		OffsetY: 1,
		Delay:   delay,
	})

	m, err := maze.New(rows, cols, append(opts, maze.WithRenderer(renderer))...)
	if err != nil {
		return err
	}
	renderer.Attach(m)

	if err := m.Generate(); err != nil {
		return err
	}

	solution, err := maze.NewSolver(maze.WithSolverRenderer(renderer)).Solve(context.Background(), m)
	if err != nil {
		return err
	}
	renderer.DrawFrame()

	// Leave the finished maze on screen until a key is pressed.
	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !solution.Solved {
				return fmt.Errorf("no path from entrance to exit")
			}
			return nil
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
