package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"

	"qmaze/internal/engine"
)

// parseWalls reads "r,c;r,c" into positions.
func parseWalls(spec string) ([]engine.Position, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var walls []engine.Position
	for _, pair := range strings.Split(spec, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid wall %q: want row,col", pair)
		}
		row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid wall row %q: %w", pair, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid wall col %q: %w", pair, err)
		}
		walls = append(walls, engine.Position{Row: row, Col: col})
	}
	return walls, nil
}

func printMaze(out io.Writer, au aurora.Aurora, m *engine.Maze, path engine.Path) {
	fmt.Fprintln(out, "maze:")
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			pos := engine.Position{Row: r, Col: c}
			switch {
			case pos == m.Start():
				fmt.Fprint(out, au.Bold(au.Cyan(" S ")))
			case pos == m.Goal():
				fmt.Fprint(out, au.Bold(au.Green(" G ")))
			case m.Cell(pos) == engine.CellWall:
				fmt.Fprint(out, au.Gray(12, " # "))
			case path.Contains(pos):
				fmt.Fprint(out, au.Yellow(" * "))
			default:
				fmt.Fprint(out, " . ")
			}
		}
		fmt.Fprintln(out)
	}
}

func printPath(out io.Writer, au aurora.Aurora, path engine.Path) {
	steps := make([]string, len(path.Positions))
	for i, pos := range path.Positions {
		steps[i] = pos.String()
	}
	if path.Reached() {
		fmt.Fprintf(out, "%s %d moves: %s\n", au.Green("path found:"), path.Len()-1, strings.Join(steps, " -> "))
		return
	}
	fmt.Fprintf(out, "%s (%s) %s\n", au.Red("no path found"), path.Status, strings.Join(steps, " -> "))
}
