package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/logrusorgru/aurora"

	"qmaze/internal/engine"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "qmaze: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errors.New("missing subcommand; try 'train'")
	}

	subcommand := args[0]
	switch subcommand {
	case "train":
		return runTrain(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand %q", subcommand)
	}
}

type trainOptions struct {
	rows      int
	cols      int
	episodes  int
	sessions  int
	seed      int64
	epsilon   float64
	alpha     float64
	gamma     float64
	maxSteps  int
	pathSteps int
	walls     string
	verbose   bool
	color     bool
}

func parseTrainFlags(args []string) (trainOptions, error) {
	var opts trainOptions
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	size := fs.Int("size", engine.DefaultMazeSize, "maze side length (overridden by -rows/-cols)")
	fs.IntVar(&opts.rows, "rows", 0, "maze rows")
	fs.IntVar(&opts.cols, "cols", 0, "maze columns")
	fs.IntVar(&opts.episodes, "episodes", engine.DefaultEpisodes, "episodes per session")
	fs.IntVar(&opts.sessions, "sessions", 1, "number of consecutive sessions")
	fs.Int64Var(&opts.seed, "seed", 0, "deterministic seed (0 for default)")
	fs.Float64Var(&opts.epsilon, "epsilon", engine.DefaultEpsilon, "initial exploration rate of each session (0-1)")
	fs.Float64Var(&opts.alpha, "alpha", engine.DefaultAlpha, "learning rate (0-1]")
	fs.Float64Var(&opts.gamma, "gamma", engine.DefaultGamma, "discount factor [0-1)")
	fs.IntVar(&opts.maxSteps, "max-steps", engine.DefaultMaxSteps, "step cap per episode")
	fs.IntVar(&opts.pathSteps, "path-steps", engine.DefaultPathMaxSteps, "step cap of the greedy path")
	fs.StringVar(&opts.walls, "walls", "", "walls as row,col pairs separated by ';'")
	fs.BoolVar(&opts.verbose, "v", false, "print every episode")
	fs.BoolVar(&opts.color, "color", true, "colorize output")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.rows == 0 {
		opts.rows = *size
	}
	if opts.cols == 0 {
		opts.cols = *size
	}
	if opts.sessions <= 0 {
		return opts, fmt.Errorf("sessions must be positive (got %d)", opts.sessions)
	}
	if opts.pathSteps <= 0 {
		return opts, fmt.Errorf("path-steps must be positive (got %d)", opts.pathSteps)
	}
	return opts, nil
}

func runTrain(args []string, out io.Writer) error {
	opts, err := parseTrainFlags(args)
	if err != nil {
		return err
	}
	walls, err := parseWalls(opts.walls)
	if err != nil {
		return err
	}
	params := engine.SessionParams{
		Alpha:    opts.alpha,
		Gamma:    opts.gamma,
		Epsilon:  opts.epsilon,
		Episodes: opts.episodes,
		MaxSteps: opts.maxSteps,
	}
	if err := params.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(out, "train config => maze=%dx%d sessions=%d episodes=%d seed=%d epsilon=%.2f alpha=%.2f gamma=%.2f\n",
		opts.rows, opts.cols, opts.sessions, opts.episodes, opts.seed, opts.epsilon, opts.alpha, opts.gamma)

	trainer, err := engine.NewTrainer(engine.Config{
		Rows:         opts.rows,
		Cols:         opts.cols,
		Seed:         opts.seed,
		PathMaxSteps: opts.pathSteps,
		Defaults:     params,
	})
	if err != nil {
		return err
	}
	for _, w := range walls {
		if !trainer.ToggleWall(w) {
			return fmt.Errorf("cannot place wall at %v", w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for i := 0; i < opts.sessions; i++ {
		s, err := trainer.Start(ctx, params)
		if err != nil {
			return err
		}
		for m := range s.Subscribe() {
			if opts.verbose {
				fmt.Fprintf(out, "episode %d: reward=%.2f steps=%d epsilon=%.3f outcome=%s\n",
					m.Episode+1, m.TotalReward, m.Steps, m.Epsilon, m.Outcome)
			}
		}
		res := s.Wait()
		printSummary(out, i+1, s.Episodes())
		if res.Stopped {
			fmt.Fprintln(out, "training interrupted")
			break
		}
	}

	au := aurora.NewAurora(opts.color)
	engine.WriteStateValues(out, trainer.Table().StateValues(trainer.Maze()))
	path := trainer.ExtractPath()
	printMaze(out, au, trainer.Maze(), path)
	printPath(out, au, path)
	return nil
}

func printSummary(out io.Writer, session int, episodes []engine.EpisodeMetrics) {
	if len(episodes) == 0 {
		fmt.Fprintf(out, "session %d: no episodes\n", session)
		return
	}
	var cumulativeReward float64
	var cumulativeSteps int
	successCount := 0
	for _, m := range episodes {
		cumulativeReward += m.TotalReward
		cumulativeSteps += m.Steps
		if m.ReachedGoal() {
			successCount++
		}
	}
	n := float64(len(episodes))
	fmt.Fprintf(out, "session %d summary: episodes=%d avg_reward=%.2f avg_steps=%.2f success_rate=%.2f\n",
		session, len(episodes), cumulativeReward/n, float64(cumulativeSteps)/n, float64(successCount)/n)
}
