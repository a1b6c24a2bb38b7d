package engine

import (
	"context"
	"math/rand"
	"testing"
)

func BenchmarkEpisode(b *testing.B) {
	m, _ := NewMaze(6, 6, DefaultRewards())
	m.ToggleWall(Position{Row: 2, Col: 2})
	m.ToggleWall(Position{Row: 3, Col: 1})
	q := NewQTable(6, 6)
	rng := rand.New(rand.NewSource(99))
	params := DefaultSessionParams()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunEpisode(m, q, params, 0.2, rng)
	}
}

func BenchmarkSession(b *testing.B) {
	params := SessionParams{Alpha: 0.2, Gamma: 0.9, Epsilon: 0.3, Episodes: 200, MaxSteps: 100}
	for i := 0; i < b.N; i++ {
		trainer, err := NewTrainer(Config{Rows: 6, Cols: 6, Seed: 99})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := trainer.Train(context.Background(), params); err != nil {
			b.Fatal(err)
		}
	}
}
