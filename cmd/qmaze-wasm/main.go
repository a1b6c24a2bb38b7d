//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"syscall/js"

	"qmaze/internal/engine"
)

var (
	startFnOnce sync.Once
	trainerMu   sync.Mutex
	trainer     *engine.Trainer
	onEpisode   js.Value
)

func main() {
	var err error
	trainer, err = engine.NewTrainer(engine.Config{})
	if err != nil {
		fmt.Printf("creating trainer: %v\n", err)
		return
	}
	registerCallbacks()
	// Prevent the program from exiting.
	select {}
}

func registerCallbacks() {
	startFnOnce.Do(func() {
		js.Global().Set("qmazeRegisterEpisodeHandler", js.FuncOf(registerEpisodeHandler))
		js.Global().Set("qmazeStartTraining", js.FuncOf(startTraining))
		js.Global().Set("qmazeStopTraining", js.FuncOf(stopTraining))
		js.Global().Set("qmazeToggleWall", js.FuncOf(toggleWall))
		js.Global().Set("qmazeResize", js.FuncOf(resize))
		js.Global().Set("qmazeExtractPath", js.FuncOf(extractPath))
		js.Global().Set("qmazeResetTraining", js.FuncOf(resetTraining))
		js.Global().Set("qmazeResetMaze", js.FuncOf(resetMaze))
		js.Global().Set("qmazeSnapshot", js.FuncOf(snapshot))
	})
}

func registerEpisodeHandler(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 || args[0].Type() != js.TypeFunction {
		fmt.Println("registerEpisodeHandler requires a function argument")
		return nil
	}
	trainerMu.Lock()
	onEpisode = args[0]
	trainerMu.Unlock()
	return nil
}

// startTraining takes a JSON encoded engine.SessionParams and returns an
// error string, or null once the session is running.
func startTraining(this js.Value, args []js.Value) interface{} {
	var params engine.SessionParams
	if len(args) > 0 {
		if err := json.Unmarshal([]byte(args[0].String()), &params); err != nil {
			return fmt.Sprintf("invalid params: %v", err)
		}
	}
	s, err := trainer.Start(context.Background(), params)
	if err != nil {
		return err.Error()
	}

	trainerMu.Lock()
	handler := onEpisode
	trainerMu.Unlock()
	go func() {
		for m := range s.Subscribe() {
			if handler.IsUndefined() || handler.IsNull() {
				continue
			}
			handler.Invoke(toJS(m))
		}
	}()
	return nil
}

func stopTraining(this js.Value, args []js.Value) interface{} {
	if s := trainer.Session(); s != nil {
		s.Stop()
	}
	return nil
}

func toggleWall(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return false
	}
	return trainer.ToggleWall(engine.Position{Row: args[0].Int(), Col: args[1].Int()})
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		return "resize requires a size"
	}
	rows := args[0].Int()
	cols := rows
	if len(args) > 1 {
		cols = args[1].Int()
	}
	if err := trainer.Resize(rows, cols); err != nil {
		return err.Error()
	}
	return nil
}

func extractPath(this js.Value, args []js.Value) interface{} {
	return toJS(trainer.ExtractPath())
}

func resetTraining(this js.Value, args []js.Value) interface{} {
	if err := trainer.ResetTraining(); err != nil {
		return err.Error()
	}
	return nil
}

func resetMaze(this js.Value, args []js.Value) interface{} {
	if err := trainer.ResetMaze(); err != nil {
		return err.Error()
	}
	return nil
}

func snapshot(this js.Value, args []js.Value) interface{} {
	return toJS(trainer.Snapshot())
}

// toJS converts a JSON-tagged value to plain JS objects.
func toJS(v interface{}) js.Value {
	payload, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("encoding payload: %v\n", err)
		return js.Null()
	}
	return js.Global().Get("JSON").Call("parse", string(payload))
}
