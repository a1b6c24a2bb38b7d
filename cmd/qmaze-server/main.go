// Command qmaze-server hosts the maze trainer behind a REST and
// server-sent-events API.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"qmaze/internal/api"
	"qmaze/internal/api/training"
	"qmaze/internal/config"
	"qmaze/internal/engine"
)

var (
	cfg                config.Config
	trainer            *engine.Trainer
	trainingController api.Controller
	router             *api.Router
	appLogger          *log.Logger
)

func newLogger(prefix, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, prefix, config.ColorReset), log.LstdFlags)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Loading config: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)
	appLogger.Printf("%s[INFO]%s Config loaded", config.LogInfoColor, config.LogColorReset)
}

func initTrainer() {
	var err error
	trainer, err = engine.NewTrainer(
		engine.Config{Rows: cfg.MazeSize, Cols: cfg.MazeSize, Seed: cfg.Seed},
		engine.WithLogger(newLogger("TRAINER", config.ColorCyan)),
	)
	if err != nil {
		appLogger.Printf("%s[ERROR]%s Creating trainer: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Trainer initialized (%dx%d)", config.LogInfoColor, config.LogColorReset,
		trainer.Config().Rows, trainer.Config().Cols)
}

func initTrainingController() {
	trainingController = training.NewController(trainer, newLogger("TRAINING-API", config.ColorMagenta))
	appLogger.Printf("%s[INFO]%s Training controller initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        cfg.Addr(),
		BaseURL:     cfg.BaseURL,
		Controllers: []api.Controller{trainingController},
	})
	appLogger.Printf("%s[INFO]%s Router initialized on %s", config.LogInfoColor, config.LogColorReset, cfg.Addr())
}

func main() {
	appLogger = newLogger("APP", config.ColorBlue)

	initConfig()
	initTrainer()
	initTrainingController()
	initRouter()

	if err := router.Run(); err != nil {
		appLogger.Printf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
}
