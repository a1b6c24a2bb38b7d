package training

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qmaze/internal/config"
	"qmaze/internal/engine"
)

// Controller serves the trainer's edit, training, query and reset endpoints.
type Controller struct {
	trainer  *engine.Trainer
	logger   *log.Logger
	sessions map[uuid.UUID]*engine.Session
	sync.RWMutex
}

// NewController creates a Controller around trainer. A nil logger discards output.
func NewController(trainer *engine.Trainer, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		trainer:  trainer,
		logger:   logger,
		sessions: make(map[uuid.UUID]*engine.Session),
	}
}

// Register registers the routes.
func (c *Controller) Register(route *gin.RouterGroup) {
	route.GET("/state", c.state)

	sessions := route.Group("/sessions")
	{
		sessions.POST("", c.startSession)
		sessions.GET("/:ID", c.sessionInfo)
		sessions.GET("/:ID/events", c.sessionEvents)
		sessions.DELETE("/:ID", c.stopSession)
	}

	maze := route.Group("/maze")
	{
		maze.POST("/walls", c.toggleWall)
		maze.PUT("/size", c.resize)
	}

	route.POST("/path", c.extractPath)
	route.GET("/path", c.lastPath)

	reset := route.Group("/reset")
	{
		reset.POST("/training", c.resetTraining)
		reset.POST("/maze", c.resetMaze)
	}
}

// state returns the full trainer snapshot.
func (c *Controller) state(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.trainer.Snapshot())
}

// startSession launches a training session.
func (c *Controller) startSession(ctx *gin.Context) {
	var request SessionRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// the session outlives the request
	s, err := c.trainer.Start(context.Background(), request.params(c.trainer.Config().Defaults))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	c.Lock()
	c.sessions[s.ID] = s
	c.Unlock()
	c.logger.Printf("%s[INFO]%s started session %s", config.LogInfoColor, config.LogColorReset, s.ID)

	ctx.JSON(http.StatusAccepted, sessionResponse(s))
}

func (c *Controller) lookup(ctx *gin.Context) (*engine.Session, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	c.RLock()
	s, ok := c.sessions[ID]
	c.RUnlock()
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return nil, false
	}
	return s, true
}

// sessionInfo reports the progress of a session.
func (c *Controller) sessionInfo(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, sessionResponse(s))
}

// sessionEvents streams episode metrics as server-sent events, replaying
// completed episodes first, and ends with a "done" event.
func (c *Controller) sessionEvents(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	episodes := s.Subscribe()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case m, open := <-episodes:
			if !open {
				ctx.SSEvent("done", sessionResponse(s))
				return false
			}
			ctx.SSEvent("episode", m)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// stopSession asks a session to stop after its current episode.
func (c *Controller) stopSession(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	s.Stop()
	ctx.Status(http.StatusAccepted)
}

// toggleWall flips a wall; edits on start, goal or during training are ignored.
func (c *Controller) toggleWall(ctx *gin.Context) {
	var request WallRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	toggled := c.trainer.ToggleWall(engine.Position{Row: *request.Row, Col: *request.Col})
	ctx.JSON(http.StatusOK, &WallResponse{Toggled: toggled, Walls: c.trainer.Maze().Walls()})
}

// resize replaces the maze and table with new dimensions.
func (c *Controller) resize(ctx *gin.Context) {
	var request SizeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Cols == 0 {
		request.Cols = request.Rows
	}
	if err := c.trainer.Resize(request.Rows, request.Cols); err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.trainer.Snapshot())
}

func (c *Controller) extractPath(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.trainer.ExtractPath())
}

func (c *Controller) lastPath(ctx *gin.Context) {
	p, ok := c.trainer.LastPath()
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no path extracted since the last edit"})
		return
	}
	ctx.JSON(http.StatusOK, p)
}

func (c *Controller) resetTraining(ctx *gin.Context) {
	if err := c.trainer.ResetTraining(); err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) resetMaze(ctx *gin.Context) {
	if err := c.trainer.ResetMaze(); err != nil {
		c.writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrSessionActive):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrInvalidParams), errors.Is(err, engine.ErrInvalidSize):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.logger.Printf("%s[ERROR]%s %v", config.LogErrorColor, config.LogColorReset, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func sessionResponse(s *engine.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:       s.ID,
		Params:   s.Params,
		Running:  true,
		Episodes: len(s.Episodes()),
	}
	select {
	case <-s.Done():
		res := s.Wait()
		resp.Running = false
		resp.Episodes = res.Episodes
		resp.Stopped = res.Stopped
	default:
	}
	return resp
}
