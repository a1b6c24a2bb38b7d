package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server configuration values.
type Config struct {
	HostIP   string // Host IP the HTTP server binds to
	RESTPort int    // Port for the REST API
	BaseURL  string // Prefix of every API route
	GinMode  string // Mode for the Gin framework (e.g., release, debug, test)
	MazeSize int    // Side length of the initial maze, 0 for the engine default
	Seed     int64  // Seed of the trainer's random source, 0 for the engine default
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}

// Load reads the configuration from the environment. Files are loaded with
// godotenv first; without arguments it tries ./.env and carries on when it
// is absent.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	port, err := getEnvAsIntWithDefault("QMAZE_PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	size, err := getEnvAsIntWithDefault("QMAZE_SIZE", 0)
	if err != nil {
		return Config{}, err
	}
	seed, err := getEnvAsIntWithDefault("QMAZE_SEED", 0)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HostIP:   getEnvWithDefault("QMAZE_HOST", "0.0.0.0"),
		RESTPort: port,
		BaseURL:  getEnvWithDefault("QMAZE_BASE_URL", "/api"),
		GinMode:  getEnvWithDefault("GIN_MODE", "release"),
		MazeSize: size,
		Seed:     int64(seed),
	}, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an integer environment variable.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}
