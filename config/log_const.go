package config

// Component tags attached to every log entry, so interleaved logs from the
// services remain attributable.
const (
	ComponentApp         = "APP"
	ComponentMazeService = "MAZE-SERVICE"
	ComponentAuthService = "AUTH-SERVICE"
	ComponentAPI         = "API"
)
