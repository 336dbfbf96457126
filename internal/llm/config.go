package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskPlan       TaskType = "plan"
	TaskPrioritize TaskType = "prioritize"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the AI features switched off.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan:       {Temperature: 0.3, MaxTokens: 4096, TimeoutMs: 30000},
			TaskPrioritize: {Temperature: 0.1, MaxTokens: 1024},
		},
	}
}

// TaskTimeout returns the effective timeout in milliseconds for a task,
// falling back to the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
