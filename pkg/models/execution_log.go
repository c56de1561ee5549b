package models

import "time"

// RunStatus is the outcome of an execution or of one of its steps.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusError   RunStatus = "error"
)

// StepLog records the outcome of a single step within an execution.
type StepLog struct {
	Step    string    `json:"step"`
	Status  RunStatus `json:"status"`
	Message string    `json:"message"`
}

// ExecutionLog is a record of one past run of an agent.
type ExecutionLog struct {
	ID        int       `json:"id"`
	AgentID   int       `json:"agentId"`
	Timestamp time.Time `json:"timestamp"`
	Status    RunStatus `json:"status"`
	Duration  int64     `json:"duration"` // milliseconds
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	StepLogs  []StepLog `json:"stepLogs"`
}

// TestRunState tracks the agent builder test-run flow.
type TestRunState string

const (
	TestRunIdle      TestRunState = "idle"
	TestRunRunning   TestRunState = "running"
	TestRunSucceeded TestRunState = "succeeded"
)

// TestRunResult is produced when a test run completes.
type TestRunResult struct {
	Status        RunStatus `json:"status"`
	Message       string    `json:"message"`
	Output        string    `json:"output"`
	ExecutionTime int64     `json:"executionTime"` // milliseconds
	TokensUsed    int       `json:"tokensUsed"`
}
