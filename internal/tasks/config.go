package tasks

import "time"

// Config holds configuration for the task queue.
type Config struct {
	// Workers is the number of concurrent task workers.
	Workers int

	// ReleaseAfter is when stuck tasks are released back to the queue.
	ReleaseAfter time.Duration

	// CleanupInterval is how often backlite purges finished tasks.
	CleanupInterval time.Duration
}

// DefaultConfig returns the queue defaults. Audit cleanup is the only workload,
// so one worker is enough.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}
