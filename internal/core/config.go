package core

import "time"

type RuntimeConfig interface {
	GetRuntimePath() string
	GetEnvPath() string
}

type BatchConfig interface {
	GetBatchDelay() time.Duration
	GetBatchConcurrency() int
}
