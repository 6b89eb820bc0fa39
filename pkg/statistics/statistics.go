// Package statistics provides synchronized thread-safe counters
// for container operations.
package statistics

import (
	"sync/atomic"
	"time"
)

// Op identifies a container operation.
type Op int8

const (
	OpInsertOrGet Op = iota
	OpSet
	OpGet
	OpContains
	OpErase
	OpVisit
	opCount
)

func (o Op) String() string {
	switch o {
	case OpInsertOrGet:
		return "insert_or_get"
	case OpSet:
		return "set"
	case OpGet:
		return "get"
	case OpContains:
		return "contains"
	case OpErase:
		return "erase"
	case OpVisit:
		return "visit"
	}
	return ""
}

// OperationSync counts calls of a single operation.
type OperationSync struct {
	calls       int64
	failures    int64
	highestTime int64
	averageTime int64
}

// Update records a call that took d.
// failed must be true if the operation returned an error.
func (s *OperationSync) Update(d time.Duration, failed bool) {
	calls := atomic.AddInt64(&s.calls, 1)
	if failed {
		atomic.AddInt64(&s.failures, 1)
	}

	// Highest time
	if int64(d) > atomic.LoadInt64(&s.highestTime) {
		atomic.StoreInt64(&s.highestTime, int64(d))
	}

	// Average time
	curAvgTime := atomic.LoadInt64(&s.averageTime)
	atomic.AddInt64(
		&s.averageTime,
		(int64(d)-curAvgTime)/calls,
	)
}

func (s *OperationSync) GetCalls() int64 {
	return atomic.LoadInt64(&s.calls)
}

func (s *OperationSync) GetFailures() int64 {
	return atomic.LoadInt64(&s.failures)
}

func (s *OperationSync) GetHighestTime() int64 {
	return atomic.LoadInt64(&s.highestTime)
}

func (s *OperationSync) GetAverageTime() int64 {
	return atomic.LoadInt64(&s.averageTime)
}

// ContainerSync holds counters for every operation.
type ContainerSync struct {
	ops [opCount]OperationSync
}

func NewContainerSync() *ContainerSync {
	return &ContainerSync{}
}

// Update records a call of op that took d.
func (s *ContainerSync) Update(op Op, d time.Duration, failed bool) {
	s.ops[op].Update(d, failed)
}

// Get returns the counters of op.
func (s *ContainerSync) Get(op Op) *OperationSync {
	return &s.ops[op]
}

// GetCalls returns the total number of recorded calls.
func (s *ContainerSync) GetCalls() (calls int64) {
	for i := range s.ops {
		calls += s.ops[i].GetCalls()
	}
	return calls
}

// Visit calls fn for every operation that was called at least once.
func (s *ContainerSync) Visit(fn func(Op, *OperationSync)) {
	for i := range s.ops {
		if s.ops[i].GetCalls() > 0 {
			fn(Op(i), &s.ops[i])
		}
	}
}
