package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	TotalFailures   int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Enabled        bool
	ExecutionCount int64
	FailureCount   int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
	LastError      string
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	failureCount   int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
	lastError      error
}

type queryExecutor interface {
	Init(storage *Storage)
	Execute()
}

type singletonInitializer interface {
	Init(storage *Storage)
}

type systemEntry struct {
	system  System
	queries []queryExecutor
	stats   *systemStatsInternal
}

// TickReport describes the outcome of one Scheduler.Once call.
type TickReport struct {
	Tick          uint64
	Elapsed       time.Duration
	CommandsRun   int
	SystemsRun    int
	CommandErrors []error
	SystemErrors  []error
}

// Err joins every failure of the tick, or returns nil.
func (r *TickReport) Err() error {
	return errors.Join(append(append([]error(nil), r.CommandErrors...), r.SystemErrors...)...)
}

// Failed reports whether any command or system failed.
func (r *TickReport) Failed() bool {
	return len(r.CommandErrors) > 0 || len(r.SystemErrors) > 0
}

// Scheduler is the system registry. It runs registered systems in
// registration order after draining the command queue.
type Scheduler struct {
	storage  *Storage
	commands *CommandQueue
	logger   *zap.Logger
	entries  []*systemEntry
	ids      map[int]string
	tick     uint64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used to report failing systems and commands.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommandQueue makes the scheduler drain q instead of a private queue.
func WithCommandQueue(q *CommandQueue) SchedulerOption {
	return func(s *Scheduler) {
		if q != nil {
			s.commands = q
		}
	}
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage:  storage,
		commands: NewCommandQueue(),
		logger:   zap.NewNop(),
		ids:      make(map[int]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage returns the entity registry the scheduler operates on.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Commands returns the command queue drained at the start of every tick.
func (s *Scheduler) Commands() *CommandQueue {
	return s.commands
}

// Systems returns the registered systems in registration order.
func (s *Scheduler) Systems() []System {
	out := make([]System, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.system
	}
	return out
}

// Register adds a system to the scheduler and initializes its Query and
// Singleton fields. Systems exposing an Identity must have unique ids.
func (s *Scheduler) Register(system System) error {
	name := systemName(system)
	if ident, ok := system.(identified); ok {
		id := ident.Ident().ID
		if other, dup := s.ids[id]; dup {
			return fmt.Errorf("register %s: id %d already used by %s: %w", name, id, other, ErrDuplicateSystem)
		}
		s.ids[id] = name
	}

	s.entries = append(s.entries, &systemEntry{
		system:  system,
		queries: s.initializeQueries(system),
		stats: &systemStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		},
	})
	s.logger.Debug("system registered", zap.String("system", name), zap.Int("position", len(s.entries)-1))
	return nil
}

func systemName(system System) string {
	if ident, ok := system.(identified); ok && ident.Ident().Name != "" {
		return ident.Ident().Name
	}
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

func (s *Scheduler) initializeQueries(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	systemType := systemValue.Type()
	var queries []queryExecutor

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()

		if strings.HasPrefix(typeName, "Query[") {
			q, ok := field.Addr().Interface().(queryExecutor)
			if !ok {
				panic("Init method not found on Query field: " + fieldType.Name)
			}
			q.Init(s.storage)
			queries = append(queries, q)
			continue
		}

		if strings.HasPrefix(typeName, "Singleton[") {
			single, ok := field.Addr().Interface().(singletonInitializer)
			if !ok {
				panic("Init method not found on Singleton field: " + fieldType.Name)
			}
			single.Init(s.storage)
		}
	}

	return queries
}

// Once runs one tick body: it flushes the command queue, then executes every
// enabled system in registration order with the previous tick's duration.
// Failures are isolated per command and per system, logged, and returned in
// the report; they never stop the tick.
func (s *Scheduler) Once(elapsed time.Duration) *TickReport {
	s.tick++
	report := &TickReport{Tick: s.tick, Elapsed: elapsed}

	report.CommandsRun, report.CommandErrors = s.commands.Flush()
	for _, err := range report.CommandErrors {
		s.logger.Error("command failed", zap.Uint64("tick", s.tick), zap.Error(err))
	}

	frame := newUpdateFrame(s.tick, elapsed, s.storage, s.commands)

	for _, entry := range s.entries {
		if t, ok := entry.system.(toggleable); ok && !t.Enabled() {
			continue
		}

		start := time.Now()
		err := runSystem(entry, frame)
		duration := time.Since(start)

		stats := entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
		report.SystemsRun++

		if err != nil {
			stats.failureCount++
			stats.lastError = err
			sysErr := &SystemError{System: stats.name, Tick: s.tick, Err: err}
			report.SystemErrors = append(report.SystemErrors, sysErr)
			s.logger.Error("system update failed",
				zap.String("system", stats.name),
				zap.Uint64("tick", s.tick),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
		}
	}

	return report
}

func runSystem(entry *systemEntry, frame *UpdateFrame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverAsError(r)
		}
	}()
	for _, q := range entry.queries {
		q.Execute()
	}
	return entry.system.Execute(frame)
}

// Ticks returns the number of ticks run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.entries)),
	}

	var totalExecs, totalFailures int64
	for i, entry := range s.entries {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		enabled := true
		if t, ok := entry.system.(toggleable); ok {
			enabled = t.Enabled()
		}

		lastError := ""
		if internal.lastError != nil {
			lastError = internal.lastError.Error()
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Enabled:        enabled,
			ExecutionCount: internal.executionCount,
			FailureCount:   internal.failureCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
			LastError:      lastError,
		}
		totalExecs += internal.executionCount
		totalFailures += internal.failureCount
	}

	stats.TotalExecutions = totalExecs
	stats.TotalFailures = totalFailures
	return stats
}
