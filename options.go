// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package conc

// schedulerOptions holds configuration for NewScheduler.
type schedulerOptions struct {
	logger         Logger
	metricsEnabled bool
	arenaPageSize  int
}

// SchedulerOption configures a Scheduler instance.
type SchedulerOption interface {
	applyScheduler(*schedulerOptions)
}

type schedulerOptionImpl struct {
	applyFunc func(*schedulerOptions)
}

func (o *schedulerOptionImpl) applyScheduler(opts *schedulerOptions) {
	o.applyFunc(opts)
}

// WithLogger sets the Logger the scheduler and HTTP layer report
// through. The default is a no-op logger.
func WithLogger(logger Logger) SchedulerOption {
	return &schedulerOptionImpl{func(opts *schedulerOptions) {
		opts.logger = logger
	}}
}

// WithMetrics enables SchedulerMetrics collection (wait latency, queue
// depths, accepted connections per second). Disabled by default.
func WithMetrics(enabled bool) SchedulerOption {
	return &schedulerOptionImpl{func(opts *schedulerOptions) {
		opts.metricsEnabled = enabled
	}}
}

// WithArenaPageSize sets the page size new fiber arenas start with.
// Defaults to defaultArenaPageSize.
func WithArenaPageSize(size int) SchedulerOption {
	return &schedulerOptionImpl{func(opts *schedulerOptions) {
		opts.arenaPageSize = size
	}}
}

func resolveSchedulerOptions(opts []SchedulerOption) schedulerOptions {
	resolved := schedulerOptions{
		logger:        NewNoOpLogger(),
		arenaPageSize: defaultArenaPageSize,
	}
	for _, o := range opts {
		o.applyScheduler(&resolved)
	}
	return resolved
}

// serverOptions holds configuration for NewServer.
type serverOptions struct {
	maxHeaderBytes int
}

// ServerOption configures a Server instance.
type ServerOption interface {
	applyServer(*serverOptions)
}

type serverOptionImpl struct {
	applyFunc func(*serverOptions)
}

func (o *serverOptionImpl) applyServer(opts *serverOptions) {
	o.applyFunc(opts)
}

// WithMaxHeaderBytes sets the limit on the HTTP prologue (request line
// plus headers). Design note 9 mandates enforcing this explicitly rather
// than silently truncating; defaults to defaultMaxHeaderBytes (2 KiB,
// per spec.md §4.F).
func WithMaxHeaderBytes(n int) ServerOption {
	return &serverOptionImpl{func(opts *serverOptions) {
		opts.maxHeaderBytes = n
	}}
}

func resolveServerOptions(opts []ServerOption) serverOptions {
	resolved := serverOptions{
		maxHeaderBytes: defaultMaxHeaderBytes,
	}
	for _, o := range opts {
		o.applyServer(&resolved)
	}
	return resolved
}
