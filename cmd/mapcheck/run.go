package main

import (
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/graph-guard/ggmap/pkg/cli"
	"github.com/graph-guard/ggmap/pkg/config"
	"github.com/graph-guard/ggmap/pkg/container"
	"github.com/graph-guard/ggmap/pkg/container/hashmap"
	"github.com/graph-guard/ggmap/pkg/container/treemap"
	"github.com/graph-guard/ggmap/pkg/statistics"
	"github.com/graph-guard/ggmap/pkg/trace"
	"github.com/phuslu/log"
)

// run executes all configured scenarios sequentially.
// Returns false if the configuration couldn't be read
// or any scenario failed.
func run(w io.Writer, filesystem fs.FS, c cli.CommandRun) (ok bool) {
	conf, err := config.ReadConfig(filesystem, ".")
	if err != nil {
		fmt.Fprintf(w, "reading config: %s\n", err)
		return false
	}

	level := conf.LogLevel
	if c.LogLevel != "" {
		level = c.LogLevel
	}

	runID := uuid.New().String()
	l := log.Logger{
		Level:      logLevel(level),
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &log.IOWriter{Writer: w},
		Context:    log.NewContext(nil).Str("run", runID).Value(),
	}

	scenarios := conf.Scenarios
	if c.Scenario != "" {
		scenarios = nil
		for _, s := range conf.Scenarios {
			if s.Name == c.Scenario {
				scenarios = append(scenarios, s)
			}
		}
		if scenarios == nil {
			l.Error().Str("scenario", c.Scenario).Msg("scenario not found")
			return false
		}
	}

	ok = true
	start := time.Now()
	for _, s := range scenarios {
		ls := l
		ls.Context = log.NewContext(nil).
			Str("run", runID).
			Str("scenario", s.Name).
			Str("map", s.Map).Value()
		if !runScenario(ls, s) {
			ok = false
		}
	}

	l.Info().
		Int("scenarios", len(scenarios)).
		Bool("ok", ok).
		Dur("duration", time.Since(start)).
		Msg("finished")
	return ok
}

func runScenario(l log.Logger, s *config.Scenario) (ok bool) {
	var m container.Map[int, int]
	var order trace.Order
	switch s.Map {
	case config.MapHashMap:
		m, order = hashmap.New[int, int](newHasher(s.Hasher)), trace.OrderInsertion
	case config.MapTreeMap:
		m, order = treemap.New[int, int](), trace.OrderAscending
	default:
		l.Error().Msg("unsupported map")
		return false
	}

	l.Debug().
		Int64("seed", s.Seed).
		Int("operations", s.Operations).
		Int("key_space", s.KeySpace).
		Str("order", order.String()).
		Msg("starting trace")

	r, err := trace.Run(m, trace.Options{
		Seed:            s.Seed,
		Operations:      s.Operations,
		KeySpace:        s.KeySpace,
		CheckOrderEvery: s.CheckOrderEvery,
		Order:           order,
	})
	if err != nil {
		l.Error().Err(err).Msg("trace failed")
		return false
	}

	e := l.Info().
		Str("operations", humanize.Comma(int64(r.Operations))).
		Str("inserted", humanize.Comma(int64(r.Inserted))).
		Str("erased", humanize.Comma(int64(r.Erased))).
		Str("len", humanize.Comma(int64(r.FinalLen))).
		Dur("duration", r.Duration)
	if t, isTree := m.(*treemap.Map[int, int]); isTree {
		e = e.Int("height", t.Height())
	}
	e.Msg("trace passed")

	r.Statistics.Visit(func(op statistics.Op, o *statistics.OperationSync) {
		l.Debug().
			Str("op", op.String()).
			Str("calls", humanize.Comma(o.GetCalls())).
			Int64("failures", o.GetFailures()).
			Dur("avg", time.Duration(o.GetAverageTime())).
			Dur("max", time.Duration(o.GetHighestTime())).
			Msg("operation")
	})
	return true
}

func newHasher(name string) hashmap.Hasher[int] {
	if name == config.HasherXXH64 {
		return &hashmap.HasherXXH64[int]{}
	}
	return &hashmap.HasherXXH3[int]{}
}

func logLevel(l string) log.Level {
	switch l {
	case config.LogLevelDebug:
		return log.DebugLevel
	case config.LogLevelWarn:
		return log.WarnLevel
	case config.LogLevelError:
		return log.ErrorLevel
	}
	return log.InfoLevel
}
