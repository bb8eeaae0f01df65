package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/ecsloop/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int

	// Results
	RunID          string
	TotalUpdates   int64
	FailedTicks    int
	TotalTime      time.Duration
	UpdateTime     Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
	SystemStats    []ecs.SystemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Failing returns the systems that reported at least one error.
func (r *Report) Failing() []ecs.SystemStats {
	var out []ecs.SystemStats
	for _, st := range r.SystemStats {
		if st.FailureCount > 0 {
			out = append(out, st)
		}
	}
	return out
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ecs-stress {{.RunID}}

- **Run ID:** {{.RunID}}
- **Requested:** {{.Duration}} over {{.Entities}} entities, {{.Components}} component types, {{.Systems}} systems

## Ticks
- **Total Ticks:** {{.TotalUpdates}} in {{.TotalTime}}
- **Failed Ticks:** {{.FailedTicks}}
- **Tick Interval:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}

## Per System
{{range .SystemStats}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}, runs {{.ExecutionCount}}, failures {{.FailureCount}}
{{end}}
## Failures
{{with .Failing}}{{range .}}- {{.Name}} failed {{.FailureCount}}x, last: {{.LastError}}
{{end}}{{else}}none
{{end}}
## Heap
- heap {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} bytes ({{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- allocated {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes during the run
- gc cycles {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}{{if .GCPauseMetrics}}, paused {{.MemStatsEnd.PauseTotalNs | ns}} in total{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
