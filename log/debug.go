package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DebugEnv enables debug tracing when set to "1".
const DebugEnv = "CALLSTRIP_DEBUG"

var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "callstrip-debug.log")

// InitDebug initializes debug logging if CALLSTRIP_DEBUG=1 is set.
func InitDebug() {
	if os.Getenv(DebugEnv) != "1" {
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		debugLogFile = nil
		fmt.Println("wrote debug logs to " + debugLogFileName)
	}
}

func tracef(tag, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("["+tag+"] "+format, v...)
	}
}

// LayoutTrace logs dimension recomputation.
func LayoutTrace(format string, v ...interface{}) {
	tracef("LAYOUT", format, v...)
}

// WindowTrace logs visible window moves and clamps.
func WindowTrace(format string, v ...interface{}) {
	tracef("WINDOW", format, v...)
}

// InputTrace logs key, mouse and resize handling.
func InputTrace(format string, v ...interface{}) {
	tracef("INPUT", format, v...)
}

// RenderProfiler tracks rendering performance metrics.
type RenderProfiler struct {
	mu           sync.Mutex
	components   map[string]*ComponentMetrics
	frameCount   int64
	totalTime    time.Duration
	frameTimings []time.Duration
}

// ComponentMetrics tracks metrics for a single component.
type ComponentMetrics struct {
	Name        string
	RenderCount int64
	TotalTime   time.Duration
	MaxTime     time.Duration
}

const frameWindow = 100

var profiler = &RenderProfiler{
	components:   make(map[string]*ComponentMetrics),
	frameTimings: make([]time.Duration, 0, frameWindow),
}

// GetProfiler returns the global render profiler.
func GetProfiler() *RenderProfiler {
	return profiler
}

// StartRender begins timing a component render.
// Returns a function to call when render completes.
func (p *RenderProfiler) StartRender(component string) func() {
	if !DebugEnabled {
		return func() {}
	}

	start := time.Now()
	return func() {
		p.record(component, time.Since(start))
	}
}

func (p *RenderProfiler) record(component string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.components[component]
	if !ok {
		m = &ComponentMetrics{Name: component}
		p.components[component] = m
	}
	m.RenderCount++
	m.TotalTime += elapsed
	if elapsed > m.MaxTime {
		m.MaxTime = elapsed
	}
}

// RecordFrame records a complete frame render.
func (p *RenderProfiler) RecordFrame(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	p.totalTime += elapsed
	if len(p.frameTimings) >= frameWindow {
		p.frameTimings = p.frameTimings[1:]
	}
	p.frameTimings = append(p.frameTimings, elapsed)

	// 16ms is one frame at 60fps.
	if elapsed > 16*time.Millisecond && DebugLog != nil {
		DebugLog.Printf("SLOW FRAME: %v", elapsed)
	}
}

// GetStats returns a summary of render statistics.
func (p *RenderProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	sb.WriteString("\n=== Render Profile ===\n")
	sb.WriteString(fmt.Sprintf("Total frames: %d\n", p.frameCount))
	if p.frameCount > 0 {
		sb.WriteString(fmt.Sprintf("Avg frame time: %v\n", p.totalTime/time.Duration(p.frameCount)))
		sb.WriteString(fmt.Sprintf("p95 of last %d frames: %v\n", len(p.frameTimings), percentile(p.frameTimings, 0.95)))
	}

	sorted := make([]*ComponentMetrics, 0, len(p.components))
	for _, m := range p.components {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].TotalTime > sorted[j].TotalTime
	})

	sb.WriteString("\n--- Components ---\n")
	for _, m := range sorted {
		avg := m.TotalTime / time.Duration(m.RenderCount)
		sb.WriteString(fmt.Sprintf("  %s: count=%d total=%v avg=%v max=%v\n",
			m.Name, m.RenderCount, m.TotalTime, avg, m.MaxTime))
	}
	return sb.String()
}

// percentile returns the q-th quantile of timings by nearest rank.
func percentile(timings []time.Duration, q float64) time.Duration {
	if len(timings) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), timings...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	rank := int(q*float64(len(sorted))+0.5) - 1
	return sorted[max(0, min(rank, len(sorted)-1))]
}

// LogStats logs the current render statistics.
func (p *RenderProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *RenderProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.components = make(map[string]*ComponentMetrics)
	p.frameCount = 0
	p.totalTime = 0
	p.frameTimings = make([]time.Duration, 0, frameWindow)
}
