package util

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// ProcessInfo holds information about the process
type ProcessInfo struct {
	PID         int
	Goroutines  int
	Memory      MemStats
	CPUCores    int
	GoVersion   string
	StartTime   time.Time
	ElapsedTime time.Duration
}

// MemStats holds memory statistics information
type MemStats struct {
	Alloc      string
	TotalAlloc string
	Sys        string
	NumGC      uint32
	HeapAlloc  string
	HeapSys    string
	HeapInUse  string
}

// GetProcessInfo returns diagnostic information about the running process
func GetProcessInfo(startTime time.Time) ProcessInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return ProcessInfo{
		PID:        os.Getpid(),
		Goroutines: runtime.NumGoroutine(),
		Memory: MemStats{
			Alloc:      FormatBytes(int64(m.Alloc)),
			TotalAlloc: FormatBytes(int64(m.TotalAlloc)),
			Sys:        FormatBytes(int64(m.Sys)),
			NumGC:      m.NumGC,
			HeapAlloc:  FormatBytes(int64(m.HeapAlloc)),
			HeapSys:    FormatBytes(int64(m.HeapSys)),
			HeapInUse:  FormatBytes(int64(m.HeapInuse)),
		},
		CPUCores:    runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		StartTime:   startTime,
		ElapsedTime: time.Since(startTime),
	}
}

// LogFullDiagnostics logs detailed diagnostic information
func LogFullDiagnostics(log logrus.FieldLogger, startTime time.Time) {
	info := GetProcessInfo(startTime)

	log.Infof("===== DIAGNOSTIC REPORT =====")
	log.Infof("PID: %d", info.PID)
	log.Infof("Go version: %s", info.GoVersion)
	log.Infof("CPU cores: %d", info.CPUCores)
	log.Infof("Goroutines: %d", info.Goroutines)
	log.Infof("Runtime: %s", info.ElapsedTime.Round(time.Millisecond))
	log.Infof("Memory:")
	log.Infof("  - Alloc: %s", info.Memory.Alloc)
	log.Infof("  - TotalAlloc: %s", info.Memory.TotalAlloc)
	log.Infof("  - Sys: %s", info.Memory.Sys)
	log.Infof("  - HeapAlloc: %s", info.Memory.HeapAlloc)
	log.Infof("  - HeapSys: %s", info.Memory.HeapSys)
	log.Infof("  - HeapInUse: %s", info.Memory.HeapInUse)
	log.Infof("  - GC cycles: %d", info.Memory.NumGC)
	log.Infof("============================")
}

// FormatBytes returns a human-readable byte string
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
