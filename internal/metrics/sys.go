package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// SysHealth represents real-time process metrics.
type SysHealth struct {
	AllocMB      uint64
	SysMB        uint64
	NumGC        uint32
	Goroutines   int
	DatabaseSize string
}

// GetSysHealth collects real-time health data. The database size covers the
// directory holding dbPath so WAL and journal files are included.
func GetSysHealth(dbPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocMB:      m.Alloc / 1024 / 1024,
		SysMB:        m.Sys / 1024 / 1024,
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
		DatabaseSize: formatBytes(dirSize(filepath.Dir(dbPath))),
	}
}

// Report renders health and usage as plain text for chat and terminal output.
func Report(h SysHealth, usage []DailyUsage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Memory: %d MB allocated, %d MB from OS, %d GC runs\n", h.AllocMB, h.SysMB, h.NumGC)
	fmt.Fprintf(&b, "Goroutines: %d\n", h.Goroutines)
	fmt.Fprintf(&b, "Database: %s\n", h.DatabaseSize)

	if len(usage) == 0 {
		b.WriteString("No shopping lists generated recently.")
		return b.String()
	}
	b.WriteString("Lists generated:")
	for _, u := range usage {
		fmt.Fprintf(&b, "\n%s: %d runs, %d recipes, %d items, %.0f ms avg", u.Date, u.Runs, u.TotalRecipes, u.TotalItems, u.AvgLatencyMS)
	}
	return b.String()
}

func dirSize(path string) int64 {
	var size int64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
