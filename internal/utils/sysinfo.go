package utils

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
)

// SystemInfo describes the running machine. Probing failures leave the
// affected fields at their runtime fallbacks.
func SystemInfo() domain.SystemInfo {
	info := domain.SystemInfo{
		System:  capitalize(runtime.GOOS),
		Machine: runtime.GOARCH,
	}

	if h, err := host.Info(); err == nil {
		if h.OS != "" {
			info.System = capitalize(h.OS)
		}
		info.Release = h.KernelVersion
		info.Version = strings.TrimSpace(h.Platform + " " + h.PlatformVersion)
		if h.KernelArch != "" {
			info.Machine = h.KernelArch
		}
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.Processor = cpus[0].ModelName
	}

	return info
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
