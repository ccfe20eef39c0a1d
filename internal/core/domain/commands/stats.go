package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/process"
)

const bytesPerMegabyte = 1024 * 1024

type StatsHandler struct {
	command string
}

func NewStatsHandler(command string) *StatsHandler {
	return &StatsHandler{command: command}
}

func (h *StatsHandler) GetCommand() string {
	return h.command
}

func (h *StatsHandler) Respond(_ context.Context, _ time.Duration, _ *domain.Invocation) (string, error) {
	l := log.With().Str("command", h.GetCommand()).Logger()
	l.Info().Msg("handling request")

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return "", fmt.Errorf("failed to inspect own process: %w", err)
	}

	cpu, err := proc.CPUPercent()
	if err != nil {
		return "", fmt.Errorf("failed to read cpu usage: %w", err)
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return "", fmt.Errorf("failed to read memory usage: %w", err)
	}

	return fmt.Sprintf("📊 Process Stats:\n"+
		"• CPU: %.1f%%\n"+
		"• Memory: %.1f MB\n"+
		"• Goroutines: %d",
		cpu, float64(mem.RSS)/bytesPerMegabyte, runtime.NumGoroutine()), nil
}
