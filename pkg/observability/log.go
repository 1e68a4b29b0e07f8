package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a logger at debug level. Failed
// syntheses are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetSynthesisHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnSynthesisStart(_ context.Context, mode string, width, height int) {
	h.Logger.Debug("synthesis started", "mode", mode, "size", [2]int{width, height})
}

func (h *LogHooks) OnSynthesisComplete(_ context.Context, mode string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("synthesis failed", "mode", mode, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("synthesis complete", "mode", mode, "duration", d)
}

func (h *LogHooks) OnBatchComplete(_ context.Context, processed, failed int, d time.Duration) {
	h.Logger.Debug("batch complete", "processed", processed, "failed", failed, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ SynthesisHooks = (*LogHooks)(nil)
	_ CacheHooks     = (*LogHooks)(nil)
	_ HTTPHooks      = (*LogHooks)(nil)
)
