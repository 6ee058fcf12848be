// Package display defines the contract the calculator core renders through.
// The core never knows how values are presented; it only calls these hooks.
package display

import "go.uber.org/zap"

// Options carries rendering hints for a display update.
type Options struct {
	Animate                bool
	AnnounceToScreenReader bool
}

// Display receives formatted values, error messages, and transient notices.
type Display interface {
	UpdateDisplay(value string, opts Options)
	ShowError(message string)
	ShowToast(message string)
}

// Logging is a Display that writes to a structured log. It stands in for a
// real renderer in headless deployments.
type Logging struct {
	logger *zap.Logger
}

// NewLogging returns a log-backed display.
func NewLogging(logger *zap.Logger) *Logging {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logging{logger: logger}
}

func (d *Logging) UpdateDisplay(value string, opts Options) {
	d.logger.Info("display updated",
		zap.String("value", value),
		zap.Bool("animate", opts.Animate),
		zap.Bool("announce", opts.AnnounceToScreenReader),
	)
}

func (d *Logging) ShowError(message string) {
	d.logger.Warn("display error", zap.String("message", message))
}

func (d *Logging) ShowToast(message string) {
	d.logger.Info("display toast", zap.String("message", message))
}
