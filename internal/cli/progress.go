package cli

import (
	"log"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter reports scan progress with a progress bar.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnScanStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning source files"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileDone(path string) {
	if c.bar == nil {
		return
	}
	_ = c.bar.Add(1)
}

func (c *CLIProgressReporter) OnScanComplete(definitions int) {
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
	if c.quiet {
		return
	}
	log.Printf("Scanned %d annotated definitions", definitions)
}
