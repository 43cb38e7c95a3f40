// Package sieveutil holds small cross-cutting helpers shared by the CLI,
// TUI, and discovery engine.
package sieveutil

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a component-scoped logger, the same "one logger per
// package, tagged with its own component name" idiom the teacher uses
// (`var log = logging.NewLogger("cx.context.resolve")`), built directly on
// logrus rather than a wrapper package. Every returned entry shares one
// underlying logger.
func NewLogger(component string) *logrus.Entry {
	return sharedLogger.WithField("component", component)
}

var sharedLogger = func() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}()

// SetVerbose raises every logger created through NewLogger to debug level
// by reconfiguring the shared logger that backs them. Called once from the
// CLI's --verbose flag handler.
func SetVerbose(entry *logrus.Entry, verbose bool) {
	if verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}
}
