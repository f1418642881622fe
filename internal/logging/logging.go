package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Setup configures the global logger. Verbose mode shows per-probe
// classification detail; otherwise only warnings and errors reach the
// console so the status output stays readable.
func Setup(verbose bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "15:04:05.000",
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// Component returns a logger entry scoped to one component.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
