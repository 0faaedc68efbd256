package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var root = logrus.New()

func init() {
	root.SetOutput(os.Stderr)
	root.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	root.SetLevel(logrus.InfoLevel)
}

// Named returns an entry tagged with a component field
func Named(component string) *logrus.Entry {
	return root.WithField("component", component)
}
