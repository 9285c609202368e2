package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the service logger: JSON lines on stdout, mirrored to Logstash
// when logstashAddr is set. The returned closer releases the Logstash
// connection.
func New(level, logstashAddr string) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if logstashAddr == "" {
		return logger, nopCloser{}
	}
	hook, err := NewLogstashHook(logstashAddr)
	if err != nil {
		logger.WithError(err).Warn("logstash disabled")
		return logger, nopCloser{}
	}
	logger.AddHook(hook)
	return logger, hook
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
