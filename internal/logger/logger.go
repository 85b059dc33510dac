package logger

import (
	"go.uber.org/zap"
)

var log *zap.Logger = zap.NewNop()

// Init builds the process logger. Development mode gets the human-readable
// console encoder, production gets JSON.
func Init(production bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if production {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = l
	return l, nil
}

// L returns the process logger. Safe to call before Init (no-op logger).
func L() *zap.Logger {
	return log
}

// S returns the sugared process logger.
func S() *zap.SugaredLogger {
	return log.Sugar()
}
