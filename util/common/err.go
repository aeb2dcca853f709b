package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskmanager/taskmanager/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

func NewError(a ...any) error {
	msg := fmt.Sprintln(a...)
	return errors.New(strings.TrimSuffix(msg, "\n"))
}

// Recover logs a recovered panic with msg and returns it.
// It only stops the panic when deferred directly: defer common.Recover("...").
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}

// Combine joins the non-nil errors; nil when there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}
