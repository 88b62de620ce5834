package emit

import (
	"errors"

	"github.com/Wouter17/f1-light-sync/internal/flags"
)

// Multi fans every signal out to several emitters. Each emitter sees the
// signal even when an earlier one fails; failures are joined into one
// error.
type Multi []flags.Emitter

// Emit implements flags.Emitter.
func (m Multi) Emit(signal flags.Signal) error {
	var errs []error
	for _, emitter := range m {
		if err := emitter.Emit(signal); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
