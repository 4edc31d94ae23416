package view

import (
	"context"
	"errors"
	"time"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

const dbTimeout = 5 * time.Second

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// ErrorText turns err into the line shown in the status bar.
func ErrorText(err error) string {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return "Error: " + err.Error()
}
