package middleware

import (
	"context"

	"github.com/sirupsen/logrus"
)

// WithLogger puts logger into context.
func WithLogger(ctx context.Context, l logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// GetLogger returns request scoped logger or the standard one.
func GetLogger(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return l
	}

	return logrus.StandardLogger()
}
