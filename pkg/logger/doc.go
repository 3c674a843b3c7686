// Package logger builds slog loggers with functional options, consistent
// attribute helpers and attributes injected from context.Context.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which runs every registered ContextExtractor on
// each record:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "rbacctl"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "policy evaluated",
//	    logger.Group("FreeTrial"),
//	    logger.Decision(d.Name, d.Allowed, d.Reason),
//	)
//
// Helpers such as Error return an empty slog.Attr for nil input, which slog
// handlers skip, so callers need no nil checks.
//
// Library packages accept an optional *slog.Logger and fall back to Discard.
package logger
