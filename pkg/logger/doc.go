// Package logger builds configured slog.Logger instances for the toolkit's
// components. Defaults are production-safe (JSON, info level); options
// switch format, level, output and static attributes.
//
//	log := logger.New(
//	    logger.WithService("trending"),
//	    logger.WithDevelopment(),
//	)
//	logger.SetAsDefault(log)
//
// Components that log (the counter store, login guard and trending engine)
// accept a *slog.Logger via their WithLogger options and fall back to
// slog.Default().
package logger
