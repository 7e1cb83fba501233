// Package logger builds slog loggers with per-environment defaults and
// attributes pulled from the request context.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "irisprep"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "record validated",
//	    logger.RecordID(rec.ID),
//	    logger.Validation(res.IsValid, errs, warns, fixes),
//	)
//
// Attribute helpers return an empty slog.Attr for empty input, which slog
// drops, so callers do not need nil or empty checks.
package logger
