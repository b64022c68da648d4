// Package log provides the logging abstraction used by speciesdiff.
//
// Components depend on the [Logger] interface only. The CLI wires a
// [ZerologAdapter] writing human-readable lines to stderr; tests and library
// callers that want silence use [NoopLogger].
//
//	logger := log.NewZerologAdapter("debug")
//	logger.Info("comparison finished", log.Int("union", 412))
package log
