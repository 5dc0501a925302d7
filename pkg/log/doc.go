// Package log is the structured logging abstraction used by tiltapp's
// libraries.
//
// Library code logs through [Logger] and never imports a concrete logging
// package. The CLI wires a [ZerologAdapter]; tests and embedders that do not
// care about output use [NoopLogger].
//
//	logger := log.NewZerologAdapter(zerolog.New(os.Stderr))
//	logger.Info("timer started", log.Int("minutes", 5))
package log
