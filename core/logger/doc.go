// Package logger provides slog setup and attribute helpers for the authkit
// packages.
//
// New builds a logger from env-mapped configuration:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.New(os.Stderr, cfg)
//
// The attribute helpers create consistently keyed slog attributes and use
// the empty Attr pattern for nil safety, so call sites need no nil checks:
//
//	log.Warn("session sweep failed",
//		logger.Component("session"),
//		logger.Error(err),
//	)
//
// Library packages in this module default to a discard logger; logging is
// opt-in through their options.
package logger
