// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides leveled key/value logging on top of go-ethereum/log.
package log

import (
	"io"
	"log/slog"
	"os"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Logger writes key/value pairs at a level.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// WithContext returns a logger that prefixes every record with ctx.
// The logger resolves the root handler at call time, so package level
// loggers follow handlers installed later by SetDefault.
func WithContext(ctx ...any) Logger {
	return &lazyLogger{ctx: ctx}
}

// Root returns the root logger.
func Root() Logger {
	return &lazyLogger{}
}

type lazyLogger struct {
	ctx []any
}

func (l *lazyLogger) get() ethlog.Logger {
	if len(l.ctx) == 0 {
		return ethlog.Root()
	}
	return ethlog.Root().With(l.ctx...)
}

func (l *lazyLogger) Trace(msg string, ctx ...any) { l.get().Trace(msg, ctx...) }
func (l *lazyLogger) Debug(msg string, ctx ...any) { l.get().Debug(msg, ctx...) }
func (l *lazyLogger) Info(msg string, ctx ...any)  { l.get().Info(msg, ctx...) }
func (l *lazyLogger) Warn(msg string, ctx ...any)  { l.get().Warn(msg, ctx...) }
func (l *lazyLogger) Error(msg string, ctx ...any) { l.get().Error(msg, ctx...) }

func (l *lazyLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(append(merged, l.ctx...), ctx...)
	return &lazyLogger{ctx: merged}
}

// NewHandler creates a record handler writing to w.
// verbosity follows the legacy 0 (crit) to 5 (trace) scale.
func NewHandler(w io.Writer, verbosity int, json bool) slog.Handler {
	level := ethlog.FromLegacyLevel(verbosity)
	if json {
		return ethlog.JSONHandlerWithLevel(w, level)
	}
	return ethlog.NewTerminalHandlerWithLevel(w, level, useColor(w))
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetDefault installs h as the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
}

// Discard silences the root logger.
func Discard() {
	SetDefault(ethlog.DiscardHandler())
}
