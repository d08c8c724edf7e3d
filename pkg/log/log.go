// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/hashdrop/pkg/status"
)

// 📦 DownloadOperation describes one materialization for logging
type DownloadOperation struct {
	Reference   string // Reference being materialized
	Destination string // Target root on disk
	Files       int    // Number of retrieved files
}

// 🎯 Logger renders materialization progress on a console next to zerolog.
// It only owns the console; the state of each materialization lives in the
// Download returned by StartDownload, so concurrent invocations can share one
// Logger.
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🔑 downloadKey is the context key of the current Download
type downloadKey struct{}

// 🎯 FromContext gets the logger from context, nil when none was attached
func FromContext(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 🎯 DownloadFromContext gets the current download from context, nil when none was started
func DownloadFromContext(ctx context.Context) *Download {
	d, _ := ctx.Value(downloadKey{}).(*Download)
	return d
}

// 🎯 WithDownload adds a download to context
func WithDownload(ctx context.Context, d *Download) context.Context {
	return context.WithValue(ctx, downloadKey{}, d)
}

// 📦 Download collects the file results of one materialization. It belongs
// to the invocation that started it and is not shared.
type Download struct {
	logger  *Logger
	op      DownloadOperation
	results []status.FileResult
}

// 📝 StartDownload prints the header of a new download operation
func (l *Logger) StartDownload(ctx context.Context, op DownloadOperation) *Download {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "[downloading into %s]\n",
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Reference),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d file(s)", op.Files))

	l.zlog.Debug().
		Str("reference", op.Reference).
		Str("destination", op.Destination).
		Int("files", op.Files).
		Msg("starting download operation")

	return &Download{logger: l, op: op}
}

// 📝 LogFileResult logs the outcome for one file
func (d *Download) LogFileResult(ctx context.Context, r status.FileResult) {
	d.results = append(d.results, r)

	l := d.logger
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatFileOperation(r))

	event := l.zlog.Debug()
	if r.Outcome == status.OutcomeFailed {
		event = l.zlog.Error().Err(r.Error)
	}
	event.
		Str("reference", d.op.Reference).
		Str("file", r.Path).
		Str("destination", r.Destination).
		Str("outcome", r.Outcome.String()).
		Int64("size", r.Size).
		Msg(l.formatter.FormatResult(r))
}

// Results returns the file results logged so far
func (d *Download) Results() []status.FileResult {
	return append([]status.FileResult(nil), d.results...)
}

// 📝 End prints the totals of the download operation
func (d *Download) End(ctx context.Context) {
	summary := status.Summary{Root: d.op.Destination}
	for _, r := range d.results {
		summary.Record(r)
	}

	l := d.logger
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatter.FormatSummary(summary))

	l.zlog.Debug().
		Str("reference", d.op.Reference).
		Int("files", len(d.results)).
		Msg("download operation complete")
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
