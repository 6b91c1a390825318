// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2025, The SketchKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const defaultTimestampFormat = time.RFC3339

var (
	baseTimestamp = time.Now()

	defaultColorScheme = &ColorScheme{
		InfoLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render,
		WarnLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render,
		ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).
			Render,
		FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).
			Bold(true).Render,
		PanicLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).
			Bold(true).Render,
		DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render,
		TraceLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Render,
		Field:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render,
		Timestamp:  lipgloss.NewStyle().Faint(true).Render,
	}

	noColorsColorScheme = &ColorScheme{
		InfoLevel:  lipgloss.NewStyle().Render,
		WarnLevel:  lipgloss.NewStyle().Render,
		ErrorLevel: lipgloss.NewStyle().Render,
		FatalLevel: lipgloss.NewStyle().Render,
		PanicLevel: lipgloss.NewStyle().Render,
		DebugLevel: lipgloss.NewStyle().Render,
		TraceLevel: lipgloss.NewStyle().Render,
		Field:      lipgloss.NewStyle().Render,
		Timestamp:  lipgloss.NewStyle().Render,
	}
)

// miniTS is the number of seconds since the program started, used as the
// default compact timestamp.
func miniTS() int {
	return int(time.Since(baseTimestamp) / time.Second)
}

type renderFunc func(...string) string

type ColorScheme struct {
	InfoLevel  renderFunc
	WarnLevel  renderFunc
	ErrorLevel renderFunc
	FatalLevel renderFunc
	PanicLevel renderFunc
	DebugLevel renderFunc
	TraceLevel renderFunc
	Field      renderFunc
	Timestamp  renderFunc
}

func (s *ColorScheme) render(level logrus.Level) renderFunc {
	switch level {
	case logrus.InfoLevel:
		return s.InfoLevel
	case logrus.WarnLevel:
		return s.WarnLevel
	case logrus.ErrorLevel:
		return s.ErrorLevel
	case logrus.FatalLevel:
		return s.FatalLevel
	case logrus.PanicLevel:
		return s.PanicLevel
	case logrus.DebugLevel:
		return s.DebugLevel
	default:
		return s.TraceLevel
	}
}

func levelText(level logrus.Level) string {
	switch level {
	case logrus.WarnLevel:
		return "WARN"
	default:
		return strings.ToUpper(level.String())
	}
}

// TextFormatter renders log entries for humans: a colored level tag when
// attached to a terminal, a compact relative timestamp and sorted fields.
type TextFormatter struct {
	// Set to true to bypass checking for a TTY before outputting colors.
	ForceColors bool

	// Force disabling colors.  For a TTY colors are enabled by default.
	DisableColors bool

	// Disable timestamp logging, useful when output is redirected to a
	// logging system that already adds timestamps.
	DisableTimestamp bool

	// Enable logging the full timestamp instead of the time passed since
	// beginning of execution.
	FullTimestamp bool

	// Timestamp format to use for display when a full timestamp is printed.
	TimestampFormat string

	// The fields are sorted by default for a consistent output.
	DisableSorting bool

	// Color scheme to use, defaulting to the built-in one.
	ColorScheme *ColorScheme

	terminalOnce sync.Once
	isTerminal   bool
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	f.terminalOnce.Do(func() {
		if entry.Logger != nil {
			if file, ok := entry.Logger.Out.(*os.File); ok {
				f.isTerminal = term.IsTerminal(int(file.Fd()))
			}
		}
	})

	scheme := noColorsColorScheme
	if (f.ForceColors || f.isTerminal) && !f.DisableColors {
		scheme = f.ColorScheme
		if scheme == nil {
			scheme = defaultColorScheme
		}
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	if !f.DisableSorting {
		sort.Strings(keys)
	}

	fmt.Fprintf(b, "%s", scheme.render(entry.Level)(fmt.Sprintf("%-5s", levelText(entry.Level))))

	if !f.DisableTimestamp {
		if f.FullTimestamp {
			format := f.TimestampFormat
			if format == "" {
				format = defaultTimestampFormat
			}
			fmt.Fprintf(b, "[%s]", scheme.Timestamp(entry.Time.Format(format)))
		} else {
			fmt.Fprintf(b, "[%s]", scheme.Timestamp(fmt.Sprintf("%04d", miniTS())))
		}
	}

	fmt.Fprintf(b, " %s", strings.TrimSuffix(entry.Message, "\n"))

	for _, k := range keys {
		f.appendKeyValue(b, scheme, k, entry.Data[k])
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

func (f *TextFormatter) appendKeyValue(b *bytes.Buffer, scheme *ColorScheme, key string, value interface{}) {
	text := fmt.Sprintf("%v", value)
	if needsQuoting(text) {
		text = fmt.Sprintf("%q", text)
	}

	fmt.Fprintf(b, " %s%s", scheme.Field(key+"="), text)
}

func needsQuoting(text string) bool {
	if len(text) == 0 {
		return true
	}

	for _, ch := range text {
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '-' || ch == '.' || ch == '_' || ch == '/' || ch == '@' ||
			ch == '^' || ch == '+' || ch == ':' || ch == ',' || ch == '=') {
			return true
		}
	}

	return false
}
