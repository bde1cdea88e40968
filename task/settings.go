// Package task is the facade spec §6 calls "the task facade": the five
// entry points (tryLex, tryParse, tryLexParse, tryInspection,
// tryLexParseInspection) plus the Settings bag every one of them accepts.
// It is the only package in this module that wires lexer, snapshot,
// parser, activenode, and inspection together; none of those packages
// import it.
package task

import (
	"github.com/spf13/cast"

	"github.com/odvcencio/powerquery-parser/parser"
)

// ParserKind selects which Reader implementation the facade runs (spec
// §6, Settings.parser).
type ParserKind int

const (
	ParserRecursiveDescent ParserKind = iota
	ParserCombinatorial
)

// ParseStateFactory lets tooling (a benchmark harness, for instance) wrap
// or replace the *parser.Reader before it is handed to parser.Parse —
// spec §6's parseStateFactory hook.
type ParseStateFactory func(r *parser.Reader) *parser.Reader

// Settings is the open bag of options every entry point accepts, built by
// functional options (New(opts...)) the way the teacher's grammar token
// sources take constructor arguments rather than a struct literal with
// unexported zero-value defaults to get wrong.
type Settings struct {
	Locale             string
	Parser             ParserKind
	ParseStateFactory  ParseStateFactory
	CancellationToken  parser.CancellationToken
	TraceManager       parser.TraceManager
	MaybeParserOptions map[string]any
}

// DefaultLocale is used whenever Settings.Locale is empty or names a
// locale the localization table doesn't recognize.
const DefaultLocale = "en-US"

// Option configures a Settings value.
type Option func(*Settings)

// New builds Settings from zero or more options, defaulting to the
// recursive-descent reader and the default locale.
func New(opts ...Option) Settings {
	s := Settings{
		Locale: DefaultLocale,
		Parser: ParserRecursiveDescent,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func WithLocale(locale string) Option {
	return func(s *Settings) { s.Locale = locale }
}

func WithParser(kind ParserKind) Option {
	return func(s *Settings) { s.Parser = kind }
}

func WithParseStateFactory(f ParseStateFactory) Option {
	return func(s *Settings) { s.ParseStateFactory = f }
}

func WithCancellationToken(token parser.CancellationToken) Option {
	return func(s *Settings) { s.CancellationToken = token }
}

func WithTraceManager(tm parser.TraceManager) Option {
	return func(s *Settings) { s.TraceManager = tm }
}

func WithMaybeParserOptions(opts map[string]any) Option {
	return func(s *Settings) { s.MaybeParserOptions = opts }
}

// IntOption reads a tuning knob out of MaybeParserOptions, coercing
// whatever was stored there (a string from a YAML config file, a float64
// from decoded JSON, a plain int set programmatically) into an int via
// spf13/cast — maybeParserOptions is deliberately loosely typed (spec
// §6), so every read through it goes through cast rather than a type
// assertion that would panic on a differently-typed caller.
func (s Settings) IntOption(key string, fallback int) int {
	raw, ok := s.MaybeParserOptions[key]
	if !ok {
		return fallback
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return fallback
	}
	return v
}

// BoolOption is IntOption's boolean counterpart.
func (s Settings) BoolOption(key string, fallback bool) bool {
	raw, ok := s.MaybeParserOptions[key]
	if !ok {
		return fallback
	}
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return fallback
	}
	return v
}

func (s Settings) newReader() *parser.Reader {
	var r *parser.Reader
	switch s.Parser {
	case ParserCombinatorial:
		r = parser.NewCombinatorialReader()
	default:
		r = parser.NewRecursiveDescentReader()
	}
	r = parser.Instrument(r, s.CancellationToken, s.TraceManager)
	if s.ParseStateFactory != nil {
		r = s.ParseStateFactory(r)
	}
	return r
}
