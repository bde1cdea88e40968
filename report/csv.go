package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

var header = []string{
	"file", "position",
	"scope",
	"invoke_name", "invoke_num_arguments", "invoke_position_argument_index",
	"keyword_autocomplete", "primitive_type_autocomplete", "language_constant_autocomplete",
}

// CSVWriter is Writer's standard-library-backed implementation: one row
// per Result, written through encoding/csv over the given io.Writer. The
// header row is written on construction so an empty report is still a
// valid, parseable CSV file.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter wraps dst in a CSVWriter and writes the header row
// immediately.
func NewCSVWriter(dst io.Writer) (*CSVWriter, error) {
	w := csv.NewWriter(dst)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	return &CSVWriter{w: w}, nil
}

// NewCSVAppender wraps dst in a CSVWriter without writing the header —
// for a caller appending rows to a file that already has one, the way
// pqinspect adds one row per invocation to a long-lived report file.
func NewCSVAppender(dst io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(dst)}
}

func (c *CSVWriter) WriteResult(r Result) error {
	invokeName := ""
	if r.HasInvoke {
		invokeName = r.InvokeName
	}
	numArgs, argIdx := "", ""
	if r.HasInvoke {
		numArgs = strconv.Itoa(r.InvokeNumArguments)
		argIdx = strconv.Itoa(r.InvokePositionArgIdx)
	}

	row := []string{
		r.File,
		r.Position.String(),
		joinCell(r.Scope),
		invokeName, numArgs, argIdx,
		joinCell(r.KeywordAutocomplete),
		joinCell(r.PrimitiveTypeAutocomplete),
		joinCell(r.LanguageConstantAutocomplete),
	}
	return c.w.Write(row)
}

// Close flushes any buffered rows. It does not close the underlying
// io.Writer — CSVWriter never owned it.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}

var _ Writer = (*CSVWriter)(nil)
