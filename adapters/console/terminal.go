package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Terminal is a line-oriented console over any reader/writer pair.
// Scripted sessions use it over a strings.Reader and a bytes.Buffer.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	errText *color.Color
	okText  *color.Color
}

// Option customizes a Terminal
type Option func(*Terminal)

// WithoutColor disables ANSI colors regardless of the output device
func WithoutColor() Option {
	return func(t *Terminal) {
		t.errText.DisableColor()
		t.okText.DisableColor()
	}
}

// NewTerminal creates a console reading lines from in and writing to out
func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:      bufio.NewReader(in),
		out:     out,
		errText: color.New(color.FgRed),
		okText:  color.New(color.FgGreen),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReadLine prints prompt and blocks for the next line. Surrounding whitespace
// is trimmed. A final line without a newline is still returned; io.EOF follows.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(t.out, prompt)
	}
	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) WriteLine(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) WriteError(format string, args ...interface{}) {
	t.errText.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) WriteSuccess(format string, args ...interface{}) {
	t.okText.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) Writer() io.Writer {
	return t.out
}
