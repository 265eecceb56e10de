// Package repl contains identifiers used in getting raw utterance input for
// an interactive minnow session, from either a plain stream or a readline
// front-end.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// UtteranceReader is something an interactive session can pull lines of
// input from.
type UtteranceReader interface {
	// ReadUtterance blocks until a non-blank line is read, returning it with
	// leading/trailing whitespace trimmed. At end of input it returns "" and
	// io.EOF.
	ReadUtterance() (string, error)

	// Close releases any resources the reader holds.
	Close() error
}

// DirectReader implements UtteranceReader over any io.Reader, without
// sanitizing control or escape sequences. It's meant for piped input: files,
// test fixtures, or scripted stdin.
//
// DirectReader should not be used directly; construct one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveReader implements UtteranceReader over stdin using a Go
// implementation of GNU Readline. This keeps input clear of typing and
// editing escape sequences and enables command history. It should in
// general only be used when directly connected to a TTY.
//
// InteractiveReader should not be used directly; construct one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader wraps r in a buffered reader ready for ReadUtterance.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

// NewInteractiveReader initializes readline against stdin/stdout with the
// default "> " prompt. The returned InteractiveReader must have Close
// called on it before disposal to properly tear down readline's terminal
// state.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: "> ",
	}, nil
}

// Close is a no-op; DirectReader holds no resources of its own that need
// releasing, but callers should still call it, since io.Reader values they
// pass in (an *os.File, say) might.
func (dr *DirectReader) Close() error {
	return nil
}

// Close tears down readline's terminal state.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadUtterance reads the next line, skipping blank lines unless
// AllowBlank(true) was called.
func (dr *DirectReader) ReadUtterance() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadUtterance reads the next line via readline, skipping blank lines
// unless AllowBlank(true) was called.
func (ir *InteractiveReader) ReadUtterance() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default it is not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default it is not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt text shown before each read.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt text.
func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}
