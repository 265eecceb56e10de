// Package merrs defines the error kinds raised by the minnow semantic parsing
// engine. Each kind is a distinct type so callers can distinguish them with
// errors.As, and each carries enough context to explain what was rejected and
// why.
package merrs

import (
	"errors"
	"fmt"

	"github.com/dekarrin/minnow/internal/util"
)

// InvalidSymbolError is returned when a symbol string violates the
// terminal/non-terminal/optional rules required at the point of use.
type InvalidSymbolError struct {
	Symbol string
	Reason string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q: %s", e.Symbol, e.Reason)
}

// InvalidSymbol returns a new InvalidSymbolError for sym with the given
// reason.
func InvalidSymbol(sym, reason string) error {
	return &InvalidSymbolError{Symbol: sym, Reason: reason}
}

// InvalidRuleError is returned when a Rule fails construction preconditions:
// empty rhs, a non-terminal required where one was not given, or a semantics
// function that is missing.
type InvalidRuleError struct {
	Tag    string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("invalid rule: %s", e.Reason)
	}
	return fmt.Sprintf("invalid rule %q: %s", e.Tag, e.Reason)
}

// InvalidRule returns a new InvalidRuleError for the rule tagged tag.
func InvalidRule(tag, reason string) error {
	return &InvalidRuleError{Tag: tag, Reason: reason}
}

// InvalidGrammarError is returned by the normalizer when a rule cannot be
// reduced to lexical, unary, or binary form.
type InvalidGrammarError struct {
	Tag    string
	Reason string
}

func (e *InvalidGrammarError) Error() string {
	return fmt.Sprintf("cannot normalize rule %q: %s", e.Tag, e.Reason)
}

// InvalidGrammar returns a new InvalidGrammarError.
func InvalidGrammar(tag, reason string) error {
	return &InvalidGrammarError{Tag: tag, Reason: reason}
}

// TokenizationError wraps a failure surfaced unchanged from a caller-supplied
// Tokenizer.
type TokenizationError struct {
	Input string
	Wrap  error
}

func (e *TokenizationError) Error() string {
	return fmt.Sprintf("tokenize %q: %v", e.Input, e.Wrap)
}

func (e *TokenizationError) Unwrap() error {
	return e.Wrap
}

// Tokenization wraps err, which was returned by a Tokenizer while lexing
// input, as a TokenizationError.
func Tokenization(input string, err error) error {
	if err == nil {
		return nil
	}
	return &TokenizationError{Input: input, Wrap: err}
}

// LengthMismatchError is returned from a Ranker's Fit when the number of
// utterances does not match the number of labeled denotations.
type LengthMismatchError struct {
	Utterances  int
	Denotations int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d utterances but %d denotations", e.Utterances, e.Denotations)
}

// LengthMismatch returns a new LengthMismatchError.
func LengthMismatch(nUtterances, nDenotations int) error {
	return &LengthMismatchError{Utterances: nUtterances, Denotations: nDenotations}
}

// EvaluationError is returned by computeDenotation when a rule's user-supplied
// semantics function fails. It is never raised during parsing itself; parsing
// defers all semantic evaluation until the caller asks for a denotation.
type EvaluationError struct {
	Tag  string
	Span string
	Wrap error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %q over %q: %v", e.Tag, e.Span, e.Wrap)
}

func (e *EvaluationError) Unwrap() error {
	return e.Wrap
}

// Evaluation returns a new EvaluationError wrapping err, which occurred while
// evaluating the semantics of the rule tagged tag over the given span.
func Evaluation(tag, span string, err error) error {
	return &EvaluationError{Tag: tag, Span: span, Wrap: err}
}

// NoParseError is returned when the chart parser reaches no derivation
// rooted in any accepted category for a given utterance. It carries both a
// technical message, for logs, and a short operator-facing one, for a REPL
// or other interactive surface to show instead.
type NoParseError struct {
	Utterance string
	friendly  string
}

func (e *NoParseError) Error() string {
	return fmt.Sprintf("no parse found for %q", e.Utterance)
}

// Friendly returns the message a REPL or other interactive surface should
// display for this error, falling back to Error() if none was set.
func (e *NoParseError) Friendly() string {
	if e.friendly == "" {
		return e.Error()
	}
	return e.friendly
}

// NoParse returns a new NoParseError for the given utterance. When roots is
// non-empty, the friendly message names the categories of thing the engine
// does understand, e.g. "I don't understand that. Try asking about: $Expr
// and $Query."
func NoParse(utterance string, roots ...string) error {
	friendly := "I don't understand that."
	if len(roots) > 0 {
		friendly += " Try asking about: " + util.MakeTextList(append([]string(nil), roots...)) + "."
	}
	return &NoParseError{Utterance: utterance, friendly: friendly}
}

// Friendly returns the message an interactive surface should show for err.
// If err is a NoParseError (or wraps one), its Friendly() message is
// returned; otherwise err.Error() is returned unchanged.
func Friendly(err error) string {
	var noParse *NoParseError
	if errors.As(err, &noParse) {
		return noParse.Friendly()
	}
	return err.Error()
}
