// Package prompt reads answers to interactive questions from a terminal or
// any other line-oriented reader.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bryan-cox/clockfill/internal/model"
)

// Prompter asks one question per line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading answers from in and writing questions to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line asks a question and returns the trimmed answer. Running out of input
// before an answer is given is an input error.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: no answer given for %q", model.ErrInput, strings.TrimSpace(label))
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Int asks for an integer in [lo, hi].
func (p *Prompter) Int(label string, lo, hi int) (int, error) {
	answer, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	return ParseInt(answer, lo, hi)
}

// ParseInt parses an answer as an integer in [lo, hi].
func ParseInt(answer string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", model.ErrInput, answer)
	}
	return InRange(n, lo, hi)
}

// InRange returns n when it lies in [lo, hi] and an input error otherwise.
func InRange(n, lo, hi int) (int, error) {
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %d is out of range, expected %d-%d", model.ErrInput, n, lo, hi)
	}
	return n, nil
}
