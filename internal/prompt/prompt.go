// Package prompt reads placeholder values from a line-oriented input
// stream, typically the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/thomas-vilte/matejira/internal/placeholder"
)

// MultiLineSentinel terminates multi-line collection. The sentinel line is
// never part of the value.
const MultiLineSentinel = "END"

const defaultMultiLineHint = "(multi-line: finish with a line containing only END)"

// StdinIsTerminal reports whether the process has an interactive input
// stream attached, the signal the auto-detection policy keys off.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalPrompter implements placeholder.Prompter over an input stream.
// Prompting is strictly sequential; every call blocks until its line or
// multi-line block has been fully read.
type TerminalPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	multiHint string
}

type Option func(*TerminalPrompter)

// WithStreams replaces stdin/stdout, letting tests and piped invocations
// drive the prompter.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(p *TerminalPrompter) {
		p.in = bufio.NewReader(in)
		p.out = out
	}
}

// WithMultiLineHint overrides the hint printed before multi-line collection.
func WithMultiLineHint(hint string) Option {
	return func(p *TerminalPrompter) {
		p.multiHint = hint
	}
}

func NewTerminalPrompter(opts ...Option) *TerminalPrompter {
	p := &TerminalPrompter{
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		multiHint: defaultMultiLineHint,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *TerminalPrompter) Prompt(ctx context.Context, req placeholder.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	label := req.Label
	if label == "" {
		label = req.FieldName
	}

	name := color.New(color.FgCyan, color.Bold).Sprint(req.FieldName)
	if req.MultiLine {
		fmt.Fprintf(p.out, "%s %s %s\n", name, label, color.New(color.FgHiBlack).Sprint(p.multiHint))
		return p.readMultiLine()
	}

	fmt.Fprintf(p.out, "%s %s: ", name, label)
	return p.readLine()
}

// readLine strips the line ending and nothing else.
func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimLineEnding(line), nil
		}
		return "", fmt.Errorf("read input line: %w", err)
	}
	return trimLineEnding(line), nil
}

// readMultiLine accumulates lines until the sentinel. The sentinel is
// excluded, internal newlines are preserved and no trailing newline is added.
func (p *TerminalPrompter) readMultiLine() (string, error) {
	var lines []string
	for {
		line, err := p.in.ReadString('\n')
		done := trimLineEnding(line)
		if err != nil {
			if errors.Is(err, io.EOF) && done == MultiLineSentinel {
				break
			}
			return "", fmt.Errorf("read input before %s sentinel: %w", MultiLineSentinel, err)
		}
		if done == MultiLineSentinel {
			break
		}
		lines = append(lines, done)
	}
	return strings.Join(lines, "\n"), nil
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
