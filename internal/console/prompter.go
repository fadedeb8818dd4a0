package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tone colors the label of a prompt by what the answer will be used for.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneCreate
	ToneRemove
	ToneDestroy
)

// Prompter asks questions and reads one line per answer.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	styles  styles
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Ask prints question, then label as the prompt, and returns the trimmed
// answer. It returns io.EOF once the input is exhausted and ctx.Err() if ctx
// is cancelled while waiting; a line typed after that goes to the next Ask.
// Ask is not safe for concurrent use.
func (p *Prompter) Ask(ctx context.Context, question, label string, tone Tone) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if question != "" {
		_, _ = fmt.Fprintln(p.out, question)
	}
	_, _ = fmt.Fprint(p.out, p.labelStyle(tone).Render(label+":")+" ")

	line, err := p.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine waits for the next line or for ctx to end. The read itself cannot
// be interrupted, so it stays pending for the following call.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		p.pending = ch
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		return r.line, r.err
	}
}

func (p *Prompter) labelStyle(tone Tone) lipgloss.Style {
	switch tone {
	case ToneCreate:
		return p.styles.success
	case ToneRemove:
		return p.styles.warning
	case ToneDestroy:
		return p.styles.danger
	default:
		return p.styles.info
	}
}
