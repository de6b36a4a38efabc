// Package chat implements the interactive question loop on a terminal.
package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/internal/util"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/query"
)

// Asker answers natural language questions. *query.Engine implements it.
type Asker interface {
	Ask(ctx context.Context, text string, tracers ...query.Tracer) (common.QueryResult, error)
}

// Chat reads questions line by line and prints the matching people.
type Chat struct {
	asker Asker
	in    io.Reader
	out   io.Writer

	showConditions bool
	styles         styles
}

// NewChatParams configures a Chat. ShowConditions prints the standardized
// conditions of every answered question.
type NewChatParams struct {
	Asker          Asker
	In             io.Reader
	Out            io.Writer
	ShowConditions bool
}

func NewChat(params NewChatParams) *Chat {
	return &Chat{
		asker:          params.Asker,
		in:             params.In,
		out:            params.Out,
		showConditions: params.ShowConditions,
		styles:         newStyles(params.Out),
	}
}

// Run loops until an exit command, end of input or cancellation of ctx.
// Per-question failures are printed and never end the loop.
func (c *Chat) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(c.out, welcomeText)
	for {
		fmt.Fprint(c.out, "\n"+PromptSymbol)

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out, "\n"+goodbyeText)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(c.out, "\n"+goodbyeText)
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		text := util.SanitizeText(line)
		if text == "" {
			continue
		}

		command := strings.ToLower(text)
		switch {
		case slices.Contains(exitCommands, command):
			fmt.Fprintln(c.out, goodbyeText)
			return nil
		case slices.Contains(helpCommands, command):
			fmt.Fprintln(c.out, helpText)
			continue
		}

		c.answer(ctx, text)
	}
}

func (c *Chat) answer(ctx context.Context, text string) {
	var tracers []query.Tracer
	trace := query.NewQueryTrace()
	if c.showConditions {
		tracers = append(tracers, trace)
	}

	res, err := c.asker.Ask(ctx, text, tracers...)
	if err != nil {
		fmt.Fprintln(c.out, c.styles.errMsg.Render("❌ Error: "+errors.UserMessage(err)))
		return
	}

	if c.showConditions {
		fmt.Fprintln(c.out, c.styles.conditions(trace.Snapshot().Conditions))
	}
	fmt.Fprintln(c.out, c.styles.result(res))
}
