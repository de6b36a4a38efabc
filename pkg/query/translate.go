package query

import (
	"context"
	"strings"
	"time"

	"github.com/OFFIS-RIT/peoplegraph/pkg/ai"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
)

// OutputMode selects how the language model answers.
type OutputMode string

const (
	// OutputModeText asks for a literal list of tuples, read by ParseConditions.
	OutputModeText OutputMode = "text"
	// OutputModeStructured asks for JSON matching conditionsOutput.
	OutputModeStructured OutputMode = "structured"
)

// DefaultTimeout bounds a single language model call.
const DefaultTimeout = 30 * time.Second

const translateTemperature = 0.1

type conditionsOutput struct {
	Conditions [][]string `json:"conditions" jsonschema:"description=Conditions as [subject, relation, object] triples"`
	Error      string     `json:"error" jsonschema:"description=Explanation for unsupported questions, empty otherwise"`
}

// Translator turns a natural language question into raw conditions using a
// language model. It makes exactly one call per question and never retries.
type Translator struct {
	client  ai.GraphAIClient
	timeout time.Duration
	mode    OutputMode
	model   string
}

// NewTranslatorParams configures a Translator. Zero values select
// DefaultTimeout, OutputModeText and the client's default model.
type NewTranslatorParams struct {
	Timeout    time.Duration
	OutputMode OutputMode
	Model      string
}

// NewTranslator creates a Translator around client.
func NewTranslator(client ai.GraphAIClient, params NewTranslatorParams) *Translator {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	mode := params.OutputMode
	if mode == "" {
		mode = OutputModeText
	}

	return &Translator{
		client:  client,
		timeout: timeout,
		mode:    mode,
		model:   params.Model,
	}
}

// Translate asks the language model for the conditions expressed by text.
//
// A call exceeding the timeout is an ErrUpstreamTimeout and any other
// failure of the call is an ErrUpstream. Answers declining the question are
// ErrUnsupportedQueryType and unreadable answers ErrInvalidFormat.
func (t *Translator) Translate(ctx context.Context, text string) ([]common.RawCondition, error) {
	if t == nil || t.client == nil {
		return nil, errors.Upstream(errors.New("no language model configured"))
	}

	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	opts := []ai.GenerateOption{ai.WithTemperature(translateTemperature)}
	if t.model != "" {
		opts = append(opts, ai.WithModel(t.model))
	}

	start := time.Now()
	var (
		raw []common.RawCondition
		err error
	)
	switch t.mode {
	case OutputModeStructured:
		raw, err = t.translateStructured(callCtx, text, opts)
	default:
		raw, err = t.translateText(callCtx, text, opts)
	}
	logger.Debug("Translated question", "mode", t.mode, "duration_ms", time.Since(start).Milliseconds(), "conditions", len(raw))

	return raw, err
}

func (t *Translator) translateText(ctx context.Context, text string, opts []ai.GenerateOption) ([]common.RawCondition, error) {
	opts = append(opts, ai.WithSystemPrompts(ai.ConditionSystemPrompt))

	output, err := t.client.GenerateCompletion(ctx, text, opts...)
	if err != nil {
		return nil, classifyCallError(ctx, err)
	}
	return ParseConditions(output)
}

func (t *Translator) translateStructured(ctx context.Context, text string, opts []ai.GenerateOption) ([]common.RawCondition, error) {
	opts = append(opts, ai.WithSystemPrompts(ai.ConditionStructuredSystemPrompt))

	var out conditionsOutput
	err := t.client.GenerateCompletionWithFormat(
		ctx,
		"conditions",
		"Graph conditions a person must satisfy",
		text,
		&out,
		opts...,
	)
	if err != nil {
		return nil, classifyCallError(ctx, err)
	}

	if msg := strings.TrimSpace(out.Error); msg != "" {
		msg = strings.TrimSpace(strings.TrimPrefix(msg, ErrorSentinel))
		if msg == "" {
			msg = defaultUnsupportedMessage
		}
		return nil, errors.Unsupported(msg)
	}

	raw := make([]common.RawCondition, 0, len(out.Conditions))
	for _, c := range out.Conditions {
		raw = append(raw, common.RawCondition(c))
	}
	return raw, nil
}

func classifyCallError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.UpstreamTimeout(err)
	}
	return errors.Upstream(err)
}
