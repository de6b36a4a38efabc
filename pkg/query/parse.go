package query

import (
	"strings"

	"github.com/OFFIS-RIT/peoplegraph/pkg/ai"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
)

// ErrorSentinel prefixes a model answer that declines the question.
const ErrorSentinel = "ERROR:"

const defaultUnsupportedMessage = "This type of query is not supported."

// ParseConditions reads the textual answer of the language model. The
// answer is either a line starting with ErrorSentinel, which becomes an
// ErrUnsupportedQueryType carrying the rest of the line, or a literal list
// of tuples of quoted strings:
//
//	[("Person", "SPEAKS", "English"), ('Person', 'WORKS_AT', 'Microsoft')]
//
// Square brackets may be used for the inner tuples and trailing commas are
// allowed. Anything else, including numbers, names or nested lists, is an
// ErrInvalidFormat. Arity is not checked here.
func ParseConditions(output string) ([]common.RawCondition, error) {
	s := ai.StripCodeFence(output)
	if s == "" {
		return nil, errors.InvalidFormatf("language model returned an empty answer")
	}

	if len(s) >= len(ErrorSentinel) && strings.EqualFold(s[:len(ErrorSentinel)], ErrorSentinel) {
		msg := strings.TrimSpace(s[len(ErrorSentinel):])
		if msg == "" {
			msg = defaultUnsupportedMessage
		}
		return nil, errors.Unsupported(msg)
	}

	p := &literalParser{src: s}
	conds, err := p.list()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.fail("unexpected trailing input")
	}
	return conds, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *literalParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *literalParser) skipSpace() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *literalParser) fail(reason string) error {
	return errors.InvalidFormatf("cannot read conditions at offset %d: %s", p.pos, reason)
}

func (p *literalParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.fail("expected '" + string(c) + "'")
	}
	p.pos++
	return nil
}

func (p *literalParser) list() ([]common.RawCondition, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	conds := []common.RawCondition{}
	for {
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			return conds, nil
		}

		cond, err := p.tuple()
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
		default:
			return nil, p.fail("expected ',' or ']'")
		}
	}
}

func (p *literalParser) tuple() (common.RawCondition, error) {
	p.skipSpace()
	var closing byte
	switch p.peek() {
	case '(':
		closing = ')'
	case '[':
		closing = ']'
	default:
		return nil, p.fail("expected a tuple")
	}
	p.pos++

	cond := common.RawCondition{}
	for {
		p.skipSpace()
		if p.peek() == closing {
			p.pos++
			return cond, nil
		}

		value, err := p.str()
		if err != nil {
			return nil, err
		}
		cond = append(cond, value)

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
		default:
			return nil, p.fail("expected ',' or '" + string(closing) + "'")
		}
	}
}

func (p *literalParser) str() (string, error) {
	quote := p.peek()
	if quote != '"' && quote != '\'' {
		return "", p.fail("expected a quoted string")
	}
	p.pos++

	var b strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case quote:
			return b.String(), nil
		case '\n':
			return "", p.fail("unterminated string")
		case '\\':
			if p.done() {
				return "", p.fail("unterminated string")
			}
			esc := p.src[p.pos]
			p.pos++
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '\'':
				b.WriteByte(esc)
			default:
				return "", p.fail("unknown escape sequence")
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", p.fail("unterminated string")
}
