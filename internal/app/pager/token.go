package pager

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidToken = errors.New("invalid callback token")
)

type Action string

const (
	ActionSelect Action = "s"
	ActionPage   Action = "p"
	ActionNoop   Action = "x"
)

// NoopToken is carried by the static "page X / Y" label.
const NoopToken = string(ActionNoop)

// Token is the payload of an inline button: a selection carries an absolute
// result index, a navigation carries a page index.
type Token struct {
	Action Action
	Key    string
	Value  int
}

func SelectToken(key string, index int) Token {
	return Token{Action: ActionSelect, Key: key, Value: index}
}

func PageToken(key string, page int) Token {
	return Token{Action: ActionPage, Key: key, Value: page}
}

func (t Token) String() string {
	if t.Action == ActionNoop {
		return NoopToken
	}

	return fmt.Sprintf("%s_%s_%d", t.Action, t.Key, t.Value)
}

// ParseToken is the inverse of Token.String. The key may itself contain
// underscores: the action is everything before the first one and the value
// everything after the last one.
func ParseToken(data string) (Token, error) {
	if data == NoopToken {
		return Token{Action: ActionNoop}, nil
	}

	action, rest, ok := strings.Cut(data, "_")
	if !ok {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, data)
	}

	switch Action(action) {
	case ActionSelect, ActionPage:
	default:
		return Token{}, fmt.Errorf("%w: unknown action %q", ErrInvalidToken, action)
	}

	sep := strings.LastIndex(rest, "_")
	if sep <= 0 {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, data)
	}

	value, err := strconv.Atoi(rest[sep+1:])
	if err != nil || value < 0 {
		return Token{}, fmt.Errorf("%w: bad number in %q", ErrInvalidToken, data)
	}

	return Token{Action: Action(action), Key: rest[:sep], Value: value}, nil
}
