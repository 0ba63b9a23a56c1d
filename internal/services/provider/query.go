package provider

import (
	"fmt"
	"net/url"
)

const (
	paramAction = "action"
	paramToken  = "token"

	redacted = "[REDACTED]"
)

// Query is the outbound parameter set for one call. It is built per call and
// never stored.
type Query struct {
	Action string
	Token  string
	Params map[string]string
}

// NewQuery copies params so later changes by the caller do not leak in.
// action and token cannot be overridden through params.
func NewQuery(action, token string, params map[string]string) Query {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		if k == paramAction || k == paramToken {
			continue
		}
		copied[k] = v
	}
	return Query{Action: action, Token: token, Params: copied}
}

// Values merges action, token and params into one set.
func (q Query) Values() url.Values {
	values := make(url.Values, len(q.Params)+2)
	values.Set(paramAction, q.Action)
	values.Set(paramToken, q.Token)
	for k, v := range q.Params {
		values.Set(k, v)
	}
	return values
}

// URL appends the query to base, keeping any parameters base already carries.
func (q Query) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	values := u.Query()
	for k, vs := range q.Values() {
		values[k] = vs
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// Redacted is the form written to logs.
func (q Query) Redacted() map[string]string {
	out := make(map[string]string, len(q.Params)+2)
	for k, v := range q.Params {
		out[k] = v
	}
	out[paramAction] = q.Action
	out[paramToken] = redacted
	return out
}
