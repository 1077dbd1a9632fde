// Package filter matches fetched messages against a dotted attribute path
// in their JSON bodies. It performs no I/O.
package filter

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/eliauren/sqs-dlq-redrive-webapp/aws"
)

// Result is one message that passed the filter. When the body failed to
// parse, ParseError is set and AttributeValue is meaningless. When the
// attribute was found, AttributeValue holds the original typed value from
// the body, not its string form.
type Result struct {
	Message        aws.Message
	AttributeValue any
	HasAttribute   bool
	ParseError     error
}

// Apply filters messages on the attribute at path equalling expected.
// Messages without a body are skipped. Messages whose body is not valid
// JSON are always emitted with ParseError set, regardless of exclude.
// A message whose attribute is absent counts as not matching, so it is
// emitted only when exclude is set. With exclude set, the emitted set is
// the non-matching messages instead of the matching ones.
func Apply(messages []aws.Message, path, expected string, exclude bool) []Result {
	var results []Result

	for _, msg := range messages {
		if msg.Body == "" {
			continue
		}

		var body any
		if err := json.Unmarshal([]byte(msg.Body), &body); err != nil {
			results = append(results, Result{Message: msg, ParseError: err})
			continue
		}

		value, found := resolve(body, path)
		if !found {
			if exclude {
				results = append(results, Result{Message: msg})
			}
			continue
		}

		if (stringify(value) == expected) != exclude {
			results = append(results, Result{
				Message:        msg,
				AttributeValue: value,
				HasAttribute:   true,
			})
		}
	}

	return results
}

// resolve walks the dotted path through nested JSON objects. The walk
// fails as soon as a traversed value is not an object; an empty path never
// resolves.
func resolve(body any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	current := body
	for _, field := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[field]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringify renders a JSON value the way the comparison expects: numbers
// and booleans in their canonical text form, strings as-is.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
