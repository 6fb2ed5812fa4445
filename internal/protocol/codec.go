package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrNotAnArray       = errors.New("message is not an array")
	ErrEmptyArray       = errors.New("empty message array")
	ErrMissingTag       = errors.New("invalid command type")
	ErrArity            = errors.New("missing argument")
	ErrType             = errors.New("invalid argument")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUnknownKey       = errors.New("unknown key")
	ErrUnknownButton    = errors.New("unknown button type")
)

// Parse decodes a single text frame into a Command.
//
// Numeric arguments must be JSON integers: dx, dy and wheel amounts within
// int32, click counts within uint32. Elements past a command's arity are
// ignored.
func Parse(data []byte) (Command, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after message", ErrMalformedPayload)
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotAnArray, jsonKind(v))
	}
	if len(arr) == 0 {
		return nil, ErrEmptyArray
	}

	tag, ok := arr[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: tag is %s", ErrMissingTag, jsonKind(arr[0]))
	}
	args := arguments{tag: tag, vals: arr[1:]}

	switch tag {
	case TagMove:
		if err := args.need(2); err != nil {
			return nil, err
		}
		dx, err := args.int32At(0, "dx")
		if err != nil {
			return nil, err
		}
		dy, err := args.int32At(1, "dy")
		if err != nil {
			return nil, err
		}
		return MouseMove{DX: dx, DY: dy}, nil

	case TagButton:
		if err := args.need(2); err != nil {
			return nil, err
		}
		name, err := args.stringAt(0, "button")
		if err != nil {
			return nil, err
		}
		count, err := args.uint32At(1, "count")
		if err != nil {
			return nil, err
		}
		button, ok := buttons[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownButton, name)
		}
		return ButtonClick{Button: button, Count: count}, nil

	case TagWheel:
		if err := args.need(1); err != nil {
			return nil, err
		}
		dy, err := args.int32At(0, "dy")
		if err != nil {
			return nil, err
		}
		return Wheel{DY: dy}, nil

	case TagText:
		if err := args.need(1); err != nil {
			return nil, err
		}
		text, err := args.stringAt(0, "text")
		if err != nil {
			return nil, err
		}
		return TextInput{Text: text}, nil

	case TagKey:
		if err := args.need(1); err != nil {
			return nil, err
		}
		name, err := args.stringAt(0, "key")
		if err != nil {
			return nil, err
		}
		key, ok := keys[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
		return KeyPress{Key: key}, nil

	case TagPing:
		return Ping{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tag)
}

// arguments holds the positional values following a tag.
type arguments struct {
	tag  string
	vals []any
}

func (a arguments) need(n int) error {
	if len(a.vals) < n {
		return fmt.Errorf("%w: %q takes %d arguments, got %d", ErrArity, a.tag, n, len(a.vals))
	}
	return nil
}

func (a arguments) stringAt(i int, name string) (string, error) {
	s, ok := a.vals[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %s", ErrType, name, jsonKind(a.vals[i]))
	}
	return s, nil
}

func (a arguments) int32At(i int, name string) (int32, error) {
	n, err := a.integer(i, name, 32, true)
	return int32(n), err
}

func (a arguments) uint32At(i int, name string) (uint32, error) {
	n, err := a.integer(i, name, 32, false)
	return uint32(n), err
}

func (a arguments) integer(i int, name string, bits int, signed bool) (int64, error) {
	num, ok := a.vals[i].(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number, got %s", ErrType, name, jsonKind(a.vals[i]))
	}
	if signed {
		n, err := strconv.ParseInt(num.String(), 10, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %s is not a %d-bit integer", ErrType, name, num, bits)
		}
		return n, nil
	}
	n, err := strconv.ParseUint(num.String(), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s is not an unsigned %d-bit integer", ErrType, name, num, bits)
	}
	return int64(n), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
