package text

import (
	"errors"
	"maps"
	"regexp"
	"slices"
	"strings"
)

var ErrEmptyContent = errors.New("text: content must not be empty")

// Token is one [name key=value ...] placeholder found in content. Parameter
// keys and values are lower-cased.
type Token struct {
	Name   string
	Params map[string]string
}

// Param returns the named parameter or "".
func (t Token) Param(key string) string {
	return t.Params[strings.ToLower(key)]
}

type Handler func(Token) string

type binding struct {
	name    string
	pattern *regexp.Regexp
	handler Handler
}

// Tokenizer substitutes placeholders. Bindings are applied in the order they
// were first registered, so a replacement can itself contain later tokens.
type Tokenizer struct {
	bindings []binding
	index    map[string]int
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{index: make(map[string]int)}
}

// Bind replaces [name] with a fixed value.
func (t *Tokenizer) Bind(name, value string) {
	t.BindFunc(name, func(Token) string { return value })
}

// BindMap binds every entry of values in name order, so the result does not
// depend on map iteration.
func (t *Tokenizer) BindMap(values map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(values)) {
		t.Bind(k, values[k])
	}
}

// BindFunc registers handler for [name ...]. Rebinding a name replaces its
// handler and keeps its position.
func (t *Tokenizer) BindFunc(name string, handler Handler) {
	key := strings.ToLower(name)
	if i, ok := t.index[key]; ok {
		t.bindings[i].handler = handler
		return
	}
	t.index[key] = len(t.bindings)
	t.bindings = append(t.bindings, binding{
		name:    name,
		pattern: regexp.MustCompile(`(?i)\[` + regexp.QuoteMeta(name) + `(?:\s[^\]\r\n]*)?\]`),
		handler: handler,
	})
}

var paramPattern = regexp.MustCompile(`(\w+)=(\S+)`)

// Render replaces each bound placeholder occurrence with its handler output.
func (t *Tokenizer) Render(content string) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}
	for _, b := range t.bindings {
		content = b.pattern.ReplaceAllStringFunc(content, func(match string) string {
			return b.handler(Token{Name: b.name, Params: parseParams(match)})
		})
	}
	return content, nil
}

func parseParams(match string) map[string]string {
	inner := strings.TrimSuffix(strings.TrimPrefix(match, "["), "]")
	params := make(map[string]string)
	for _, m := range paramPattern.FindAllStringSubmatch(inner, -1) {
		params[strings.ToLower(m[1])] = strings.ToLower(m[2])
	}
	return params
}

// RenderEach renders content once per item, binding each item with bind, and
// concatenates the results.
func RenderEach[T any](content string, items []T, bind func(*Tokenizer, T)) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}
	var sb strings.Builder
	for _, item := range items {
		tk := NewTokenizer()
		bind(tk, item)
		out, err := tk.Render(content)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}
