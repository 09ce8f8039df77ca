package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Query is an ordered set of query parameters. Setting an existing key
// replaces its value but keeps its position.
type Query struct {
	keys   []string
	values map[string]any
}

// NewQuery creates a Query from alternating key, value pairs.
// A trailing key without a value is ignored.
func NewQuery(kv ...any) *Query {
	q := &Query{values: make(map[string]any)}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return q
}

// Set sets key to value. Slices and arrays expand into repeated keys.
// nil values are kept in order but never serialized.
func (q *Query) Set(key string, value any) *Query {
	if q.values == nil {
		q.values = make(map[string]any)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
	return q
}

// Get returns the value stored for key.
func (q *Query) Get(key string) (any, bool) {
	if q == nil {
		return nil, false
	}
	v, ok := q.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (q *Query) Keys() []string {
	if q == nil {
		return nil
	}
	return append([]string(nil), q.keys...)
}

// Len returns the number of keys.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Merge returns a new Query holding q's entries followed by other's.
// On collision other wins.
func (q *Query) Merge(other *Query) *Query {
	out := NewQuery()
	for _, src := range []*Query{q, other} {
		if src == nil {
			continue
		}
		for _, k := range src.keys {
			out.Set(k, src.values[k])
		}
	}
	return out
}

// Encode serializes the query as "k=v&k=v" without a leading "?".
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range q.keys {
		for _, v := range queryValues(q.values[k]) {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(escapeComponent(k))
			b.WriteByte('=')
			b.WriteString(escapeComponent(v))
		}
	}
	return b.String()
}

func queryValues(v any) []string {
	rv, ok := indirect(v)
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if b, ok := rv.Interface().([]byte); ok {
			return []string{string(b)}
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if ev, ok := indirect(rv.Index(i).Interface()); ok {
				out = append(out, formatValue(ev))
			}
		}
		return out
	default:
		return []string{formatValue(rv)}
	}
}

// indirect dereferences pointers and reports false for nil values.
func indirect(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}

func formatValue(rv reflect.Value) string {
	if rv.CanInterface() {
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(rv.Interface())
	}
	return fmt.Sprint(rv)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escapeComponent percent-encodes everything except A-Z a-z 0-9 and -_.!~*'().
func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// BuildURL joins base and path and appends the encoded query.
// A trailing slash on base is dropped and path gets a leading slash.
func BuildURL(base, path string, q *Query) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if qs := q.Encode(); qs != "" {
		return base + path + "?" + qs
	}
	return base + path
}
