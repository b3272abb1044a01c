package route

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTarget = errors.New("Error 404: Unknown pathname")
	ErrMissingParam  = errors.New("missing required param")
)

type fieldKind int

const (
	fieldFixed fieldKind = iota
	fieldSession
	fieldParam
)

// Field is one ordered key=value entry of a route's query string.
type Field struct {
	Key   string
	kind  fieldKind
	value string
	param string
}

func Fixed(key, value string) Field { return Field{Key: key, kind: fieldFixed, value: value} }

func Session() Field { return Field{Key: "session_id", kind: fieldSession} }

// Param forwards the caller param under key. Callers that omit it get no entry.
func Param(key, param string) Field { return Field{Key: key, kind: fieldParam, param: param} }

// Segment is one "/"-separated element of a fragment path.
type Segment struct {
	literal string
	param   string
}

func Lit(s string) Segment { return Segment{literal: s} }

func Var(param string) Segment { return Segment{param: param} }

// Fragment describes the hash-routed part of a URL: "/" + segments + "?" + query.
type Fragment struct {
	Segments []Segment
	Query    []Field
}

// Definition maps a target to a legacy URL shape.
type Definition struct {
	Target   string
	Path     string
	Query    []Field
	Fragment *Fragment
	// Some legacy templates end the query string with "&" right before "#".
	AmpersandBeforeFragment bool
}

type Pair struct {
	Key   string
	Value string
}

type URLParts struct {
	Path              string
	Query             []Pair
	Fragment          string
	HasFragment       bool
	TrailingAmpersand bool
}

func (u URLParts) String() string {
	var b strings.Builder
	b.WriteString(u.Path)
	for i, p := range u.Query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	if u.HasFragment {
		if u.TrailingAmpersand && len(u.Query) > 0 {
			b.WriteByte('&')
		}
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

var valueEscaper = strings.NewReplacer(
	"%", "%25",
	"&", "%26",
	"#", "%23",
	"?", "%3F",
	" ", "%20",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
)

func escapeValue(v string) string { return valueEscaper.Replace(v) }

func (d Definition) build(sessionID string, params map[string]string) (URLParts, error) {
	parts := URLParts{
		Path:              d.Path,
		Query:             buildPairs(d.Query, sessionID, params),
		TrailingAmpersand: d.AmpersandBeforeFragment,
	}
	if d.Fragment == nil {
		return parts, nil
	}

	segs := make([]string, 0, len(d.Fragment.Segments))
	for _, s := range d.Fragment.Segments {
		if s.param == "" {
			segs = append(segs, s.literal)
			continue
		}
		v, ok := params[s.param]
		if !ok || v == "" {
			return URLParts{}, fmt.Errorf("%s: %w: %s", d.Target, ErrMissingParam, s.param)
		}
		segs = append(segs, escapeValue(v))
	}

	frag := "/" + strings.Join(segs, "/")
	if q := buildPairs(d.Fragment.Query, sessionID, params); len(q) > 0 {
		frag += URLParts{Query: q}.String()
	}
	parts.Fragment = frag
	parts.HasFragment = true
	return parts, nil
}

func buildPairs(fields []Field, sessionID string, params map[string]string) []Pair {
	pairs := make([]Pair, 0, len(fields))
	for _, f := range fields {
		switch f.kind {
		case fieldFixed:
			pairs = append(pairs, Pair{Key: f.Key, Value: f.value})
		case fieldSession:
			pairs = append(pairs, Pair{Key: f.Key, Value: escapeValue(sessionID)})
		case fieldParam:
			v, ok := params[f.param]
			if !ok {
				continue
			}
			pairs = append(pairs, Pair{Key: f.Key, Value: escapeValue(v)})
		}
	}
	return pairs
}
