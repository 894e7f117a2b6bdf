package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Label identifies a state within a model.
//
// A Label is either an atom or a tuple of labels. The underlying string is the
// canonical text form: atoms are written bare when they contain no reserved
// characters and quoted otherwise, tuples are written as "(a, b, c)".
// Always build labels with Atom, Tuple or ParseLabel so that equal labels
// compare equal.
type Label string

const labelReserved = "(),\"\\"

// Atom returns the atomic label for s.
func Atom(s string) Label {
	if needsQuoting(s) {
		return Label(strconv.Quote(s))
	}
	return Label(s)
}

// Int returns the atomic label for an integer, the common case for chain states.
func Int(i int) Label {
	return Label(strconv.Itoa(i))
}

// Tuple returns the composite label made of parts, in order.
func Tuple(parts ...Label) Label {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(p))
	}
	if len(parts) == 1 {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return Label(sb.String())
}

// IsTuple reports whether the label is composite.
func (l Label) IsTuple() bool {
	return strings.HasPrefix(string(l), "(")
}

// Parts returns the components of a tuple label.
// An atom is returned as its own single component.
func (l Label) Parts() []Label {
	if !l.IsTuple() {
		return []Label{l}
	}
	p := &labelParser{s: string(l)}
	parts, err := p.tuple()
	if err != nil {
		return []Label{l}
	}
	return parts
}

// Len returns the number of components (1 for atoms).
func (l Label) Len() int {
	return len(l.Parts())
}

// Text returns the unquoted text of an atom, or the canonical form of a tuple.
func (l Label) Text() string {
	s := string(l)
	if strings.HasPrefix(s, `"`) {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}

func (l Label) String() string {
	return string(l)
}

// ParseLabel reads a label from its text form, e.g. "3", "(0, 1)" or
// `("a b", (x, y))`. Whitespace around components is ignored.
func ParseLabel(s string) (Label, error) {
	p := &labelParser{s: s}
	l, err := p.label()
	if err != nil {
		return "", err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return "", fmt.Errorf("label %q: unexpected %q at offset %d", s, p.s[p.pos:], p.pos)
	}
	return l, nil
}

// MustParseLabel is like ParseLabel but panics on malformed input.
func MustParseLabel(s string) Label {
	l, err := ParseLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

func needsQuoting(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return true
	}
	return strings.ContainsAny(s, labelReserved)
}

type labelParser struct {
	s   string
	pos int
}

func (p *labelParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *labelParser) label() (Label, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return "", fmt.Errorf("label %q: unexpected end of input", p.s)
	}
	switch p.s[p.pos] {
	case '(':
		parts, err := p.tuple()
		if err != nil {
			return "", err
		}
		return Tuple(parts...), nil
	case '"':
		prefix, err := strconv.QuotedPrefix(p.s[p.pos:])
		if err != nil {
			return "", fmt.Errorf("label %q: %w", p.s, err)
		}
		p.pos += len(prefix)
		text, err := strconv.Unquote(prefix)
		if err != nil {
			return "", fmt.Errorf("label %q: %w", p.s, err)
		}
		return Atom(text), nil
	default:
		start := p.pos
		for p.pos < len(p.s) && !strings.ContainsRune(labelReserved, rune(p.s[p.pos])) {
			p.pos++
		}
		text := strings.TrimSpace(p.s[start:p.pos])
		if text == "" {
			return "", fmt.Errorf("label %q: empty atom at offset %d", p.s, start)
		}
		return Atom(text), nil
	}
}

// tuple parses "(a, b, ...)" starting at the opening parenthesis.
func (p *labelParser) tuple() ([]Label, error) {
	p.skipSpace()
	if p.pos >= len(p.s) || p.s[p.pos] != '(' {
		return nil, fmt.Errorf("label %q: expected '(' at offset %d", p.s, p.pos)
	}
	p.pos++
	parts := []Label{}
	for {
		p.skipSpace()
		if p.pos < len(p.s) && p.s[p.pos] == ')' {
			p.pos++
			return parts, nil
		}
		part, err := p.label()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, fmt.Errorf("label %q: unterminated tuple", p.s)
		}
		switch p.s[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return parts, nil
		default:
			return nil, fmt.Errorf("label %q: unexpected %q at offset %d", p.s, p.s[p.pos], p.pos)
		}
	}
}

// RelabelFunc maps a state label to a new label.
type RelabelFunc func(Label) Label

// FlattenFirst rewrites ((a, b), c) into (a, b, c). Labels whose first
// component is not a tuple are returned unchanged.
func FlattenFirst(l Label) Label {
	parts := l.Parts()
	if !l.IsTuple() || len(parts) == 0 || !parts[0].IsTuple() {
		return l
	}
	flat := append(parts[0].Parts(), parts[1:]...)
	return Tuple(flat...)
}

// FlattenLast rewrites (a, (b, c)) into (a, b, c). Labels whose last
// component is not a tuple are returned unchanged.
func FlattenLast(l Label) Label {
	parts := l.Parts()
	if !l.IsTuple() || len(parts) == 0 || !parts[len(parts)-1].IsTuple() {
		return l
	}
	flat := append(parts[:len(parts)-1:len(parts)-1], parts[len(parts)-1].Parts()...)
	return Tuple(flat...)
}
