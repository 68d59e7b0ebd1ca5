package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is one parsed segment of a canonical path expression. A full
// expression is the chain through Next. Exactly one of Field, Index,
// FieldAll, IndexAll, Filter, or Subtree is set per segment.
type Path struct {
	Field    *string
	Index    *int
	FieldAll bool
	IndexAll bool
	Subtree  bool
	Filter   *Filter
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	for x != nil {
		switch {
		case x.Subtree:
			// ".." already supplies the dot of a following field segment
			buf.WriteString("..")
			x = x.Next
			switch {
			case x == nil:
			case x.FieldAll:
				buf.WriteString("*")
				x = x.Next
			case x.Field != nil:
				buf.WriteString(pathString(*x.Field))
				x = x.Next
			}
			continue
		case x.FieldAll:
			buf.WriteString(".*")
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Filter != nil:
			fmt.Fprintf(buf, "[?(%s)]", x.Filter.Src)
		case x.Field != nil:
			buf.WriteString("." + pathString(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
		x = x.Next
	}
	return buf.String()
}

func pathString(f string) string {
	if strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// ParsePath parses a canonical, $-anchored path expression. The root
// expression "$" parses to a nil chain.
func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrPathSyntax, p)
	}
	if len(p) == 1 {
		return nil, nil
	}
	return parseFrag(p[1:])
}

func parseFrag(frag string) (*Path, error) {
	if len(frag) == 0 {
		return nil, nil
	}
	seg := &Path{}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			seg.Subtree = true
			if len(frag) == 2 {
				return nil, fmt.Errorf("%w: '..' requires a following segment", ErrPathSyntax)
			}
			rest := frag[2:]
			// allow both $..field and $..[0] after descent
			if rest[0] == '[' {
				next, err := parseFrag(rest)
				if err != nil {
					return nil, err
				}
				seg.Next = next
				return seg, nil
			}
			next, err := parseFrag("." + rest)
			if err != nil {
				return nil, err
			}
			seg.Next = next
			return seg, nil
		}
		if len(frag) > 1 && frag[1] == '*' {
			seg.FieldAll = true
			next, err := parseFrag(frag[2:])
			if err != nil {
				return nil, err
			}
			seg.Next = next
			return seg, nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return nil, err
		}
		seg.Field = &field
		next, err := parseFrag(rest)
		if err != nil {
			return nil, err
		}
		seg.Next = next
		return seg, nil
	case '[':
		if strings.HasPrefix(frag, "[?(") {
			src, rest, err := parseFilterBody(frag[3:])
			if err != nil {
				return nil, err
			}
			f, err := newFilter(src)
			if err != nil {
				return nil, err
			}
			seg.Filter = f
			next, err := parseFrag(rest)
			if err != nil {
				return nil, err
			}
			seg.Next = next
			return seg, nil
		}
		if len(frag) > 1 && frag[1] == '\'' {
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return nil, err
			}
			if len(rest) == 0 || rest[0] != ']' {
				return nil, fmt.Errorf("%w: expected ']' after quoted field", ErrPathSyntax)
			}
			seg.Field = &field
			next, err := parseFrag(rest[1:])
			if err != nil {
				return nil, err
			}
			seg.Next = next
			return seg, nil
		}
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return nil, fmt.Errorf("%w: expected '[' <index> ']'", ErrPathSyntax)
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return nil, err
		}
		seg.IndexAll = all
		if !all {
			seg.Index = &index
		}
		next, err := parseFrag(frag[i+2:])
		if err != nil {
			return nil, err
		}
		seg.Next = next
		return seg, nil
	default:
		return nil, fmt.Errorf("%w: expected '.' or '['", ErrPathSyntax)
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: bad index %q", ErrPathSyntax, is)
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("%w: expected field at end of string", ErrPathSyntax)
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("%w: end of string scanning for \"'\"", ErrPathSyntax)
}

// parseFilterBody scans a filter expression up to its closing ")]",
// honoring nested parentheses and quoted strings.
func parseFilterBody(frag string) (src, rest string, err error) {
	depth := 0
	var quote byte
	for i := 0; i < len(frag); i++ {
		c := frag[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			if depth == 0 {
				if i+1 >= len(frag) || frag[i+1] != ']' {
					return "", "", fmt.Errorf("%w: expected ']' after filter", ErrPathSyntax)
				}
				return frag[:i], frag[i+2:], nil
			}
			depth--
		}
	}
	return "", "", fmt.Errorf("%w: unterminated filter", ErrPathSyntax)
}
