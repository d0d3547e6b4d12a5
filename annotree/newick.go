// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ReadNewick reads a tree in parenthetical (newick) format
// with annotated nodes.
//
// Annotations are given as comments
// that start with an ampersand,
// using key-value pairs separated by commas,
// and they can be placed after the node label
// or around the branch length,
// as in the trees produced by BEAST and TreeTime:
//
//	((A[&country="France"]:0.5,B[&country="Spain"]:0.7)[&country="France"]:0.2,C:[&country="Italy"]1.1);
//
// Values are stored as strings,
// with the quotes removed.
// Sets
// (values enclosed in curly brackets)
// are stored as they were read.
// Comments that do not start with an ampersand are ignored.
// The tree can be preceded by a rooting comment
// (for example, "[&R]"),
// and by a "tree <name> =" prefix,
// as found in NEXUS tree blocks.
func ReadNewick(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("while reading newick tree: %v", err)
	}

	p := &parser{
		data: data,
		t:    New(),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	p.t.setHeights()
	return p.t, nil
}

type parser struct {
	data []byte
	pos  int
	t    *Tree
}

func (p *parser) errorf(format string, a ...any) error {
	return fmt.Errorf("newick: at byte %d: %s", p.pos, fmt.Sprintf(format, a...))
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.data[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.data[p.pos])) {
		p.pos++
	}
}

func (p *parser) parse() error {
	p.skipSpace()
	if p.eof() {
		return fmt.Errorf("newick: empty tree")
	}
	p.skipTreeName()

	// rooting comments
	for {
		p.skipSpace()
		if p.peek() != '[' {
			break
		}
		if _, err := p.readComment(); err != nil {
			return err
		}
	}

	if err := p.readNode(-1); err != nil {
		return err
	}

	p.skipSpace()
	if p.peek() != ';' {
		return p.errorf("expecting ';'")
	}
	return nil
}

// skipTreeName skips a NEXUS style prefix
// of the form "tree <name> =".
func (p *parser) skipTreeName() {
	rest := p.data[p.pos:]
	if len(rest) < 5 || !strings.EqualFold(string(rest[:4]), "tree") || !unicode.IsSpace(rune(rest[4])) {
		return
	}
	eq := strings.IndexByte(string(rest), '=')
	if eq < 0 {
		return
	}
	p.pos += eq + 1
}

func (p *parser) readNode(parent int) error {
	n := p.t.add(parent)

	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		for {
			if err := p.readNode(n.id); err != nil {
				return err
			}
			p.skipSpace()
			c := p.peek()
			if c == ',' {
				p.pos++
				continue
			}
			if c == ')' {
				p.pos++
				break
			}
			if p.eof() {
				return p.errorf("unexpected end of tree: expecting ')'")
			}
			return p.errorf("unexpected character %q", c)
		}
	}

	label, err := p.readLabel()
	if err != nil {
		return err
	}
	n.taxon = label

	for {
		p.skipSpace()
		switch p.peek() {
		case '[':
			ann, err := p.readComment()
			if err != nil {
				return err
			}
			for k, v := range ann {
				n.traits[k] = v
			}
			continue
		case ':':
			p.pos++
			for {
				p.skipSpace()
				if p.peek() != '[' {
					break
				}
				ann, err := p.readComment()
				if err != nil {
					return err
				}
				for k, v := range ann {
					n.traits[k] = v
				}
			}
			l, err := p.readBrLen()
			if err != nil {
				return err
			}
			n.brLen = l
			continue
		}
		break
	}
	return nil
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', ',', ':', ';', '[':
		return true
	}
	return unicode.IsSpace(rune(c))
}

func (p *parser) readLabel() (string, error) {
	p.skipSpace()
	if c := p.peek(); c == '\'' || c == '"' {
		return p.readQuoted(c)
	}

	start := p.pos
	for !p.eof() && !isDelim(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos]), nil
}

// readQuoted reads a quoted string.
// A doubled quote is read as a single quote.
func (p *parser) readQuoted(q byte) (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for {
		if p.eof() {
			p.pos = start
			return "", p.errorf("unterminated quoted string")
		}
		c := p.data[p.pos]
		p.pos++
		if c != q {
			b.WriteByte(c)
			continue
		}
		if p.peek() == q {
			b.WriteByte(q)
			p.pos++
			continue
		}
		return b.String(), nil
	}
}

func (p *parser) readBrLen() (float64, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && strings.IndexByte("0123456789+-.eE", p.data[p.pos]) >= 0 {
		p.pos++
	}
	if start == p.pos {
		return 0, p.errorf("expecting branch length")
	}
	v := string(p.data[start:p.pos])
	l, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid branch length %q: %v", v, err)
	}
	return l, nil
}

// readComment reads a comment enclosed in square brackets.
// If the comment starts with an ampersand,
// it returns the annotations in the comment.
func (p *parser) readComment() (map[string]string, error) {
	start := p.pos
	p.pos++ // opening bracket
	if p.peek() != '&' {
		end := strings.IndexByte(string(p.data[p.pos:]), ']')
		if end < 0 {
			p.pos = start
			return nil, p.errorf("unterminated comment")
		}
		p.pos += end + 1
		return nil, nil
	}
	p.pos++

	ann := make(map[string]string)
	for {
		p.skipSpace()
		if p.eof() {
			p.pos = start
			return nil, p.errorf("unterminated comment")
		}
		if p.peek() == ']' {
			p.pos++
			return ann, nil
		}

		kStart := p.pos
		for !p.eof() && strings.IndexByte("=,]", p.data[p.pos]) < 0 {
			p.pos++
		}
		key := strings.TrimSpace(string(p.data[kStart:p.pos]))

		var val string
		hasVal := false
		if p.peek() == '=' {
			p.pos++
			v, err := p.readValue()
			if err != nil {
				return nil, err
			}
			val = v
			hasVal = true
		}
		// keys without values,
		// such as the rooting flag,
		// are ignored.
		if key != "" && hasVal {
			ann[key] = val
		}

		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *parser) readValue() (string, error) {
	p.skipSpace()
	switch c := p.peek(); c {
	case '"', '\'':
		return p.readQuoted(c)
	case '{':
		start := p.pos
		depth := 0
		for !p.eof() {
			switch p.data[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
			}
			p.pos++
			if depth == 0 {
				return string(p.data[start:p.pos]), nil
			}
		}
		p.pos = start
		return "", p.errorf("unterminated set")
	}

	start := p.pos
	for !p.eof() && strings.IndexByte(",]", p.data[p.pos]) < 0 {
		p.pos++
	}
	return strings.TrimSpace(string(p.data[start:p.pos])), nil
}
