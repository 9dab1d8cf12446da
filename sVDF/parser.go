package sVDF

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Parse decodes a whole simple-VDF document, returning the name and value of
// its single top-level entry.  filespec is only used in error messages.
//
// The parser is deliberately forgiving about layout: any mix of spaces,
// tabs and line endings may separate tokens, and //-to-end-of-line comments
// are skipped.  It is strict about structure: unterminated strings, bad
// escape sequences and unbalanced braces are reported as *ParseError values
// naming the byte offset of the problem.  It never panics, whatever the
// input bytes are.
func Parse(data []byte, filespec string) (string, Value, error) {
	p := &parser{filespec: filespec, buf: data}
	p.skipSpace()
	topName, err := p.parseString()
	if err != nil {
		return "", nil, err
	}
	p.skipSpace()
	topValue, err := p.parseValue(0)
	if err != nil {
		return "", nil, err
	}
	p.skipSpace()
	if p.pos < len(p.buf) {
		return "", nil, p.errorf(`expected end of file, got`)
	}
	return topName, topValue, nil
}

type parser struct {
	filespec string
	buf      []byte
	pos      int
}

// Nesting deeper than this is assumed to be a malformed file rather than
// real Steam data (the deepest file Steam writes is 5 or so levels).
const maxDepth = 100

// skipSpace advances past whitespace and //-comments.
func (p *parser) skipSpace() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		case '/':
			if p.pos+1 < len(p.buf) && p.buf[p.pos+1] == '/' {
				for p.pos < len(p.buf) && p.buf[p.pos] != '\n' {
					p.pos++
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// parseString parses a double-quoted string, which may be a name or a value.
// Expects p.pos to be the index of the opening '"'.
func (p *parser) parseString() (string, error) {
	if p.pos >= len(p.buf) {
		return "", p.errorf(`expected '"', got end of file`)
	}
	if p.buf[p.pos] != '"' {
		return "", p.errorf(`expected '"', got`)
	}
	start := p.pos
	pos := p.pos + 1
	b := make([]byte, 0, 16)
	for ; pos < len(p.buf) && p.buf[pos] != '"'; pos++ {
		ch := p.buf[pos]
		if ch == '\\' {
			pos++
			if pos >= len(p.buf) {
				p.pos = pos
				return "", p.errorf(`'\' just before end of file`)
			}
			ch = p.buf[pos]
			// Escape set taken from Source SDK tier1/utlbuffer.cpp.
			switch ch {
			case 'a':
				ch = '\a'
			case 'b':
				ch = '\b'
			case 'f':
				ch = '\f'
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			case 'v':
				ch = '\v'
			case '"', '?', '\\', '\'':
				// ch is already the unescaped byte
			default:
				p.pos = pos - 1
				return "", p.errorf(`bad escape sequence \%c`, ch)
			}
		}
		b = append(b, ch)
	}
	if pos >= len(p.buf) {
		p.pos = start
		return "", p.errorf(`unterminated string`)
	}
	p.pos = pos + 1 // step over the closing '"'
	return string(b), nil
}

// parseValue parses a value: a double-quoted string or a '{'-delimited list
// of name/value pairs.  Expects p.pos to be the index of the '"' or '{'.
func (p *parser) parseValue(depth int) (Value, error) {
	if p.pos >= len(p.buf) {
		return nil, p.errorf(`expected a value, got end of file`)
	}
	switch p.buf[p.pos] {
	case '"':
		return p.parseString()
	case '{':
		return p.parseObj(depth + 1)
	}
	return nil, p.errorf(`expected '"' or '{', got`)
}

// parseObj parses a brace-delimited name-value list.  Expects p.pos to be
// the index of the '{'.
func (p *parser) parseObj(depth int) (*Obj, error) {
	if depth > maxDepth {
		return nil, p.errorf(`lists nested more than %d deep`, maxDepth)
	}
	p.pos++ // step over the '{'
	obj := &Obj{}
	for {
		p.skipSpace()
		if p.pos >= len(p.buf) {
			return nil, p.errorf(`unclosed '{': end of file inside list`)
		}
		switch p.buf[p.pos] {
		case '}':
			p.pos++
			return obj, nil
		case '"':
			name, err := p.parseString()
			if err != nil {
				return nil, err
			}
			p.skipSpace()
			value, err := p.parseValue(depth)
			if err != nil {
				return nil, err
			}
			obj.add(name, value)
		default:
			return nil, p.errorf(`expected '"' or '}', got`)
		}
	}
}

// A ParseError describes where and how a VDF file failed to parse.
type ParseError struct {
	FilePath   string // Which file
	FileOffset int    // Byte offset at which the error was detected (zero-origin)
	LineNumber int    // Which line the error is in (one-origin)
	RuneNumber int    // Which rune the error is at in that line (one-origin)
	Diagnostic string // A description of the problem
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s",
		e.FilePath, e.LineNumber, e.RuneNumber, e.Diagnostic)
}

// errorf builds a *ParseError at the parser's current position.  As a
// convenience, a format ending in " got" has the next rune of input
// appended to the diagnostic.
func (p *parser) errorf(format string, args ...interface{}) error {
	pos := p.pos
	if pos > len(p.buf) {
		pos = len(p.buf)
	}
	lineNum := bytes.Count(p.buf[:pos], []byte{'\n'}) + 1
	lastBOL := bytes.LastIndex(p.buf[:pos], []byte{'\n'}) + 1
	runeNum := utf8.RuneCount(p.buf[lastBOL:pos]) + 1

	diagnostic := fmt.Sprintf(format, args...)
	if len(args) == 0 && len(format) >= 4 && format[len(format)-4:] == " got" {
		nextRune, _ := utf8.DecodeRune(p.buf[pos:])
		diagnostic = fmt.Sprintf("%s %#v", diagnostic, nextRune)
	}
	return &ParseError{
		FilePath:   p.filespec,
		FileOffset: pos,
		LineNumber: lineNum,
		RuneNumber: runeNum,
		Diagnostic: diagnostic,
	}
}
