package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// Operand is a single operand value in a drawing stream. The concrete
// types are Number, Str, Name, Array, Dict, Bool, and Null.
type Operand interface{}

// Number is a numeric operand. Integers and reals share one representation;
// the interpreter only ever needs float64 values.
type Number float64

// Str is a string operand.
type Str string

// Name is a name operand (written /Name in the stream).
type Name string

// Array is an array operand.
type Array []Operand

// Dict is a dictionary operand (rare in drawing streams, but possible).
type Dict map[string]Operand

// Bool is a boolean operand.
type Bool bool

// Null is the null operand.
type Null struct{}

// Operation represents a single drawing-stream operation consisting of an
// operator and its operands. Operands are the values that precede the
// operator in the stream.
type Operation struct {
	Operator string    // The operator (e.g., "m", "l", "re", "q")
	Operands []Operand // The operands
}

// Float returns the operand at index i as a float64. The second return
// value is false when the index is out of range or the operand is not
// numeric.
func (op Operation) Float(i int) (float64, bool) {
	if i < 0 || i >= len(op.Operands) {
		return 0, false
	}
	n, ok := op.Operands[i].(Number)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// Floats returns all operands as float64 values. The second return value
// is false when any operand is not numeric.
func (op Operation) Floats() ([]float64, bool) {
	vals := make([]float64, len(op.Operands))
	for i := range op.Operands {
		v, ok := op.Float(i)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// Parser parses drawing streams into a sequence of operations.
// Each operation consists of an operator and its operands.
type Parser struct {
	data     []byte
	pos      int
	ops      []Operation
	operands []Operand
}

// NewParser creates a new drawing-stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{
		data: data,
		pos:  0,
		ops:  make([]Operation, 0),
	}
}

// Parse parses the stream and returns all operations in order. On a
// malformed stream it returns the operations parsed so far together with
// the error, so callers can keep whatever was recovered.
func (p *Parser) Parse() ([]Operation, error) {
	for p.pos < len(p.data) {
		p.skipWhitespace()

		if p.pos >= len(p.data) {
			break
		}

		if err := p.parseNext(); err != nil {
			return p.ops, err
		}
	}

	return p.ops, nil
}

// parseNext parses the next token, which is either an operand (pushed onto
// the operand stack) or an operator (which consumes the stack and creates
// an Operation).
func (p *Parser) parseNext() error {
	start := p.pos

	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil
	}

	c := p.data[p.pos]

	// Potential operator (starts with a letter). true/false/null are
	// disambiguated inside parseOperand, so check those tokens first.
	if isLetter(c) && !p.isKeywordOperand() {
		return p.parseOperator()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("at position %d: %w", start, err)
	}

	p.operands = append(p.operands, operand)
	return nil
}

// isKeywordOperand reports whether the token at the current position is
// true, false, or null.
func (p *Parser) isKeywordOperand() bool {
	end := p.pos
	for end < len(p.data) && !isWhitespace(p.data[end]) && !isDelimiter(p.data[end]) {
		end++
	}
	switch string(p.data[p.pos:end]) {
	case "true", "false", "null":
		return true
	}
	return false
}

// parseOperator parses an operator and creates an operation with the
// current operand stack, then clears the stack.
func (p *Parser) parseOperator() error {
	start := p.pos

	var op bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isLetter(c) || c == '\'' || c == '"' || c == '*' {
			op.WriteByte(c)
			p.pos++
		} else {
			break
		}
	}

	operator := op.String()
	if operator == "" {
		return fmt.Errorf("empty operator at position %d", start)
	}

	operation := Operation{
		Operator: operator,
		Operands: make([]Operand, len(p.operands)),
	}
	copy(operation.Operands, p.operands)

	p.ops = append(p.ops, operation)
	p.operands = p.operands[:0]

	return nil
}

// parseOperand parses a single operand, which can be a number, string,
// name, array, dictionary, boolean, or null.
func (p *Parser) parseOperand() (Operand, error) {
	p.skipWhitespace()

	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]

	// Number (int or real)
	if c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9') {
		return p.parseNumber()
	}

	// String (literal)
	if c == '(' {
		return p.parseString()
	}

	// Hex string
	if c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] != '<' {
		return p.parseHexString()
	}

	// Name
	if c == '/' {
		return p.parseName()
	}

	// Array
	if c == '[' {
		return p.parseArray()
	}

	// Dictionary (rare in drawing streams, but possible)
	if c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
		return p.parseDict()
	}

	// Boolean or null
	if c == 't' || c == 'f' || c == 'n' {
		end := p.pos
		for end < len(p.data) && !isWhitespace(p.data[end]) && !isDelimiter(p.data[end]) {
			end++
		}
		token := string(p.data[p.pos:end])

		switch token {
		case "true":
			p.pos = end
			return Bool(true), nil
		case "false":
			p.pos = end
			return Bool(false), nil
		case "null":
			p.pos = end
			return Null{}, nil
		}
	}

	return nil, fmt.Errorf("unexpected character at position %d: %c", p.pos, c)
}

// parseNumber parses an integer or real number operand.
func (p *Parser) parseNumber() (Operand, error) {
	start := p.pos

	// Handle sign
	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}

	// Read digits and decimal point
	hasDecimal := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	numStr := string(p.data[start:p.pos])

	val, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", numStr, err)
	}
	return Number(val), nil
}

// parseString parses a literal string (...) with escape sequence handling.
func (p *Parser) parseString() (Operand, error) {
	if p.data[p.pos] != '(' {
		return nil, fmt.Errorf("string must start with '('")
	}
	p.pos++ // skip '('

	var result bytes.Buffer
	depth := 1 // Track parenthesis nesting

	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]

		if c == '\\' && p.pos+1 < len(p.data) {
			// Escape sequence
			p.pos++
			next := p.data[p.pos]
			switch next {
			case 'n':
				result.WriteByte('\n')
				p.pos++
			case 'r':
				result.WriteByte('\r')
				p.pos++
			case 't':
				result.WriteByte('\t')
				p.pos++
			case 'b':
				result.WriteByte('\b')
				p.pos++
			case 'f':
				result.WriteByte('\f')
				p.pos++
			case '(':
				result.WriteByte('(')
				p.pos++
			case ')':
				result.WriteByte(')')
				p.pos++
			case '\\':
				result.WriteByte('\\')
				p.pos++
			case '\r':
				// Line continuation - skip the newline
				p.pos++
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				// Line continuation - skip the newline
				p.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				// Octal escape sequence: \ddd (1-3 octal digits)
				octalVal := int(next - '0')
				p.pos++
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					digit := p.data[p.pos]
					if digit < '0' || digit > '7' {
						break
					}
					octalVal = octalVal*8 + int(digit-'0')
					p.pos++
				}
				result.WriteByte(byte(octalVal & 0xFF))
			default:
				// Unknown escape - keep as-is, dropping the backslash
				result.WriteByte(next)
				p.pos++
			}
		} else if c == '(' {
			depth++
			result.WriteByte(c)
			p.pos++
		} else if c == ')' {
			depth--
			if depth > 0 {
				result.WriteByte(c)
			}
			p.pos++
		} else {
			result.WriteByte(c)
			p.pos++
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unclosed string")
	}

	return Str(result.String()), nil
}

// parseHexString parses a hexadecimal string <...>.
func (p *Parser) parseHexString() (Operand, error) {
	if p.data[p.pos] != '<' {
		return nil, fmt.Errorf("hex string must start with '<'")
	}
	p.pos++ // skip '<'

	var result bytes.Buffer

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		if c == '>' {
			p.pos++
			break
		}

		if isWhitespace(c) {
			p.pos++
			continue
		}

		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit: %c", c)
		}

		p.pos++
		// Read second hex digit (if available)
		if p.pos >= len(p.data) || p.data[p.pos] == '>' {
			// Odd number of digits - assume trailing 0
			result.WriteByte(hexValue(c) << 4)
			break
		}

		c2 := p.data[p.pos]
		if isWhitespace(c2) {
			p.skipWhitespace()
			if p.pos >= len(p.data) || p.data[p.pos] == '>' {
				result.WriteByte(hexValue(c) << 4)
				break
			}
			c2 = p.data[p.pos]
		}

		if !isHexDigit(c2) {
			return nil, fmt.Errorf("invalid hex digit: %c", c2)
		}

		result.WriteByte((hexValue(c) << 4) | hexValue(c2))
		p.pos++
	}

	return Str(result.String()), nil
}

// parseName parses a name operand /Name with # escape handling.
func (p *Parser) parseName() (Operand, error) {
	if p.data[p.pos] != '/' {
		return nil, fmt.Errorf("name must start with '/'")
	}
	p.pos++ // skip '/'

	var result bytes.Buffer

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		// Name ends at whitespace or delimiter
		if isWhitespace(c) || isDelimiter(c) {
			break
		}

		// Handle # escape
		if c == '#' && p.pos+2 < len(p.data) {
			p.pos++
			hex1 := p.data[p.pos]
			hex2 := p.data[p.pos+1]
			if isHexDigit(hex1) && isHexDigit(hex2) {
				result.WriteByte((hexValue(hex1) << 4) | hexValue(hex2))
				p.pos += 2
				continue
			}
			// Invalid escape - keep #
			result.WriteByte('#')
			continue
		}

		result.WriteByte(c)
		p.pos++
	}

	return Name(result.String()), nil
}

// parseArray parses an array [...] of operands.
func (p *Parser) parseArray() (Operand, error) {
	if p.data[p.pos] != '[' {
		return nil, fmt.Errorf("array must start with '['")
	}
	p.pos++ // skip '['

	var arr Array

	for p.pos < len(p.data) {
		p.skipWhitespace()

		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}

		if p.data[p.pos] == ']' {
			p.pos++
			break
		}

		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		arr = append(arr, obj)
	}

	return arr, nil
}

// parseDict parses a dictionary <<...>>.
func (p *Parser) parseDict() (Operand, error) {
	if p.pos+1 >= len(p.data) || p.data[p.pos] != '<' || p.data[p.pos+1] != '<' {
		return nil, fmt.Errorf("dictionary must start with '<<'")
	}
	p.pos += 2 // skip '<<'

	dict := make(Dict)

	for p.pos < len(p.data) {
		p.skipWhitespace()

		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			break
		}

		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}

		// Parse key (must be a name)
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}

		key, err := p.parseName()
		if err != nil {
			return nil, err
		}

		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		dict[string(key.(Name))] = value
	}

	return dict, nil
}

// skipWhitespace advances past whitespace characters.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
}

// Helper functions

// isWhitespace reports whether c is a stream whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDelimiter reports whether c is a delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
