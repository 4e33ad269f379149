// Package contentstream provides parsing of vector drawing-command streams.
//
// A drawing stream contains the instructions that paint a page: graphics
// state changes, path construction, and paint commands. The parser turns
// the raw stream into a flat sequence of operations:
//
//	parser := contentstream.NewParser(streamData)
//	ops, err := parser.Parse()
//	for _, op := range ops {
//	    fmt.Printf("Operator: %s, Operands: %v\n", op.Operator, op.Operands)
//	}
//
// # Operators of Interest
//
// Graphics state operators:
//   - q, Q - Save/restore graphics state
//   - cm - Modify CTM (current transformation matrix)
//   - w - Set line width
//
// Path operators:
//   - m, l - Move to, line to
//   - c, v, y - Curves (parsed, but ignored downstream)
//   - re - Rectangle
//   - h - Close path
//   - S, s, f, F, f*, B, B*, b, b*, n - Paint / end path
//
// All other operators (text, color, images) are parsed and passed through
// so a downstream interpreter can skip them without losing stream position.
//
// # Operand Types
//
// Operands are concrete Go values: [Number], [Str], [Name], [Array],
// [Dict], [Bool], and [Null].
package contentstream
