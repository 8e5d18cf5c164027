// SPDX-License-Identifier: MIT

package expr

import (
	"strconv"
	"strings"
)

// String renders the expression in infix form with variables named x0, x1...
func (n *Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n, nil)

	return sb.String()
}

// String renders the compiled expression; see Node.String.
func (f *Func) String() string { return f.root.String() }

// Format renders the compiled expression using names for the variables.
// Indices without a name fall back to the x<i> form.
func (f *Func) Format(names []string) string {
	var sb strings.Builder
	writeNode(&sb, f.root, names)

	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node, names []string) {
	switch {
	case n == nil:
		sb.WriteString("<nil>")
	case n.op == OpVar:
		if n.idx >= 0 && n.idx < len(names) && names[n.idx] != "" {
			sb.WriteString(names[n.idx])
		} else {
			sb.WriteString("x")
			sb.WriteString(strconv.Itoa(n.idx))
		}
	case n.op == OpConst:
		if n.val.IsDegenerated() {
			sb.WriteString(strconv.FormatFloat(n.val.LB(), 'g', -1, 64))
		} else {
			sb.WriteString(n.val.String())
		}
	case n.op == OpNeg:
		sb.WriteString("(-")
		writeNode(sb, n.a, names)
		sb.WriteByte(')')
	case n.op == OpPow:
		writeNode(sb, n.a, names)
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(n.exp))
	case n.op == OpAdd, n.op == OpSub, n.op == OpMul, n.op == OpDiv:
		sb.WriteByte('(')
		writeNode(sb, n.a, names)
		sb.WriteString(n.op.String())
		writeNode(sb, n.b, names)
		sb.WriteByte(')')
	default:
		sb.WriteString(n.op.String())
		sb.WriteByte('(')
		writeNode(sb, n.a, names)
		if n.op.binary() {
			sb.WriteString(", ")
			writeNode(sb, n.b, names)
		}
		sb.WriteByte(')')
	}
}
