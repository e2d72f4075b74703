package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a RegularQuery back into Cypher text. It is not meant to
// reproduce the original formatting — only to satisfy the round-trip
// property of spec.md §8: re-parsing Print(q) must yield a tree that prints
// identically again. Every compound expression is fully parenthesized to
// guarantee that regardless of operator precedence quirks.
func Print(rq *RegularQuery) string {
	var b strings.Builder
	printRegularQuery(&b, rq)
	return b.String()
}

// PrintExpr renders a single expression in the same canonical form Print
// uses for clause bodies.
func PrintExpr(e Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func printRegularQuery(b *strings.Builder, rq *RegularQuery) {
	if rq.Op == OpNone {
		printSingleQuery(b, rq.Single)
	} else {
		printRegularQuery(b, rq.Left)
		b.WriteString("\nUNION")
		if rq.Op == OpUnionAll {
			b.WriteString(" ALL")
		}
		b.WriteByte('\n')
		printRegularQuery(b, rq.Right)
	}
	if len(rq.OrderBy) > 0 {
		b.WriteByte('\n')
		printOrderBy(b, rq.OrderBy)
	}
	if rq.Skip != nil {
		b.WriteString("\nSKIP ")
		printExpr(b, rq.Skip)
	}
	if rq.Limit != nil {
		b.WriteString("\nLIMIT ")
		printExpr(b, rq.Limit)
	}
}

func printSingleQuery(b *strings.Builder, sq *SingleQuery) {
	for i, c := range sq.Clauses {
		if i > 0 {
			b.WriteByte('\n')
		}
		printClause(b, c)
	}
}

func printClause(b *strings.Builder, c *Clause) {
	switch c.Kind() {
	case KindMatch:
		printMatch(b, c.Match)
	case KindCreate:
		b.WriteString("CREATE ")
		printPattern(b, c.Create.Pattern)
	case KindMerge:
		printMerge(b, c.Merge)
	case KindSet:
		printSet(b, c.Set)
	case KindDelete:
		printDelete(b, c.Delete)
	case KindUnwind:
		fmt.Fprintf(b, "UNWIND %s AS %s", PrintExpr(c.Unwind.Expr), c.Unwind.As)
	case KindWith:
		printWith(b, c.With)
	case KindReturn:
		printReturn(b, c.Return)
	case KindCall:
		printCall(b, c.Call)
	}
}

func printMatch(b *strings.Builder, m *Match) {
	if m.Optional {
		b.WriteString("OPTIONAL ")
	}
	b.WriteString("MATCH ")
	printPattern(b, m.Pattern)
	if m.Where != nil {
		b.WriteString(" WHERE ")
		printExpr(b, m.Where)
	}
}

func printMerge(b *strings.Builder, m *Merge) {
	b.WriteString("MERGE ")
	printPath(b, m.Path)
	if len(m.OnCreate) > 0 {
		b.WriteString(" ON CREATE SET ")
		printSetItems(b, m.OnCreate)
	}
	if len(m.OnMatch) > 0 {
		b.WriteString(" ON MATCH SET ")
		printSetItems(b, m.OnMatch)
	}
}

func printSet(b *strings.Builder, s *Set) {
	if s.IsRemove {
		b.WriteString("REMOVE ")
	} else {
		b.WriteString("SET ")
	}
	printSetItems(b, s.Items)
}

func printSetItems(b *strings.Builder, items []*SetItem) {
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		printSetItem(b, it)
	}
}

func printSetItem(b *strings.Builder, it *SetItem) {
	switch it.Kind {
	case SetProperty:
		fmt.Fprintf(b, "%s.%s = %s", it.Variable, it.Property, PrintExpr(it.Value))
	case SetPropertyMerge:
		fmt.Fprintf(b, "%s += %s", it.Variable, PrintExpr(it.Value))
	case SetVariable:
		fmt.Fprintf(b, "%s = %s", it.Variable, PrintExpr(it.Value))
	case SetLabel:
		fmt.Fprintf(b, "%s:%s", it.Variable, it.Label)
	case RemoveProperty:
		fmt.Fprintf(b, "%s.%s", it.Variable, it.Property)
	case RemoveLabel:
		fmt.Fprintf(b, "%s:%s", it.Variable, it.Label)
	}
}

func printDelete(b *strings.Builder, d *Delete) {
	if d.Detach {
		b.WriteString("DETACH ")
	}
	b.WriteString("DELETE ")
	for i, e := range d.Exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		printExpr(b, e)
	}
}

func printWith(b *strings.Builder, w *With) {
	b.WriteString("WITH ")
	if w.Distinct {
		b.WriteString("DISTINCT ")
	}
	if w.Star {
		b.WriteByte('*')
		if len(w.Items) > 0 {
			b.WriteString(", ")
		}
	}
	printReturnItems(b, w.Items)
	if w.Where != nil {
		b.WriteString(" WHERE ")
		printExpr(b, w.Where)
	}
	if len(w.OrderBy) > 0 {
		b.WriteByte(' ')
		printOrderBy(b, w.OrderBy)
	}
	if w.Skip != nil {
		b.WriteString(" SKIP ")
		printExpr(b, w.Skip)
	}
	if w.Limit != nil {
		b.WriteString(" LIMIT ")
		printExpr(b, w.Limit)
	}
}

func printReturn(b *strings.Builder, r *Return) {
	b.WriteString("RETURN ")
	if r.Distinct {
		b.WriteString("DISTINCT ")
	}
	printReturnItems(b, r.Items)
	if len(r.OrderBy) > 0 {
		b.WriteByte(' ')
		printOrderBy(b, r.OrderBy)
	}
	if r.Skip != nil {
		b.WriteString(" SKIP ")
		printExpr(b, r.Skip)
	}
	if r.Limit != nil {
		b.WriteString(" LIMIT ")
		printExpr(b, r.Limit)
	}
}

func printReturnItems(b *strings.Builder, items []*ReturnItem) {
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		printExpr(b, it.Expr)
		if it.HasAlias {
			fmt.Fprintf(b, " AS %s", it.Alias)
		}
	}
}

func printOrderBy(b *strings.Builder, items []*OrderItem) {
	b.WriteString("ORDER BY ")
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		printExpr(b, it.Expr)
		if it.Descending {
			b.WriteString(" DESC")
		}
	}
}

func printCall(b *strings.Builder, c *CallYield) {
	b.WriteString("CALL ")
	if len(c.Namespace) > 0 {
		b.WriteString(strings.Join(c.Namespace, "."))
		b.WriteByte('.')
	}
	fmt.Fprintf(b, "%s(", c.Procedure)
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		printExpr(b, a)
	}
	b.WriteByte(')')
	if len(c.Yields) > 0 {
		b.WriteString(" YIELD ")
		b.WriteString(strings.Join(c.Yields, ", "))
	}
}

func printPattern(b *strings.Builder, p *Pattern) {
	for i, path := range p.Paths {
		if i > 0 {
			b.WriteString(", ")
		}
		printPath(b, path)
	}
}

func printPath(b *strings.Builder, p *Path) {
	if p.VarName != "" {
		fmt.Fprintf(b, "%s = ", p.VarName)
	}
	printNode(b, p.Nodes[0])
	for i, rel := range p.Rels {
		printRel(b, rel)
		printNode(b, p.Nodes[i+1])
	}
}

func printNode(b *strings.Builder, n *NodePattern) {
	b.WriteByte('(')
	if !n.Anonymous {
		b.WriteString(n.Name)
	}
	for _, l := range n.Labels {
		fmt.Fprintf(b, ":%s", l)
	}
	if n.Props != nil {
		b.WriteByte(' ')
		printExpr(b, n.Props)
	}
	b.WriteByte(')')
}

func printRel(b *strings.Builder, r *RelPattern) {
	if r.Direction == DirLeft {
		b.WriteString("<-")
	} else {
		b.WriteString("-")
	}
	b.WriteByte('[')
	if !r.Anonymous {
		b.WriteString(r.Name)
	}
	for _, l := range r.Labels {
		fmt.Fprintf(b, ":%s", l)
	}
	if r.VarLen != nil {
		printRange(b, r.VarLen)
	}
	if r.Props != nil {
		b.WriteByte(' ')
		printExpr(b, r.Props)
	}
	b.WriteByte(']')
	if r.Direction == DirRight {
		b.WriteString("->")
	} else {
		b.WriteString("-")
	}
}

func printRange(b *strings.Builder, r *Range) {
	b.WriteByte('*')
	fmt.Fprintf(b, "%d..", r.Lo)
	if !r.HiInfinite {
		fmt.Fprintf(b, "%d", r.Hi)
	}
}

func printExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		printLiteral(b, n)
	case *ListLiteral:
		b.WriteByte('[')
		for i, it := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, it)
		}
		b.WriteByte(']')
	case *MapLiteral:
		b.WriteByte('{')
		for i, en := range n.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: ", en.Key)
			printExpr(b, en.Value)
		}
		b.WriteByte('}')
	case *Variable:
		b.WriteString(n.Name)
	case *Parameter:
		fmt.Fprintf(b, "$%s", n.Name)
	case *PropertyAccess:
		printExpr(b, n.Target)
		fmt.Fprintf(b, ".%s", n.Property)
	case *Indirection:
		printExpr(b, n.Target)
		b.WriteByte('[')
		if n.IsSlice {
			if n.Lo != nil {
				printExpr(b, n.Lo)
			}
			b.WriteString("..")
			if n.Hi != nil {
				printExpr(b, n.Hi)
			}
		} else {
			printExpr(b, n.Index)
		}
		b.WriteByte(']')
	case *UnaryMinus:
		b.WriteString("-(")
		printExpr(b, n.Operand)
		b.WriteByte(')')
	case *NotExpr:
		b.WriteString("NOT (")
		printExpr(b, n.Operand)
		b.WriteByte(')')
	case *BinaryExpr:
		b.WriteByte('(')
		printExpr(b, n.Left)
		fmt.Fprintf(b, " %s ", binaryOpText(n.Op))
		printExpr(b, n.Right)
		b.WriteByte(')')
	case *BoolExpr:
		b.WriteByte('(')
		for i, o := range n.Operands {
			if i > 0 {
				fmt.Fprintf(b, " %s ", binaryOpText(n.Op))
			}
			printExpr(b, o)
		}
		b.WriteByte(')')
	case *ChainCmp:
		b.WriteByte('(')
		printExpr(b, n.Operands[0])
		for i, op := range n.Ops {
			fmt.Fprintf(b, " %s ", cmpOpText(op))
			printExpr(b, n.Operands[i+1])
		}
		b.WriteByte(')')
	case *StringMatchExpr:
		b.WriteByte('(')
		printExpr(b, n.Left)
		fmt.Fprintf(b, " %s ", stringMatchOpText(n.Op))
		printExpr(b, n.Right)
		b.WriteByte(')')
	case *RegexMatchExpr:
		b.WriteByte('(')
		printExpr(b, n.Left)
		b.WriteString(" =~ ")
		printExpr(b, n.Right)
		b.WriteByte(')')
	case *IsNullExpr:
		b.WriteByte('(')
		printExpr(b, n.Operand)
		if n.Negated {
			b.WriteString(" IS NOT NULL)")
		} else {
			b.WriteString(" IS NULL)")
		}
	case *TypecastExpr:
		b.WriteByte('(')
		printExpr(b, n.Operand)
		fmt.Fprintf(b, " :: %s)", n.Target)
	case *FuncCall:
		printFuncCall(b, n)
	case *CaseExpr:
		printCaseExpr(b, n)
	case *ExistsExpr:
		b.WriteString("EXISTS { ")
		printPattern(b, n.SubPattern.Pattern)
		b.WriteString(" }")
	default:
		fmt.Fprintf(b, "/* unknown expr %T */", n)
	}
}

func printFuncCall(b *strings.Builder, n *FuncCall) {
	if len(n.Namespace) > 0 {
		b.WriteString(strings.Join(n.Namespace, "."))
		b.WriteByte('.')
	}
	b.WriteString(n.Name)
	b.WriteByte('(')
	if n.Star {
		b.WriteByte('*')
	} else {
		if n.Distinct {
			b.WriteString("DISTINCT ")
		}
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpr(b, a)
		}
	}
	b.WriteByte(')')
}

func printCaseExpr(b *strings.Builder, n *CaseExpr) {
	b.WriteString("CASE ")
	if n.Operand != nil {
		printExpr(b, n.Operand)
		b.WriteByte(' ')
	}
	for _, w := range n.Whens {
		b.WriteString("WHEN ")
		printExpr(b, w.When)
		b.WriteString(" THEN ")
		printExpr(b, w.Then)
		b.WriteByte(' ')
	}
	if n.Else != nil {
		b.WriteString("ELSE ")
		printExpr(b, n.Else)
		b.WriteByte(' ')
	}
	b.WriteString("END")
}

func printLiteral(b *strings.Builder, n *Literal) {
	if n.IsNull {
		b.WriteString("NULL")
		return
	}
	switch v := n.Value.(type) {
	case string:
		fmt.Fprintf(b, "'%s'", strings.ReplaceAll(v, "'", "\\'"))
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		fmt.Fprintf(b, "%v", v)
	}
}

func binaryOpText(op BinaryOp) string {
	switch op {
	case OpOr:
		return "OR"
	case OpAnd:
		return "AND"
	case OpXor:
		return "XOR"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpIn:
		return "IN"
	case OpContains:
		return "@>"
	default:
		return "?"
	}
}

func cmpOpText(op CmpOp) string {
	switch op {
	case CmpEq:
		return "="
	case CmpNeq:
		return "<>"
	case CmpLt:
		return "<"
	case CmpLte:
		return "<="
	case CmpGt:
		return ">"
	case CmpGte:
		return ">="
	default:
		return "?"
	}
}

func stringMatchOpText(op StringMatchOp) string {
	switch op {
	case MatchStartsWith:
		return "STARTS WITH"
	case MatchEndsWith:
		return "ENDS WITH"
	case MatchContains:
		return "CONTAINS"
	default:
		return "?"
	}
}
