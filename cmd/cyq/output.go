package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/binding"
	"github.com/cypherplan/cyq/src/plan"
)

// writePlanTree prints a plan tree with two-space indentation per level, the
// way the teacher's writeTable rendered one row per line of driver output —
// here each line is one plan node instead of one result record.
func writePlanTree(w io.Writer, root plan.Node) {
	printNode(w, root, 0)
}

func printNode(w io.Writer, n plan.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *plan.ScanNode:
		fmt.Fprintf(w, "%sScan %s AS %s (%s)\n", indent, v.Label.Name, v.Alias, v.Kind)
	case *plan.AllLabelsScan:
		names := make([]string, len(v.Labels))
		for i, l := range v.Labels {
			names[i] = l.Name
		}
		fmt.Fprintf(w, "%sAllLabelsScan AS %s {%s}\n", indent, v.Alias, strings.Join(names, ","))
	case *plan.ValuesNode:
		fmt.Fprintf(w, "%sValues\n", indent)
	case *plan.JoinNode:
		kind := "Inner"
		if v.Type == plan.LeftJoin {
			kind = "Left"
		}
		fmt.Fprintf(w, "%s%sJoin\n", indent, kind)
		for _, q := range v.Quals {
			fmt.Fprintf(w, "%s  on %s\n", indent, ast.PrintExpr(q))
		}
		printNode(w, v.Left, depth+1)
		printNode(w, v.Right, depth+1)
	case *plan.VLENode:
		fmt.Fprintf(w, "%sVLE AS %s labels=%v dir=%v range=%d..%v\n", indent, v.Alias, v.EdgeLabels, v.Direction, v.Range.Lo, rangeHi(v.Range))
		printNode(w, v.Left, depth+1)
	case *plan.FilterNode:
		fmt.Fprintf(w, "%sFilter %s\n", indent, ast.PrintExpr(v.Cond))
		printNode(w, v.Input, depth+1)
	case *plan.ProjectNode:
		cols := make([]string, len(v.Targets))
		for i, t := range v.Targets {
			cols[i] = fmt.Sprintf("%s AS %s", ast.PrintExpr(t.Expr), t.Alias)
		}
		distinct := ""
		if v.Distinct {
			distinct = "DISTINCT "
		}
		fmt.Fprintf(w, "%sProject %s%s\n", indent, distinct, strings.Join(cols, ", "))
		printNode(w, v.Input, depth+1)
	case *plan.SortNode:
		keys := make([]string, len(v.Keys))
		for i, k := range v.Keys {
			dir := "ASC"
			if k.Desc {
				dir = "DESC"
			}
			keys[i] = fmt.Sprintf("%s %s", ast.PrintExpr(k.Expr), dir)
		}
		fmt.Fprintf(w, "%sSort %s\n", indent, strings.Join(keys, ", "))
		printNode(w, v.Input, depth+1)
	case *plan.LimitNode:
		fmt.Fprintf(w, "%sLimit", indent)
		if v.Limit != nil {
			fmt.Fprintf(w, " limit=%s", ast.PrintExpr(v.Limit))
		}
		if v.Offset != nil {
			fmt.Fprintf(w, " offset=%s", ast.PrintExpr(v.Offset))
		}
		fmt.Fprintln(w)
		printNode(w, v.Input, depth+1)
	case *plan.UnwindNode:
		fmt.Fprintf(w, "%sUnwind %s AS %s\n", indent, ast.PrintExpr(v.Expr), v.As)
		printNode(w, v.Input, depth+1)
	case *plan.UnionNode:
		kind := "Union"
		if v.All {
			kind = "UnionAll"
		}
		fmt.Fprintf(w, "%s%s\n", indent, kind)
		printNode(w, v.Left, depth+1)
		printNode(w, v.Right, depth+1)
	case *plan.WriteNode:
		fmt.Fprintf(w, "%sWrite %s target=%s\n", indent, writeOpText(v.Op), v.Target)
		printNode(w, v.Input, depth+1)
	default:
		fmt.Fprintf(w, "%s<unknown node %T>\n", indent, v)
	}
}

func rangeHi(r ast.Range) string {
	if r.HiInfinite {
		return "inf"
	}
	return fmt.Sprintf("%d", r.Hi)
}

func writeOpText(op plan.WriteOp) string {
	switch op {
	case plan.WriteCreate:
		return "CREATE"
	case plan.WriteMergeCreate:
		return "MERGE_CREATE"
	case plan.WriteSetProperty:
		return "SET_PROPERTY"
	case plan.WriteSetPropertyMerge:
		return "SET_PROPERTY_MERGE"
	case plan.WriteSetVariable:
		return "SET_VARIABLE"
	case plan.WriteSetLabel:
		return "SET_LABEL"
	case plan.WriteRemoveProperty:
		return "REMOVE_PROPERTY"
	case plan.WriteRemoveLabel:
		return "REMOVE_LABEL"
	case plan.WriteDeleteNode:
		return "DELETE_NODE"
	case plan.WriteDeleteRel:
		return "DELETE_REL"
	default:
		return "?"
	}
}

// writeBindings prints one line per binding visible at the end of a
// compile, the way `cyq explain` surfaces the resolver's final scope.
func writeBindings(w io.Writer, bindings []*binding.Binding) {
	for _, b := range bindings {
		fmt.Fprintf(w, "  %s : %s\n", b.Name, b.Kind)
	}
}
