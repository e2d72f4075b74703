// Package cypher exposes the single entry point a host query engine calls:
// Compiler.Compile(ctx, catalog, graph_name, query_text) -> plan. It takes
// no parameter values; `$name` references stay in the plan as ast.Parameter
// nodes. Internally it wires L+P (src/parser),
// N (src/binding via src/transform.Context), and X/T/C/U/W (src/transform)
// behind one call, the way the teacher's driver.Session.Run wired
// connection, protocol encoding, and bookmark tracking behind one call.
package cypher

import (
	"context"

	"github.com/google/uuid"

	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/logging"
	"github.com/cypherplan/cyq/src/observability"
	"github.com/cypherplan/cyq/src/parser"
	"github.com/cypherplan/cyq/src/plan"
	"github.com/cypherplan/cyq/src/transform"
)

// Compiler is a reusable compile session: one parser, one plan cache, one
// set of instruments, shared across every Compile call the way the teacher
// built one Parser and reused it across many Session.Run calls.
type Compiler struct {
	cfg    *Config
	log    logging.PhaseLogger
	obs    *observability.Instruments
	parser *parser.Parser
	cache  *planCache
}

// New builds a Compiler. Construction pays participle's one-time
// grammar-validation cost; callers should build one Compiler and reuse it.
func New(cfg *Config, log logging.PhaseLogger) (*Compiler, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logging.NoOpLogger{}
	}
	p, err := parser.New()
	if err != nil {
		return nil, err
	}
	return &Compiler{
		cfg:    cfg,
		log:    log,
		obs:    observability.New(),
		parser: p,
		cache:  newPlanCache(1000),
	}, nil
}

// Compile lexes, parses, resolves, and transforms query into a plan bound
// to graphName's catalog. It takes no parameter values — the plan keeps
// ast.Parameter references, resolved by the host's execution engine at
// run time — and an empty graphName falls back to
// Config.DefaultGraphNamespace the way spec.md §6 describes.
func (c *Compiler) Compile(ctx context.Context, cat catalog.Catalog, graphName, query string) (*plan.Plan, error) {
	if graphName == "" {
		graphName = c.cfg.DefaultGraphNamespace
	}

	correlationID := uuid.New().String()
	_, span := c.obs.StartCompile(ctx, query, c.cfg.Observability)

	key := graphName + "\x00" + query
	p, err := c.cache.fetch(key, func() (*plan.Plan, error) {
		return c.compileUncached(graphName, query, cat)
	})

	category := ""
	if cerr, ok := err.(*cyqerr.Error); ok {
		category = cerr.Category.String()
	}
	c.obs.FinishCompile(span, category, err, c.cfg.Observability)

	if err != nil {
		c.log.Error("compile failed", "correlation_id", correlationID, "graph", graphName, "category", category, "error", err)
		return nil, err
	}
	c.log.Info("compiled query", "correlation_id", correlationID, "graph", graphName, "plan_columns", len(p.Columns))
	return p, nil
}

func (c *Compiler) compileUncached(graphName, query string, cat catalog.Catalog) (*plan.Plan, error) {
	parseLog := c.log.WithPhase(logging.PhaseParse)
	rq, err := c.parser.Parse(query)
	if err != nil {
		parseLog.Error("parse failed", "graph", graphName, "error", err)
		return nil, err
	}
	parseLog.Debug("parsed query", "graph", graphName)

	resolveLog := c.log.WithPhase(logging.PhaseResolve)
	ctx, err := transform.NewContext(cat, graphName)
	if err != nil {
		resolveLog.Error("graph resolution failed", "graph", graphName, "error", err)
		return nil, err
	}

	transformLog := c.log.WithPhase(logging.PhaseTransform)
	p, err := transform.TransformQuery(ctx, rq)
	if err != nil {
		transformLog.Error("transform failed", "graph", graphName, "error", err)
		return nil, err
	}

	c.obs.RecordPlanNodes(int64(countNodes(p.Root)), c.cfg.Observability)
	return p, nil
}

// countNodes walks a plan tree for the plan-size metric; it is a plain
// recursive count, not a cost estimate (spec.md's no-cost-based-planning
// non-goal applies to planning decisions, not to reporting plan size).
func countNodes(n plan.Node) int {
	switch v := n.(type) {
	case *plan.ScanNode, *plan.AllLabelsScan, *plan.ValuesNode:
		return 1
	case *plan.JoinNode:
		return 1 + countNodes(v.Left) + countNodes(v.Right)
	case *plan.VLENode:
		return 1 + countNodes(v.Left)
	case *plan.FilterNode:
		return 1 + countNodes(v.Input)
	case *plan.ProjectNode:
		return 1 + countNodes(v.Input)
	case *plan.SortNode:
		return 1 + countNodes(v.Input)
	case *plan.LimitNode:
		return 1 + countNodes(v.Input)
	case *plan.UnwindNode:
		return 1 + countNodes(v.Input)
	case *plan.UnionNode:
		return 1 + countNodes(v.Left) + countNodes(v.Right)
	case *plan.WriteNode:
		return 1 + countNodes(v.Input)
	default:
		return 1
	}
}
