package catalog

import "sort"

// memGraph is an in-memory Graph used by tests, the cmd/cyq plan/explain
// subcommands, and src/fixture's YAML-loaded graphs.
type memGraph struct {
	name   string
	labels map[LabelKind]map[string]LabelInfo
	nextID int
}

func newMemGraph(name string) *memGraph {
	return &memGraph{
		name: name,
		labels: map[LabelKind]map[string]LabelInfo{
			NodeLabel: {},
			EdgeLabel: {},
		},
	}
}

// AddLabel registers a label and returns its assigned LabelInfo. Relation
// defaults to "<graph>.<label>" when left empty, mirroring how AGE derives
// a per-label table name from the graph's schema and the label itself.
func (g *memGraph) AddLabel(kind LabelKind, name, relation string) LabelInfo {
	g.nextID++
	if relation == "" {
		relation = g.name + "." + name
	}
	info := LabelInfo{Name: name, Kind: kind, ID: g.nextID, Relation: relation}
	g.labels[kind][name] = info
	return info
}

func (g *memGraph) Name() string { return g.name }

func (g *memGraph) Label(kind LabelKind, name string) (LabelInfo, bool) {
	info, ok := g.labels[kind][name]
	return info, ok
}

func (g *memGraph) Labels(kind LabelKind) []LabelInfo {
	out := make([]LabelInfo, 0, len(g.labels[kind]))
	for _, info := range g.labels[kind] {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemCatalog is a Catalog backed by an in-process map, populated directly
// or via src/fixture's YAML loader.
type MemCatalog struct {
	graphs map[string]*memGraph
}

func NewMemCatalog() *MemCatalog {
	return &MemCatalog{graphs: make(map[string]*memGraph)}
}

// AddGraph registers a new empty graph and returns it for label population.
func (c *MemCatalog) AddGraph(name string) *memGraph {
	g := newMemGraph(name)
	c.graphs[name] = g
	return g
}

func (c *MemCatalog) ResolveGraph(name string) (Graph, error) {
	g, ok := c.graphs[name]
	if !ok {
		return nil, &ErrUnknownGraph{Name: name}
	}
	return g, nil
}
