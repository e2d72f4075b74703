// Package fixture loads a small YAML graph description into the
// catalog.Catalog and vle.AdjacencyIndex implementations tests and the
// cmd/cyq plan/explain subcommands run against. The three catalog
// relations spec.md §6 describes (graph table, label table, per-label fact
// tables) are not persisted by this repository; fixture plays the same role
// YAML-driven config plays elsewhere in the retrieval pack, just aimed at
// schema+data instead of service settings.
package fixture

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/vle"
)

// Document is the YAML shape a fixture file is decoded into.
type Document struct {
	Graph    string         `yaml:"graph"`
	Vertices []VertexDoc    `yaml:"vertices"`
	Edges    []EdgeDoc      `yaml:"edges"`
}

// VertexDoc describes one vertex. Labels may be omitted for an unlabeled
// vertex, or list more than one.
type VertexDoc struct {
	ID     int64                  `yaml:"id"`
	Labels []string               `yaml:"labels"`
	Props  map[string]interface{} `yaml:"props"`
}

// EdgeDoc describes one directed edge between two vertex ids. Exactly one
// label is expected, the way AGE requires every relationship to carry
// exactly one label.
type EdgeDoc struct {
	ID    int64                  `yaml:"id"`
	Label string                 `yaml:"label"`
	Start int64                  `yaml:"start"`
	End   int64                  `yaml:"end"`
	Props map[string]interface{} `yaml:"props"`
}

// Graph is a loaded fixture: a Catalog for the transformer plus a
// vle.AdjacencyIndex and per-vertex property bags for anything that needs
// to evaluate predicates against the data (tests exercising the VLE engine
// end to end).
type Graph struct {
	Catalog   catalog.Catalog
	Adjacency *vle.MemGraph

	VertexLabels map[vle.VertexID][]string
	VertexProps  map[vle.VertexID]map[string]interface{}
	EdgeProps    map[vle.EdgeID]map[string]interface{}
}

// Load reads and parses a fixture file from disk.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return Parse(data)
}

// Parse builds a Graph from already-read YAML bytes, the entry point Load
// delegates to and tests call directly against an inline literal.
func Parse(data []byte) (*Graph, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	if doc.Graph == "" {
		return nil, fmt.Errorf("fixture: missing top-level \"graph\" name")
	}

	cat := catalog.NewMemCatalog()
	g := cat.AddGraph(doc.Graph)
	adj := vle.NewMemGraph()

	out := &Graph{
		Catalog:      cat,
		Adjacency:    adj,
		VertexLabels: make(map[vle.VertexID][]string),
		VertexProps:  make(map[vle.VertexID]map[string]interface{}),
		EdgeProps:    make(map[vle.EdgeID]map[string]interface{}),
	}

	nodeLabels := map[string]bool{}
	edgeLabels := map[string]bool{}
	for _, v := range doc.Vertices {
		for _, l := range v.Labels {
			nodeLabels[l] = true
		}
	}
	for _, e := range doc.Edges {
		edgeLabels[e.Label] = true
	}
	for _, name := range sortedKeys(nodeLabels) {
		g.AddLabel(catalog.NodeLabel, name, "")
	}
	for _, name := range sortedKeys(edgeLabels) {
		g.AddLabel(catalog.EdgeLabel, name, "")
	}

	for _, v := range doc.Vertices {
		id := vle.VertexID(v.ID)
		out.VertexLabels[id] = v.Labels
		out.VertexProps[id] = v.Props
	}
	for _, e := range doc.Edges {
		if e.Label == "" {
			return nil, fmt.Errorf("fixture: edge %d has no label", e.ID)
		}
		adj.AddEdge(vle.EdgeID(e.ID), vle.VertexID(e.Start), vle.VertexID(e.End), e.Label)
		out.EdgeProps[vle.EdgeID(e.ID)] = e.Props
	}

	return out, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
