package benchmarks

import (
	"context"
	"testing"

	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/cypher"
)

func benchCatalog() catalog.Catalog {
	c := catalog.NewMemCatalog()
	g := c.AddGraph("social")
	g.AddLabel(catalog.NodeLabel, "Person", "")
	g.AddLabel(catalog.EdgeLabel, "KNOWS", "")
	return c
}

func BenchmarkCompileSimpleMatchReturn(b *testing.B) {
	compiler, err := cypher.New(nil, nil)
	if err != nil {
		b.Fatal(err)
	}
	cat := benchCatalog()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := compiler.Compile(ctx, cat, "social", "MATCH (n) RETURN n"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileFilterOrderLimit(b *testing.B) {
	compiler, err := cypher.New(nil, nil)
	if err != nil {
		b.Fatal(err)
	}
	cat := benchCatalog()
	ctx := context.Background()
	query := `MATCH (a:Person)-[r:KNOWS]->(b:Person)
WHERE a.name = 'foo' AND r.since < 2020
RETURN a.name, b.name, r.since
ORDER BY r.since DESC
LIMIT 10`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := compiler.Compile(ctx, cat, "social", query); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompileUncachedEachIteration(b *testing.B) {
	cat := benchCatalog()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compiler, err := cypher.New(nil, nil)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := compiler.Compile(ctx, cat, "social", "MATCH (a:Person)-[:KNOWS]->(b:Person) RETURN a, b"); err != nil {
			b.Fatal(err)
		}
	}
}
