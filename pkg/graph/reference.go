package graph

// Reference returns the classic twelve-node example: partitions A and B of
// six nodes each, connected by one-way entries.
func Reference() Graph {
	nodes := []Node{
		{"a", "A"}, {"b", "A"}, {"c", "B"}, {"d", "B"}, {"e", "B"}, {"f", "B"},
		{"g", "A"}, {"h", "B"}, {"i", "B"}, {"j", "A"}, {"k", "A"}, {"l", "A"},
	}
	edges := []Edge{
		{"a", "c", 64, true}, {"a", "f", 8, true}, {"b", "c", 64, true},
		{"c", "d", 128, true}, {"d", "b", 16, true}, {"d", "e", 48, true},
		{"d", "h", 48, true}, {"e", "g", 16, true}, {"f", "a", 16, true},
		{"f", "g", 16, true}, {"g", "l", 8, true}, {"h", "i", 48, true},
		{"i", "k", 12, true}, {"j", "k", 48, true}, {"k", "l", 24, true},
	}
	return Graph{Nodes: nodes, Edges: edges}
}
