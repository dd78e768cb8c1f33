package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/bisect/pkg/graph"
)

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "x", Partition: "A"}, {ID: "y", Partition: "B"}},
		Edges: []graph.Edge{{From: "x", To: "y", Weight: 5}},
	}

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "x",
	//       "partition": "A"
	//     },
	//     {
	//       "id": "y",
	//       "partition": "B"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "x",
	//       "to": "y",
	//       "weight": 5
	//     }
	//   ]
	// }
}

func ExampleBuild() {
	jsonData := `{
		"nodes": [
			{"id": "a", "partition": "left"},
			{"id": "b", "partition": "left"},
			{"id": "c", "partition": "right"},
			{"id": "d", "partition": "right"}
		],
		"edges": [
			{"from": "a", "to": "c", "weight": 4},
			{"from": "b", "to": "d", "weight": 1, "directed": true}
		]
	}`

	gj, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	b, err := graph.Build(gj)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(b.A)
	fmt.Println(b.B)
	fmt.Println("cut:", b.Graph.CutCost())
	// Output:
	// left: [a, b]
	// right: [c, d]
	// cut: 9
}
