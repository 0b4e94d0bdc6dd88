package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowlang/snow/internal/errors"
)

func TestLoadBuildsImportGraphAndTopoOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.snow", "import Math.LinearAlgebra\n")
	writeFile(t, root, "math/linear_algebra.snow", "import Math.Stats\n")
	writeFile(t, root, "math/stats.snow", "")

	graph, reports := Load(root)
	require.Empty(t, reports)
	require.Len(t, graph.Modules, 3)

	assert.Equal(t, []string{"Math.LinearAlgebra"}, graph.Modules["Main"].Imports)
	assert.Equal(t, []string{"Math.Stats"}, graph.Modules["Math.LinearAlgebra"].Imports)

	posMain := indexOf(graph.Order, "Main")
	posLinAlg := indexOf(graph.Order, "Math.LinearAlgebra")
	posStats := indexOf(graph.Order, "Math.Stats")
	assert.Less(t, posStats, posLinAlg)
	assert.Less(t, posLinAlg, posMain)
}

func TestLoadFromImportAddsGraphEdge(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.snow", "from Utils import helper\n")
	writeFile(t, root, "utils.snow", "")

	graph, reports := Load(root)
	require.Empty(t, reports)
	assert.Equal(t, []string{"Utils"}, graph.Modules["Main"].Imports)
}

func TestLoadSkipsUnresolvedImportSilently(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.snow", "import Std.List\n")

	graph, reports := Load(root)
	require.Empty(t, reports)
	assert.Equal(t, []string{"Std.List"}, graph.Modules["Main"].Imports)
	assert.Equal(t, []string{"Main"}, graph.Order)
}

func TestLoadReportsSelfImport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "x.snow", "import X\n")

	_, reports := Load(root)
	require.Len(t, reports, 1)
	assert.Equal(t, errors.LDR005, reports[0].Code)
}

func TestLoadReportsCircularDependency(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.snow", "import B\n")
	writeFile(t, root, "b.snow", "import A\n")

	_, reports := Load(root)
	require.NotEmpty(t, reports)

	found := false
	for _, r := range reports {
		if r.Code == errors.LDR002 {
			found = true
			assert.Contains(t, r.Message, "A → B → A")
		}
	}
	assert.True(t, found, "expected an LDR002 circular dependency report")
}

func TestLoadDeterministicOrderAcrossRuns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.snow", "import Alpha\nimport Beta\n")
	writeFile(t, root, "alpha.snow", "")
	writeFile(t, root, "beta.snow", "")

	graph1, _ := Load(root)
	graph2, _ := Load(root)
	assert.Equal(t, graph1.Order, graph2.Order)
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
