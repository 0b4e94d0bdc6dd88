package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProducesArtifactsAndLayouts(t *testing.T) {
	result := Run(DefaultConfig(), Source{
		Filename: "test.snow",
		Code: `type Option do
  case Some(Int)
  case None
end

struct Point do
  x: Int
  y: Int
end
`,
	})

	require.False(t, result.HasErrors())
	require.NotNil(t, result.Artifacts.Module)
	assert.NotNil(t, result.Artifacts.Module.SumTypes["Option"])
	assert.NotNil(t, result.Artifacts.Module.Structs["Point"])

	require.Len(t, result.Layouts, 1)
	assert.Equal(t, "Option", result.Layouts[0].TypeName)

	assert.Contains(t, result.PhaseTimings, "parse")
	assert.Contains(t, result.PhaseTimings, "lower")
	assert.Contains(t, result.PhaseTimings, "pattern_check")
	assert.Contains(t, result.PhaseTimings, "layout")
}

func TestRunAccumulatesParseAndPatternReports(t *testing.T) {
	result := Run(DefaultConfig(), Source{
		Filename: "test.snow",
		Code: `type Option do
  case Some(Int)
  case None
end

fn unwrap(v) -> Int do
  match v do
    case Some(x) => x
  end
end
`,
	})

	require.True(t, result.HasErrors())
	found := false
	for _, r := range result.Reports {
		if r.Code == "PAT001" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRunWithPatternCheckDisabledSkipsPhase(t *testing.T) {
	cfg := Config{CheckPatterns: false, ComputeLayout: false}
	result := Run(cfg, Source{Filename: "test.snow", Code: "struct Point do\n  x: Int\nend\n"})

	assert.Empty(t, result.Reports)
	assert.Empty(t, result.Layouts)
	assert.NotContains(t, result.PhaseTimings, "pattern_check")
	assert.NotContains(t, result.PhaseTimings, "layout")
}
