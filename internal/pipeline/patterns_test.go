package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowlang/snow/internal/errors"
)

func TestCheckPatternsFlagsNonExhaustiveMatch(t *testing.T) {
	f := parseFile(t, `type Option do
  case Some(Int)
  case None
end

fn unwrap(v) -> Int do
  match v do
    case Some(x) => x
  end
end
`)
	reports := CheckPatterns(f)
	require.Len(t, reports, 1)
	assert.Equal(t, errors.PAT001, reports[0].Code)
	assert.ElementsMatch(t, []string{"None"}, reports[0].Data["missing"])
}

func TestCheckPatternsAcceptsExhaustiveMatch(t *testing.T) {
	f := parseFile(t, `type Option do
  case Some(Int)
  case None
end

fn unwrap(v) -> Int do
  match v do
    case Some(x) => x
    case None => 0
  end
end
`)
	reports := CheckPatterns(f)
	assert.Empty(t, reports)
}

func TestCheckPatternsFlagsRedundantArm(t *testing.T) {
	f := parseFile(t, `type Option do
  case Some(Int)
  case None
end

fn unwrap(v) -> Int do
  match v do
    case x => 0
    case Some(y) => y
  end
end
`)
	reports := CheckPatterns(f)
	require.Len(t, reports, 1)
	assert.Equal(t, errors.PAT002, reports[0].Code)
}

func TestCheckPatternsFlagsOrPatternBindingMismatch(t *testing.T) {
	f := parseFile(t, `type Option do
  case Some(Int)
  case None
end

fn describe(v) -> Int do
  match v do
    case Some(x) | None => 0
  end
end
`)
	reports := CheckPatterns(f)
	found := false
	for _, r := range reports {
		if r.Code == errors.PAT003 {
			found = true
		}
	}
	assert.True(t, found, "expected a PAT003 or-pattern binding mismatch report")
}

func TestCheckPatternsSkipsMatchWithoutLocalSumType(t *testing.T) {
	f := parseFile(t, `fn classify(v) -> Int do
  match v do
    case Thing(x) => x
  end
end
`)
	reports := CheckPatterns(f)
	assert.Empty(t, reports)
}

func TestCheckPatternsChecksReceiveArms(t *testing.T) {
	f := parseFile(t, `type Msg do
  case Ping
  case Pong
end

actor Echo(start) do
  receive do
    case Ping => send self, start
  end
end
`)
	reports := CheckPatterns(f)
	require.Len(t, reports, 1)
	assert.Equal(t, errors.PAT001, reports[0].Code)
	assert.ElementsMatch(t, []string{"Pong"}, reports[0].Data["missing"])
}
