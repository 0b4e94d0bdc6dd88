package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleNameForPathSingleSegment(t *testing.T) {
	assert.Equal(t, "Math", ModuleNameForPath("math.snow"))
}

func TestModuleNameForPathSnakeCaseSegments(t *testing.T) {
	assert.Equal(t, "Math.LinearAlgebra", ModuleNameForPath("math/linear_algebra.snow"))
}

func TestModuleNameForPathRootMain(t *testing.T) {
	assert.Equal(t, "Main", ModuleNameForPath("main.snow"))
}

func TestModuleNameForPathHyphenatedSegment(t *testing.T) {
	assert.Equal(t, "WebServer.HttpRouter", ModuleNameForPath("web-server/http_router.snow"))
}

func TestModuleNameForPathDeepNesting(t *testing.T) {
	assert.Equal(t, "A.B.C", ModuleNameForPath("a/b/c.snow"))
}
