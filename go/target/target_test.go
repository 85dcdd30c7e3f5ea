package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.skia.org/multisection/go/core"
	"go.skia.org/multisection/go/testutils/unittest"
)

func TestStub_RewritesSlashesAndDots(t *testing.T) {
	unittest.SmallTest(t)
	assert.Equal(t, "tests_unit_foo_py", Stub("tests/unit/foo.py"))
}

func TestNewTargets_ComputesStubPerPath(t *testing.T) {
	unittest.SmallTest(t)
	targets, err := NewTargets([]string{"build.sh", "tests/run.sh"})
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, core.Target{Path: "build.sh", Stub: "build_sh"}, targets[0])
	assert.Equal(t, core.Target{Path: "tests/run.sh", Stub: "tests_run_sh"}, targets[1])
}

func TestNewTargets_RejectsStubCollision(t *testing.T) {
	unittest.SmallTest(t)
	_, err := NewTargets([]string{"a/b.sh", "a_b.sh"})
	require.Error(t, err)
	var cfgErr *core.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewTargets_EmptyInputProducesEmptySlice(t *testing.T) {
	unittest.SmallTest(t)
	targets, err := NewTargets(nil)
	require.NoError(t, err)
	assert.Empty(t, targets)
}
