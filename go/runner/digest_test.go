package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.skia.org/multisection/go/testutils/unittest"
)

func TestNormalize_StripsTimestampLines(t *testing.T) {
	unittest.SmallTest(t)
	input := []byte("ok\n2026-07-30T10:00:00Z starting up\nstill ok\n")
	got := Normalize(input, nil)
	assert.NotContains(t, string(got), "2026-07-30T10:00:00Z")
	assert.Contains(t, string(got), "ok")
}

func TestNormalize_StripsElapsedLines(t *testing.T) {
	unittest.SmallTest(t)
	input := []byte("building...\ndone, elapsed 12.3s\nok\n")
	got := Normalize(input, nil)
	assert.NotContains(t, string(got), "elapsed")
}

func TestDigestOf_SameInputSameDigest(t *testing.T) {
	unittest.SmallTest(t)
	a := DigestOf([]byte("hello world"))
	b := DigestOf([]byte("hello world"))
	assert.Equal(t, a, b)
	assert.Len(t, string(a), 64)
}

func TestDigestOf_DifferentInputDifferentDigest(t *testing.T) {
	unittest.SmallTest(t)
	a := DigestOf([]byte("hello"))
	b := DigestOf([]byte("world"))
	assert.NotEqual(t, a, b)
}
