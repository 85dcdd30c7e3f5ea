package sklog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"go.skia.org/multisection/go/sklog"
)

func TestInfof_WritesLevelPrefixAndMessage(t *testing.T) {
	var buf bytes.Buffer
	sklog.SetOutput(&buf)
	sklog.SetThreshold(sklog.Debug)
	defer sklog.SetThreshold(sklog.Info)

	sklog.Infof("probing commit %s", "abc123")

	require.Equal(t, byte('I'), buf.Bytes()[0])
	require.Contains(t, buf.String(), "probing commit abc123")
}

func TestSetThreshold_SuppressesLowerSeverity(t *testing.T) {
	var buf bytes.Buffer
	sklog.SetOutput(&buf)
	sklog.SetThreshold(sklog.Warning)
	defer sklog.SetThreshold(sklog.Info)

	sklog.Info("should not appear")
	sklog.Warning("should appear")

	require.NotContains(t, buf.String(), "should not appear")
	require.Contains(t, buf.String(), "should appear")
}
