package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// AssertModuleGenerated checks the debug log for the generation of the
// module at index within the top-level list.
func AssertModuleGenerated(t *testing.T, result *HarnessResult, moduleKey string, index int) {
	t.Helper()

	expected := fmt.Sprintf("module=%s index=%d", moduleKey, index)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected log output for module '%s' (#%d) was not found in logs", moduleKey, index,
	)
}

// RequireSourceEqual compares generated source line by line and reports a
// readable diff.
func RequireSourceEqual(t *testing.T, want, got string) {
	t.Helper()

	if diff := cmp.Diff(strings.Split(want, "\n"), strings.Split(got, "\n")); diff != "" {
		t.Fatalf("generated source mismatch (-want +got):\n%s", diff)
	}
}
