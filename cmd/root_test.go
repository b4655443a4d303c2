package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_ShowsHelpWithoutSubcommand(t *testing.T) {
	rig := newTestRootCmd()

	rig.cmd.SetArgs([]string{})
	err := rig.cmd.Execute()
	require.NoError(t, err)

	out := rig.out.String()
	assert.Contains(t, out, "awaitscan")
	assert.Contains(t, out, "scan")
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "version")
}

func TestRootCmd_UnknownSubcommand(t *testing.T) {
	rig := newTestRootCmd()

	rig.cmd.SetArgs([]string{"frobnicate"})
	err := rig.cmd.Execute()
	require.Error(t, err)
}

func TestRootCmd_PersistentFlagsRegistered(t *testing.T) {
	rig := newTestRootCmd()

	for _, name := range []string{outputFlagName, excludeFlagName, tuiFlagName, verboseFlagName} {
		if rig.cmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("persistent flag %q not registered", name)
		}
	}
}

func TestResolveWorkflow_BuildsPipeline(t *testing.T) {
	rig := newTestRootCmd()

	// With nothing injected the real pipeline is wired.
	original := workflow
	workflow = nil
	defer func() { workflow = original }()

	built := resolveWorkflow(rig.cmd)
	require.NotNil(t, built)

	if strings.Contains(strings.ToLower(rig.out.String()), "error") {
		t.Fatalf("resolveWorkflow produced unexpected output: %s", rig.out.String())
	}
}
