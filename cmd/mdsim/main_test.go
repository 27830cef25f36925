package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCmdRequiresConfigFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run"})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestRunCmdExecutesAgainstTestdataScenario(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--config", "testdata/argon_pair.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestRelaxCmdExecutesAgainstTestdataScenario(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"relax", "--config", "testdata/argon_pair.yaml", "--max-steps", "2000"})
	err := cmd.Execute()
	require.Error(t, err, "testdata scenario has the thermostat disabled, so relax has no target to converge toward")
}
