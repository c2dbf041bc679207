package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DylanHe215/edb-debugger/pkg/logger"
)

func TestRootCommandWiring(t *testing.T) {
	log := logger.New("commands-test")
	root, err := NewRootCmd(log)
	require.NoError(t, err)

	names := []string{}
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "attach")
	assert.Contains(t, names, "ps")

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbosity"))
}

func TestAttachRejectsMalformedPid(t *testing.T) {
	log := logger.New("commands-test")
	root, err := NewRootCmd(log)
	require.NoError(t, err)

	root.SetArgs([]string{"attach", "notapid"})
	err = root.ExecuteContext(context.Background())
	require.Error(t, err)
}

func TestRunRequiresProgramArgument(t *testing.T) {
	log := logger.New("commands-test")
	root, err := NewRootCmd(log)
	require.NoError(t, err)

	root.SetArgs([]string{"run"})
	err = root.ExecuteContext(context.Background())
	require.Error(t, err)
}

func TestPsListsProcesses(t *testing.T) {
	log := logger.New("commands-test")
	root, err := NewRootCmd(log)
	require.NoError(t, err)

	root.SetArgs([]string{"ps", "--json"})
	err = root.ExecuteContext(context.Background())
	require.NoError(t, err)
}
