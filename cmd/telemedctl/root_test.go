package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_RefusesVolatileStorage(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"users", "list"})

	err := cmd.Execute()
	require.ErrorIs(t, err, errVolatileStorage)
}

func TestUsersCmd_Tree(t *testing.T) {
	users := newUsersCmd()
	var names []string
	for _, c := range users.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "delete", "promote"}, names)

	add, _, err := users.Find([]string{"add"})
	require.NoError(t, err)
	assert.Equal(t, "usuario", add.Flag("role").DefValue)
}
