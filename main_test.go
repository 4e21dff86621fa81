package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hurryabit/ruceki/internal/logio"
)

func TestRootCommandArgs(t *testing.T) {
	log := &logio.Logger{}
	cmd := rootCommand(log)
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute(), "a module file argument is required")

	cmd = rootCommand(log)
	cmd.SetArgs([]string{"a.pub", "b.pub"})
	assert.Error(t, cmd.Execute(), "only one module file is accepted")
}

func TestRootCommandMissingModule(t *testing.T) {
	var errOut strings.Builder
	log := &logio.Logger{}
	log.SetOutput(&errOut)

	cmd := rootCommand(log)
	cmd.SetArgs([]string{"testdata/no-such-module.pub"})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "failed to load module")
}
