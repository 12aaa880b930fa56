package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) {
	RunHelperProcess(t)
}

func TestHelperScript_Match(t *testing.T) {
	t.Parallel()

	script := HelperScript{
		"":            {Stdout: "fallback"},
		"log":         {Stdout: "any log"},
		"log --tags":  {Stdout: "tags"},
		"rev-parse x": {ExitCode: 1},
	}

	tests := map[string]struct {
		args []string
		want HelperProcessConfig
	}{
		"longest key wins": {args: []string{"log", "--tags", "-1"}, want: HelperProcessConfig{Stdout: "tags"}},
		"shorter key":      {args: []string{"log", "--topo-order"}, want: HelperProcessConfig{Stdout: "any log"}},
		"fallback":         {args: []string{"status"}, want: HelperProcessConfig{Stdout: "fallback"}},
	}

	for name, tt := range tests {
		name := name
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, script.match(tt.args))
		})
	}
}

func TestHelperScript_NoMatch(t *testing.T) {
	t.Parallel()

	got := HelperScript{"log": {}}.match([]string{"status"})
	assert.Equal(t, 97, got.ExitCode)
	assert.Contains(t, got.Stderr, "status")
}

func TestCommandContext_RunsHelper(t *testing.T) {
	t.Parallel()

	command := CommandContext(t, HelperScript{"hello": {Stdout: "world", ExitCode: 3}})
	cmd := command(context.Background(), "git", "hello")

	out, err := cmd.Output()
	require.Error(t, err)
	assert.Equal(t, "world", string(out))
	assert.Equal(t, 3, cmd.ProcessState.ExitCode())
}
