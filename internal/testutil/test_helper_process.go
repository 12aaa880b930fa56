// Package testutil provides test helpers shared by gitchangelog packages.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"testing"
)

// HelperProcessConfig configures one canned response of the helper process.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
}

// HelperScript maps an argument substring to the response for commands whose
// space-joined arguments contain it. The longest matching key wins; the
// empty key is the fallback.
type HelperScript map[string]HelperProcessConfig

// Environment variables understood by the helper process.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessScript contains the JSON-encoded HelperScript.
	EnvHelperProcessScript = "GO_HELPER_PROCESS_SCRIPT"
	// EnvHelperProcessArgs contains the original command-line arguments (JSON array).
	EnvHelperProcessArgs = "GO_HELPER_PROCESS_ARGS"
)

// RunHelperProcess turns the test binary into a fake command when it was
// started by CommandContext. Call it from a test named TestHelperProcess:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.RunHelperProcess(t)
//	}
//
// Outside a helper invocation it returns immediately.
func RunHelperProcess(t *testing.T) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	var script HelperScript
	_ = json.Unmarshal([]byte(os.Getenv(EnvHelperProcessScript)), &script)

	var args []string
	_ = json.Unmarshal([]byte(os.Getenv(EnvHelperProcessArgs)), &args)

	resp := script.match(args)
	fmt.Fprint(os.Stdout, resp.Stdout)
	fmt.Fprint(os.Stderr, resp.Stderr)
	os.Exit(resp.ExitCode)
}

func (s HelperScript) match(args []string) HelperProcessConfig {
	joined := strings.Join(args, " ")

	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, k := range keys {
		if strings.Contains(joined, k) {
			return s[k]
		}
	}
	return HelperProcessConfig{ExitCode: 97, Stderr: "helper: no scripted response for: " + joined}
}

// CommandContext returns a replacement for exec.CommandContext that runs
// the test binary's TestHelperProcess with script instead of the real
// command. The original arguments are forwarded through the environment.
func CommandContext(t *testing.T, script HelperScript) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	scriptJSON, err := json.Marshal(script)
	if err != nil {
		t.Fatalf("encoding helper script: %v", err)
	}

	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		argsJSON, _ := json.Marshal(args)
		cmd := exec.CommandContext(ctx, testBinary, "-test.run=^TestHelperProcess$")
		cmd.Env = append(os.Environ(),
			EnvWantHelperProcess+"=1",
			EnvHelperProcessScript+"="+string(scriptJSON),
			EnvHelperProcessArgs+"="+string(argsJSON),
		)
		return cmd
	}
}
