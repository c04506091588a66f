//go:build integration
// +build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

// restartContainer restarts a docker compose service, e.g. to check that the
// redis-backed product cache outlives the storefront process.
func restartContainer(t *testing.T, ctx context.Context, service string) {
	t.Helper()

	cmd := exec.CommandContext(ctx, "docker", "compose", "restart", service)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose restart %s failed: %v\n%s", service, err, string(out))
	}
}
