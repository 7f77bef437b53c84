package cli

import (
	"context"
	"os/exec"
	"time"
)

// notify shows a short desktop notification. Purely cosmetic: systems
// without notify-send simply do not get one.
func notify(summary string) {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = exec.CommandContext(ctx, "notify-send", "-t", "1000", "-a", "preswitch", summary).Run()
}
