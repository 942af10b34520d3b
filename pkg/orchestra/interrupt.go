package orchestra

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// InterruptHandler cancels ctx on SIGINT or SIGTERM. Work already past its
// last cancellation check runs to completion.
func InterruptHandler(ctx context.Context, cancel context.CancelFunc, logger *logrus.Entry) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ch)

	select {
	case <-ch:
		logger.Warn("received interrupt signal, no further changes will be saved")
		cancel()
	case <-ctx.Done():
		return
	}
}
