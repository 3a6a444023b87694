package browser

import (
	"context"

	"github.com/MrSnakeDoc/launchpad/internal/logger"
)

// DefaultBrowser returns the OS identifier of the default web browser, or
// "" when it cannot be read.
func (d *Detector) DefaultBrowser(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, d.opts.LookupTimeout)
	defer cancel()

	id, err := defaultBrowserID(ctx, d.opts.GOOS)
	if err != nil {
		d.log.Warn("failed to read default browser", logger.Error(err))
		return ""
	}
	return id
}
