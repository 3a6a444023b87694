package browser

import (
	"fmt"

	"github.com/MrSnakeDoc/launchpad/internal/domain"
)

// Launch starts exe detached from this process with args and, when not
// empty, url as its last argument. It returns once the process has been
// spawned; the child is reaped in the background.
func Launch(exe, url string, args ...string) error {
	if exe == "" {
		return fmt.Errorf("%w: no executable", domain.ErrLaunchFailed)
	}
	argv := append([]string{}, args...)
	if url != "" {
		argv = append(argv, url)
	}

	cmd := detachedCommand(exe, argv)
	// nil stdio is wired to the null device by os/exec
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrLaunchFailed, exe, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
