package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedPlatform is returned by launchers on a GOOS with no known
// URL opener.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// LaunchError reports a URL that could not be handed to the platform opener.
type LaunchError struct {
	URL string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("opening %s: %v", e.URL, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Launcher opens a URL in the user's preferred application.
type Launcher interface {
	Open(rawURL string) error
}

// Command launches URLs by starting an external program with the URL as its
// last argument.
type Command struct {
	Name string
	Args []string

	// start runs the command; replaced in tests.
	start func(*exec.Cmd) error
}

func (c *Command) Open(rawURL string) error {
	if err := validate(rawURL); err != nil {
		return &LaunchError{URL: rawURL, Err: err}
	}

	args := append(append([]string{}, c.Args...), rawURL)
	cmd := exec.Command(c.Name, args...)

	start := c.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return &LaunchError{URL: rawURL, Err: err}
	}
	return nil
}

type unsupported struct {
	goos string
}

func (u unsupported) Open(rawURL string) error {
	return &LaunchError{URL: rawURL, Err: fmt.Errorf("%w: %s", ErrUnsupportedPlatform, u.goos)}
}

// ForPlatform returns the launcher for goos.
func ForPlatform(goos string) Launcher {
	switch goos {
	case "darwin":
		return &Command{Name: "open"}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return &Command{Name: "xdg-open"}
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return &Command{Name: "rundll32", Args: []string{"url.dll,FileProtocolHandler"}}
	default:
		return unsupported{goos: goos}
	}
}

// Default returns the launcher for the running platform.
func Default() Launcher {
	return ForPlatform(runtime.GOOS)
}

func validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}
