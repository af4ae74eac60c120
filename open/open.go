// Package open hands files and directories to the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/vidtouch/vidtouch/constant"
	"github.com/vidtouch/vidtouch/filesystem"
)

// Start opens input with the default handler and returns without waiting.
func Start(input string) error {
	cmd, ok := command(input)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// Reveal opens the directory holding path, or path itself when it is a directory.
func Reveal(path string) error {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}

	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	return Start(path)
}

func command(input string) (*exec.Cmd, bool) {
	switch runtime.GOOS {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), true
	case constant.Darwin:
		return exec.Command("open", input), true
	case constant.Linux:
		return exec.Command("xdg-open", input), true
	case constant.Android:
		return exec.Command("termux-open", input), true
	default:
		return nil, false
	}
}
