//go:build !windows

package reveal

import (
	"os/exec"
	"runtime"
)

func opener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

func open(path string) error {
	cmd := exec.Command(opener(), path)
	return cmd.Start()
}
