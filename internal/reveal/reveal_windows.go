//go:build windows

package reveal

import (
	"fmt"
	"syscall"

	"github.com/lxn/win"
)

func open(path string) error {
	file, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	verb, _ := syscall.UTF16PtrFromString("open")
	if !win.ShellExecute(0, verb, file, nil, nil, win.SW_SHOWNORMAL) {
		return fmt.Errorf("ShellExecute 失败：%s", path)
	}
	return nil
}
