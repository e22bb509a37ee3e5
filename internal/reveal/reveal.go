// Package reveal 用系统默认程序打开生成的报告。
package reveal

import (
	"errors"
	"path/filepath"
)

var ErrNoPath = errors.New("打开路径为空")

// Open 把 path 交给系统 shell 打开，不等待查看器退出。
func Open(path string) error {
	if path == "" {
		return ErrNoPath
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	return open(path)
}
