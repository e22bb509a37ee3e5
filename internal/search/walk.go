package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrRootNotFound = errors.New("指定目录不存在")
	ErrNotDirectory = errors.New("指定路径不是目录")
)

// imageExt 为交给图像分析器的扩展名；GIF 由分析器转为 PNG 后上传。
var imageExt = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
	".heic": {},
	".heif": {},
}

// IsImage 判断 ext（带点，大小写不限）是否交给图像分析器。
func IsImage(ext string) bool {
	_, ok := imageExt[strings.ToLower(ext)]
	return ok
}

// checkRoot 在遍历前检查 root 存在且为目录。
func checkRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("%w: %s: %v", ErrRootNotFound, root, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}

// Classify 按字典序递归遍历 root，按扩展名划分普通文件；无法读取的目录项上报后跳过。
// 指向文件的符号链接参与分类，root 以下指向目录的链接不跟随；root 本身是链接时跟随。
func Classify(root string, isText func(ext string) bool, rep Reporter) (Files, error) {
	if rep == nil {
		rep = NopReporter{}
	}
	if err := checkRoot(root); err != nil {
		return Files{}, err
	}

	// 根目录本身是符号链接时，加上分隔符让 WalkDir 跟随它；根以下的目录链接仍不跟随。
	walkRoot := root
	if st, err := os.Lstat(root); err == nil && st.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(os.PathSeparator)
	}

	var files Files
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			rep.Warn(Event{Kind: EventWalk, Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			st, serr := os.Stat(path)
			if serr != nil {
				rep.Warn(Event{Kind: EventWalk, Path: path, Err: serr})
				return nil
			}
			if !st.Mode().IsRegular() {
				return nil
			}
		}

		ref := NewFileRef(path)
		switch {
		case isText(ref.Ext):
			files.Text = append(files.Text, ref)
		case IsImage(ref.Ext):
			files.Image = append(files.Image, ref)
		default:
			files.Other = append(files.Other, ref)
		}
		return nil
	})
	if err != nil {
		return Files{}, err
	}
	return files, nil
}
