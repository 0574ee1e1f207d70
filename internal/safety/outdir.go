package safety

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CheckOutDir готовит каталог назначения: проверяет, что он существует
// (или создаёт его при create=true), что это каталог и что в него можно писать.
// Возвращает true, если каталог был создан.
func CheckOutDir(path string, create bool, perm os.FileMode) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return false, fmt.Errorf("%s: не является каталогом", path)

	case err == nil:
		if err := writable(path); err != nil {
			return false, fmt.Errorf("%w: %s", ErrNotWritable, path)
		}
		return false, nil

	case errors.Is(err, fs.ErrNotExist):
		if !create {
			return false, fmt.Errorf("%w: %s", ErrOutDirMissing, path)
		}
		if err := os.MkdirAll(path, perm); err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return false, fmt.Errorf("%w: %s", ErrNotWritable, path)
			}
			return false, fmt.Errorf("mkdir %s: %w", path, err)
		}
		return true, nil

	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}
