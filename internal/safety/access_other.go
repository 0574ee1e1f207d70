//go:build !unix

package safety

import "os"

// Без access(2) проверяем запись пробным временным файлом.
func writable(dir string) error {
	f, err := os.CreateTemp(dir, ".structgen-write-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
