package util

import "os"

// EnsureDir creates the export output directory if it is absent.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
