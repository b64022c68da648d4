package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bft-labs/speciesdiff/internal/domain"
)

// WriteFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, so readers never observe a partial file.
// Missing parent directories are created. Existing files are replaced.
func WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return domain.IOWrite("fs.write", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.IOWrite("fs.mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.IOWrite("fs.write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.IOWrite("fs.write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.IOWrite("fs.write", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return domain.IOWrite("fs.write", path, err)
	}

	// Atomic rename
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return domain.IOWrite("fs.rename", path, err)
	}
	return nil
}
