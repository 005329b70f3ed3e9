package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"reclaim/internal/services"
)

// PartialSuffix marks an in-progress copy that has not been moved into place.
const PartialSuffix = ".partial"

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm()|0o600)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return err
	}
	if err := out.Sync(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

// InstallCopy copies src into a temporary sibling of dst and renames it into
// place once the copy is verified, so dst never holds a truncated file. The
// source modification time is carried over.
func InstallCopy(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	tmp := dst + PartialSuffix
	if err := CopyFileVerified(src, tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if info, err := os.Stat(src); err == nil {
		_ = os.Chtimes(tmp, info.ModTime(), info.ModTime())
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move into place: %w", err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than not-exist are
// returned so callers do not mistake an unreadable target for a missing one.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// VerifyArtifact checks that path exists and holds data. A missing or
// zero-length artifact is reported as services.ErrEmptyOutput.
func VerifyArtifact(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, services.Wrap(services.ErrEmptyOutput, "", "verify", fmt.Sprintf("artifact %s missing", path), nil)
		}
		return 0, services.Wrap(services.ErrIO, "", "verify", "stat artifact", err)
	}
	if info.IsDir() {
		return 0, services.Wrap(services.ErrEmptyOutput, "", "verify", fmt.Sprintf("artifact %s is a directory", path), nil)
	}
	if info.Size() == 0 {
		return 0, services.Wrap(services.ErrEmptyOutput, "", "verify", fmt.Sprintf("artifact %s is empty", path), nil)
	}
	return info.Size(), nil
}
