package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type store struct {
	root string
}

// New returns a file store backed by a local directory.
func New(root string, debug bool) *store {
	return &store{root: root}
}

func (s *store) Upload(ctx context.Context, path, name string) error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("local: couldn't create root %q: %w", s.root, err)
	}
	dst := filepath.Join(s.root, name)
	if err := copyFile(path, dst); err != nil {
		return fmt.Errorf("local: couldn't copy file %q to %q: %w", path, dst, err)
	}
	return nil
}

func (s *store) Download(ctx context.Context, path, name string) error {
	src := filepath.Join(s.root, name)
	if err := copyFile(src, path); err != nil {
		return fmt.Errorf("local: couldn't copy file %q to %q: %w", src, path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcFileInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcFileInfo.Mode())
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
