// Package snapshot exports and imports a point-in-time, zstd-compressed
// copy of a page file for operators. It works purely at the file level
// and never touches buffer-pool invariants.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Export streams srcPath (an open page file) through a zstd encoder
// into dstPath.
func Export(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source %s: %w", srcPath, err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", dstPath, err)
	}
	defer dst.Close()

	enc, err := zstd.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	defer enc.Close()

	if _, err := io.Copy(enc, src); err != nil {
		return fmt.Errorf("compress %s: %w", srcPath, err)
	}
	return nil
}

// Import reverses Export: it decompresses srcPath into dstPath.
func Import(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source %s: %w", srcPath, err)
	}
	defer src.Close()

	dec, err := zstd.NewReader(src)
	if err != nil {
		return fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, dec); err != nil {
		return fmt.Errorf("decompress %s: %w", srcPath, err)
	}
	return nil
}
