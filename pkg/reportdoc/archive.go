package reportdoc

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

// ExtractArchive decompresses every entry of the zip archive at archivePath
// into destDir, preserving relative paths. Entries whose names would escape
// destDir are rejected. Existing files under destDir are overwritten.
func ExtractArchive(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		if reader != nil {
			reader.Close()
		}
		return NewArchiveError(archivePath, err)
	}
	defer reader.Close()

	destRoot := filepath.Clean(destDir)
	for _, file := range reader.File {
		target := filepath.Join(destRoot, filepath.FromSlash(file.Name))
		if target != destRoot && !strings.HasPrefix(target, destRoot+string(os.PathSeparator)) {
			return NewArchiveError(archivePath, fmt.Errorf("entry '%s' escapes destination directory", file.Name))
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := extractFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry '%s': %w", file.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract '%s': %w", file.Name, err)
	}
	return out.Close()
}

// PackArchive creates a zip archive at archivePath from all files under
// srcDir, preserving relative paths and directory structure.
func PackArchive(srcDir, archivePath string) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		header := &zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		out.Close()
		return err
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
