package archive

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moby/patternmatcher"
)

// Archive name of the rendered Dockerfile entry.
const dockerfileName = "Dockerfile"

// Writes the build context rooted at root to w as a tar stream.
//
// The rendered Dockerfile is injected as the first entry, shadowing any
// Dockerfile that exists on disk at the context root. Paths matching the
// patterns in root's .dockerignore are excluded; a missing .dockerignore
// means nothing is excluded.
func ExportContext(w io.Writer, root string, dockerfile []byte) error {
	pm, err := loadIgnorePatterns(root)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(w)

	if err := writeDockerfile(tw, dockerfile); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		name := filepath.ToSlash(rel)

		// The injected entry takes the Dockerfile's place.
		if name == dockerfileName {
			return nil
		}

		matched, err := pm.MatchesOrParentMatches(name)
		if err != nil {
			return err
		}
		if matched {
			if d.IsDir() && !pm.Exclusions() {
				return filepath.SkipDir
			}
			return nil
		}

		return writeEntry(tw, path, name, d)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

// Parses root's .dockerignore into a pattern matcher. A missing file
// yields a matcher with no patterns.
func loadIgnorePatterns(root string) (*patternmatcher.PatternMatcher, error) {
	f, err := os.Open(filepath.Join(root, ".dockerignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return patternmatcher.New(nil)
		}
		return nil, fmt.Errorf("%w: %w", ErrIgnoreFile, err)
	}
	defer f.Close()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIgnoreFile, err)
	}

	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIgnoreFile, err)
	}
	return pm, nil
}

// Writes the rendered Dockerfile bytes as a regular file entry.
func writeDockerfile(tw *tar.Writer, content []byte) error {
	header := &tar.Header{
		Name:    dockerfileName,
		Mode:    0644,
		Size:    int64(len(content)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

// Writes a single file or directory entry to the tar writer.
func writeEntry(tw *tar.Writer, hostPath, archivePath string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	link := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(hostPath); err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = archivePath
	if d.IsDir() {
		header.Name += "/"
	}

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(hostPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}
