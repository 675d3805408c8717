package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Kind is the broad media class of an asset.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindOther Kind = "other"
)

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	Path        string // Path on disk.
	RelPath     string // Slash-separated path relative to the root directory.
	Size        int64  // File size in bytes.
	Kind        Kind   // Media class sniffed from the file header.
	ContentHash string // SHA-256 hex digest of the file content.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir string   // Root directory to walk.
	Include []string // Glob patterns, only matching files are included.
	Exclude []string // Glob patterns, matching files are excluded.
	// SkipDirs are directories (as given on disk) pruned from the walk,
	// typically an output directory nested in the root.
	SkipDirs []string
}

// Walk traverses the directory tree rooted at config.RootDir and returns
// metadata for every asset that passes filtering. Dotfiles are skipped,
// include/exclude patterns apply and a .gitignore in the root is honoured.
// A missing root yields no files.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root := config.RootDir
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	gitignorePatterns := loadGitignore(filepath.Join(root, ".gitignore"))
	skip := make(map[string]bool, len(config.SkipDirs))
	for _, d := range config.SkipDirs {
		if abs, err := filepath.Abs(d); err == nil {
			skip[abs] = true
		}
	}

	var files []FileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if shouldExcludeDir(name) {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process regular files.
		if !d.Type().IsRegular() || isHidden(name) {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if matchesGitignore(relPath, gitignorePatterns) {
			return nil
		}
		if !MatchesInclude(relPath, config.Include) {
			return nil
		}
		if MatchesExclude(relPath, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		hash, err := HashFile(path)
		if err != nil {
			return err
		}

		files = append(files, FileInfo{
			Path:        path,
			RelPath:     filepath.ToSlash(relPath),
			Size:        info.Size(),
			Kind:        sniffKind(path),
			ContentHash: hash,
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// sniffKind reads the file header to classify it.
func sniffKind(path string) Kind {
	f, err := os.Open(path)
	if err != nil {
		return KindOther
	}
	defer f.Close()

	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	head = head[:n]
	switch {
	case filetype.IsImage(head):
		return KindImage
	case filetype.IsVideo(head):
		return KindVideo
	}
	return KindOther
}

// HashFile computes the SHA-256 digest of the given file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// loadGitignore reads a .gitignore file and returns its non-empty,
// non-comment lines as patterns.
func loadGitignore(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
