package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Extensions is a list of file extensions to include (e.g., ".docx")
	Extensions []string
	// ExcludePrefixes drops files whose name starts with any of these
	// prefixes, such as the ~$ lock files Word keeps beside open documents
	ExcludePrefixes []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains any non-fatal errors encountered during scanning
	Errors []error
}

// ScanDirectory scans a directory for files matching the provided options.
// Hidden directories are always skipped, and read errors below dir are
// collected in the result instead of aborting the scan.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	// Extension map for fast lookup, normalized to .lowercase
	extMap := make(map[string]bool)
	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		// Skip the root directory itself
		if path == dir {
			return nil
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(dir, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		filename := d.Name()
		for _, prefix := range opts.ExcludePrefixes {
			if strings.HasPrefix(filename, prefix) {
				return nil
			}
		}
		if len(extMap) > 0 && !extMap[strings.ToLower(filepath.Ext(filename))] {
			return nil
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Files = append(result.Files, absPath)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}
