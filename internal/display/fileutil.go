package display

import (
	"path/filepath"
	"strings"

	"github.com/dquiroga/cargogen/internal/fileutil"
)

// IsTemplateFile checks if filename is a usable .docx template name.
// Rules:
// 1. Must not start with "~$" (Word lock file) or "." (hidden file)
// 2. Must not contain newline or null bytes
// 3. Must end with a .docx extension (any case)
func IsTemplateFile(filename string) bool {
	if strings.HasPrefix(filename, "~$") || strings.HasPrefix(filename, ".") {
		return false
	}

	if strings.ContainsAny(filename, "\n\x00") {
		return false
	}

	return strings.EqualFold(filepath.Ext(filename), ".docx")
}

// FindTemplateFiles scans a directory and returns basenames of usable
// .docx templates. Only scans the immediate directory (not recursive).
// Returns an error if the path doesn't exist or is not a directory.
func FindTemplateFiles(dirPath string) ([]string, error) {
	opts := fileutil.ScanOptions{
		Extensions:      []string{".docx"},
		ExcludePrefixes: []string{"~$"},
		Recursive:       false,
	}

	result, err := fileutil.ScanDirectory(dirPath, opts)
	if err != nil {
		return nil, err
	}

	templates := make([]string, 0, len(result.Files))
	for _, absPath := range result.Files {
		basename := filepath.Base(absPath)
		if IsTemplateFile(basename) {
			templates = append(templates, basename)
		}
	}

	return templates, nil
}

// FindLockFiles scans a directory for the ~$ lock files Word leaves
// beside open documents. A non-empty result means some template is
// probably open in Word right now.
func FindLockFiles(dirPath string) ([]string, error) {
	result, err := fileutil.ScanDirectory(dirPath, fileutil.ScanOptions{
		Extensions: []string{".docx"},
	})
	if err != nil {
		return nil, err
	}

	locks := make([]string, 0)
	for _, absPath := range result.Files {
		if basename := filepath.Base(absPath); strings.HasPrefix(basename, "~$") {
			locks = append(locks, basename)
		}
	}

	return locks, nil
}
