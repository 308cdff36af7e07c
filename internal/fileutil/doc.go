// Package fileutil provides centralized file system scanning utilities.
//
// This package serves as the single source of truth for directory
// traversal in cargogen, offering extension filtering, prefix exclusion,
// and error-tolerant scanning.
//
// # Purpose
//
// The fileutil package is designed for:
//   - Directory traversal with recursive and depth-limited scanning
//   - File filtering by extension (case-insensitive)
//   - Filename prefix exclusion (e.g., Word's ~$ lock files)
//   - Error-tolerant scanning that collects non-fatal errors
//
// # Main Components
//
// ScanOptions - Configuration struct for directory scanning:
//   - Extensions: File extensions to include (case-insensitive, e.g., ".docx")
//   - ExcludePrefixes: Filename prefixes to skip (e.g., "~$")
//   - Recursive: Enable/disable subdirectory traversal
//   - MaxDepth: Limit recursion depth (0 = unlimited, 1 = current dir only)
//
// ScanResult - Results of a directory scan:
//   - Files: Absolute paths of all matched files (sorted alphabetically)
//   - Errors: Non-fatal errors encountered during the scan
//
// # Usage Examples
//
// Template discovery (the templates command):
//
//	result, err := fileutil.ScanDirectory("/path/to/templates", fileutil.ScanOptions{
//	    Extensions:      []string{".docx"},
//	    ExcludePrefixes: []string{"~$"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
//
// Recursive scanning with a depth limit:
//
//	result, err := fileutil.ScanDirectory("/path/to/docs", fileutil.ScanOptions{
//	    Extensions: []string{".docx"},
//	    Recursive:  true,
//	    MaxDepth:   2,
//	})
//
// Error handling (check for non-fatal errors):
//
//	if len(result.Errors) > 0 {
//	    log.Printf("Encountered %d non-fatal errors:", len(result.Errors))
//	    for _, err := range result.Errors {
//	        log.Printf("  - %v", err)
//	    }
//	}
//
// # Design Principles
//
// Error Tolerance:
// The scanner collects non-fatal errors (e.g., permission denied on a
// subdirectory) and continues scanning. Only fatal errors (the root
// directory doesn't exist or is not a directory) cause immediate failure.
//
// Sorted Output:
// All file paths are sorted alphabetically before being returned, ensuring
// deterministic output across runs and platforms.
//
// Auto-Exclusion of Hidden Directories:
// Directories starting with "." are automatically skipped during recursive
// scans.
//
// Standard Library Only:
// The package uses only Go's standard library (os, path/filepath, strings,
// sort) with no external dependencies.
package fileutil
