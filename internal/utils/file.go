// Package utils provides small filesystem helpers shared by the CLI and
// the debug instrumentation.
package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions lists the extensions the codec layer can read.
var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"bmp":  true,
	"tiff": true,
	"webp": true,
}

// EnsureDir creates a directory if it does not exist yet
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}

// GetFileExtension returns the lowercased file extension without the dot
func GetFileExtension(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

// IsImageFile reports whether the file has a readable image extension
func IsImageFile(filename string) bool {
	return imageExtensions[GetFileExtension(filename)]
}

// OutputFilename builds an output path from an input file, a suffix and a
// target format: photo.png with suffix "_tile" and format "webp" becomes
// photo_tile.webp in outputDir. An empty format keeps the input's
// extension, falling back to png.
func OutputFilename(inputFile, outputDir, suffix, format string) string {
	base := filepath.Base(inputFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if format == "" {
		if format = GetFileExtension(inputFile); format == "" {
			format = "png"
		}
	}
	return filepath.Join(outputDir, fmt.Sprintf("%s%s.%s", name, suffix, format))
}

// ListImageFiles recursively collects all image files under dir
func ListImageFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsImageFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SanitizeFilename replaces characters that are unsafe in filenames, so
// aspect ratio labels like 4:5 can appear in output names
func SanitizeFilename(filename string) string {
	result := filename
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		result = strings.ReplaceAll(result, c, "_")
	}
	return strings.Trim(result, " .")
}

// FormatFileSize renders a byte count in human readable form
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
