package util

import (
	"fmt"
	"strings"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count the way the dashboard lists it,
// e.g. 1536 -> "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(sizeUnits)-1 {
		size /= 1024
		i++
	}
	v := fmt.Sprintf("%.2f", size)
	v = strings.TrimRight(strings.TrimRight(v, "0"), ".")
	return v + " " + sizeUnits[i]
}

// SanitizeFilename strips characters that would break a
// Content-Disposition header or an archive entry path.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", "?", "_", "%", "_", "*", "_",
		":", "_", "|", "_", "\"", "_", "<", "_", ">", "_",
		"\r", "", "\n", "",
	)
	return replacer.Replace(name)
}

// EnsureExtension appends ext (including the dot) when name does not
// already end with it, case-insensitively.
func EnsureExtension(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}
	return name + ext
}
