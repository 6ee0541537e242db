package platform

import (
	"os"
	"strings"
)

// LocaleEncodingDetector implements termio.EncodingDetector by inspecting
// the POSIX locale environment variables a controlling terminal's shell
// sets up (LC_ALL, LC_CTYPE, LANG, checked in that priority order).
type LocaleEncodingDetector struct{}

// IsUTF8 reports whether the effective locale names a UTF-8 codeset.
func (LocaleEncodingDetector) IsUTF8() bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return strings.Contains(strings.ToUpper(v), "UTF-8") || strings.Contains(strings.ToUpper(v), "UTF8")
		}
	}
	return false
}
