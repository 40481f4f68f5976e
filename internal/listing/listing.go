// Package listing converts a catalog to editable text and parses the edited
// text back into line records.
//
// The format is one entry per line in catalog order. Directory entries get a
// trailing separator as a display cue only; it is stripped again on decode.
// A line starting with the deletion marker "//" marks the paired entry for
// deletion regardless of the rest of the line. Blank lines never produce a
// record: they are elided before indexing.
package listing

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/edmv-dev/edmv/internal/catalog"
)

// DeletionMarker is the line prefix denoting removal of the paired entry.
const DeletionMarker = "//"

// LineRecord is one parsed, non-blank line from the edited text.
type LineRecord struct {
	// Index is the position in the surviving (non-blank) sequence.
	Index int

	// RawText is the line content excluding a leading deletion marker and
	// trailing separators, so an unedited listing round-trips to the
	// original entry text.
	RawText string

	// MarkedForDeletion is true if the line begins with the deletion marker.
	MarkedForDeletion bool

	// TrailingSeparator records whether the line ended with a path
	// separator. On a file entry that means the target has no file name.
	TrailingSeparator bool
}

// Encode renders the catalog as editable text.
func Encode(c *catalog.Catalog) (string, error) {
	lines := make([]string, 0, c.Len())
	for _, e := range c.Entries {
		// Enforced at catalog build time; re-checked here because the encoded
		// text round-trips through an external editor.
		if !utf8.ValidString(e.Text) {
			return "", fmt.Errorf("%w: %q", catalog.ErrEncoding, e.Text)
		}
		line := e.Text
		if e.IsDir() && !strings.HasSuffix(line, string(os.PathSeparator)) {
			line += string(os.PathSeparator)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// Decode parses edited text into the ordered sequence of surviving records.
func Decode(text string) []LineRecord {
	var records []LineRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		marked := strings.HasPrefix(line, DeletionMarker)
		if marked {
			line = strings.TrimSpace(strings.TrimPrefix(line, DeletionMarker))
		}
		trimmed := trimSeparators(line)
		records = append(records, LineRecord{
			Index:             len(records),
			RawText:           trimmed,
			MarkedForDeletion: marked,
			TrailingSeparator: trimmed != line,
		})
	}
	return records
}

// trimSeparators drops trailing path separators without emptying the string.
func trimSeparators(p string) string {
	for len(p) > 1 && os.IsPathSeparator(p[len(p)-1]) {
		p = p[:len(p)-1]
	}
	return p
}
