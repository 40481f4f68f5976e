// Package catalog builds the ordered, immutable snapshot of filesystem
// entries a run starts from.
//
// The catalog is the baseline the edited listing is reconciled against: the
// position of an entry is its identity, so the order established here is
// never changed afterwards.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/edmv-dev/edmv/internal/config"
)

var (
	// ErrEncoding indicates a path that cannot be represented as UTF-8 text.
	ErrEncoding = errors.New("path is not valid UTF-8")

	// ErrDuplicateSource indicates the same filesystem object was listed twice.
	ErrDuplicateSource = errors.New("duplicated source")
)

// Kind distinguishes directory entries from file entries. Symlinks count as
// files; they are never followed.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// Entry is one filesystem object captured at catalog time.
type Entry struct {
	// Text is the entry as it appears in the listing, without a trailing
	// separator.
	Text string

	// Path is the cleaned path as captured (absolute when --absolute is set).
	Path string

	// Abs is the normalized absolute path, used for duplicate detection and
	// noop comparison.
	Abs string

	// Kind is the entry kind at capture time.
	Kind Kind

	// Index is the position in the catalog. It is the sole correlation key
	// with the edited listing.
	Index int
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// Catalog is the full ordered set of entries for a run.
type Catalog struct {
	// Entries holds the captured entries in listing order.
	Entries []Entry

	// BaseDir is the directory relative targets resolve against.
	BaseDir string
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}

// Build enumerates the given paths or wildcard patterns into a catalog.
func Build(paths []string, opts *config.Options) (*Catalog, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		baseDir = cwd
	}

	var exclude *regexp.Regexp
	if opts.ExcludePattern != "" {
		re, err := regexp.Compile(opts.ExcludePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", opts.ExcludePattern, err)
		}
		exclude = re
	}

	expanded, err := expand(paths)
	if err != nil {
		return nil, err
	}

	c := &Catalog{BaseDir: baseDir}
	for _, p := range expanded {
		p = trimSeparators(p)
		info, err := os.Lstat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}

		if !info.IsDir() || info.Mode()&os.ModeSymlink != 0 || opts.Directory {
			if err := c.put(p, info, opts, exclude); err != nil {
				return nil, err
			}
			continue
		}

		// Directories contribute their children, in natural order.
		before := c.Len()
		children, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of directory %s: %w", p, err)
		}
		names := make([]string, 0, len(children))
		for _, child := range children {
			names = append(names, filepath.Join(p, child.Name()))
		}
		sort.Slice(names, func(i, j int) bool { return Less(names[i], names[j]) })
		for _, name := range names {
			childInfo, err := os.Lstat(name)
			if err != nil {
				return nil, fmt.Errorf("failed to access %s: %w", name, err)
			}
			if err := c.put(name, childInfo, opts, exclude); err != nil {
				return nil, err
			}
		}
		if c.Len() == before {
			return nil, fmt.Errorf("directory %s is empty; use --directory for the directory itself", p)
		}
	}

	if opts.Sort {
		sort.SliceStable(c.Entries, func(i, j int) bool {
			return Less(c.Entries[i].Text, c.Entries[j].Text)
		})
	}
	for i := range c.Entries {
		c.Entries[i].Index = i
	}

	return c, nil
}

// expand resolves wildcard patterns. A pattern with no match is an error: the
// tool refuses to silently drop an argument.
func expand(paths []string) ([]string, error) {
	var out []string
	for _, arg := range paths {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("failed to access %s", arg)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// put appends one entry, applying the hidden/exclude filters and the
// duplicate, root, and encoding rejections.
func (c *Catalog) put(path string, info os.FileInfo, opts *config.Options, exclude *regexp.Regexp) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to normalize path %s: %w", path, err)
	}
	if filepath.Dir(abs) == abs {
		return fmt.Errorf("source should not be the root directory: %s", path)
	}

	if !opts.WithHidden && strings.HasPrefix(filepath.Base(abs), ".") {
		return nil
	}

	cleaned := filepath.Clean(path)
	if opts.Absolute {
		cleaned = abs
	}
	text := cleaned
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: %q", ErrEncoding, text)
	}
	if exclude != nil && exclude.MatchString(text) {
		return nil
	}

	for _, existing := range c.Entries {
		if existing.Abs == abs {
			return fmt.Errorf("%w: %s", ErrDuplicateSource, abs)
		}
	}

	kind := KindFile
	if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		kind = KindDir
	}
	c.Entries = append(c.Entries, Entry{
		Text: text,
		Path: cleaned,
		Abs:  abs,
		Kind: kind,
	})
	return nil
}

// trimSeparators drops trailing path separators without emptying the string.
func trimSeparators(p string) string {
	for len(p) > 1 && os.IsPathSeparator(p[len(p)-1]) {
		p = p[:len(p)-1]
	}
	return p
}
