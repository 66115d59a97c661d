package catalog

import "os"

// defaultWrapwidth is used whenever Options.Wrapwidth is left at its
// zero value.
const defaultWrapwidth = 78

// Options configures how Pofile and Mofile load and render a catalog.
type Options struct {
	// PathOrContent is either a filesystem path to load, or, if no such
	// file exists, the catalog content itself.
	PathOrContent string
	// ByteContent, when non-nil, is used by Mofile instead of resolving
	// PathOrContent, and takes the raw MO bytes directly.
	ByteContent []byte
	// Wrapwidth bounds rendered line width; zero means defaultWrapwidth.
	Wrapwidth int
	// CheckForDuplicates makes Pofile fail on a repeated (msgid, msgctxt)
	// pair instead of keeping every occurrence as a separate entry.
	CheckForDuplicates bool
}

func (o Options) normalized() Options {
	if o.Wrapwidth <= 0 {
		o.Wrapwidth = defaultWrapwidth
	}
	return o
}

// resolveContent implements the path-or-content input convention shared
// by Pofile: if PathOrContent names an existing regular file, its
// contents are read and returned; otherwise PathOrContent is treated as
// the literal content.
func resolveContent(pathOrContent string) (content string, sourceIsPath bool, sourceName string, err error) {
	if pathOrContent == "" {
		return "", false, "", nil
	}
	if info, statErr := os.Stat(pathOrContent); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(pathOrContent)
		if readErr != nil {
			return "", true, pathOrContent, readErr
		}
		return string(data), true, pathOrContent, nil
	}
	return pathOrContent, false, "", nil
}

// resolveMOInput is resolveContent's byte-oriented counterpart, used by
// Mofile when no explicit ByteContent was supplied.
func resolveMOInput(pathOrContent string) ([]byte, error) {
	if info, statErr := os.Stat(pathOrContent); statErr == nil && !info.IsDir() {
		return os.ReadFile(pathOrContent)
	}
	return []byte(pathOrContent), nil
}
