package catalog

import (
	"os"
	"reflect"
	"strings"
)

// POFile is a parsed PO catalog: its free-form header comment, resolved
// metadata fields, and its live and obsolete entries.
type POFile struct {
	Header          *string
	Metadata        map[string]string
	MetadataIsFuzzy bool
	Entries         []*POEntry
	Options         Options
}

// NewPOFile returns an empty catalog configured with opts.
func NewPOFile(opts Options) *POFile {
	return &POFile{Metadata: map[string]string{}, Options: opts}
}

// FindByMsgid returns the first entry with the given msgid, or nil.
func (f *POFile) FindByMsgid(msgid string) *POEntry {
	for _, e := range f.Entries {
		if e.MsgID == msgid {
			return e
		}
	}
	return nil
}

// FindByMsgidMsgctxt returns the first entry matching both msgid and
// msgctxt, or nil.
func (f *POFile) FindByMsgidMsgctxt(msgid, msgctxt string) *POEntry {
	for _, e := range f.Entries {
		if e.MsgID == msgid && strVal(e.MsgCtxt) == msgctxt {
			return e
		}
	}
	return nil
}

// FindBy selects which field Find matches against.
type FindBy int

const (
	ByMsgid FindBy = iota
	ByMsgstr
	ByMsgctxt
	ByPreviousMsgid
	ByOccurrence
)

// Find returns every entry whose field named by "by" equals value, and,
// when msgctxt is non-nil, whose msgctxt also matches it.
func (f *POFile) Find(value string, by FindBy, msgctxt *string) []*POEntry {
	var out []*POEntry
	for _, e := range f.Entries {
		if msgctxt != nil && strVal(e.MsgCtxt) != *msgctxt {
			continue
		}
		if entryMatches(e, value, by) {
			out = append(out, e)
		}
	}
	return out
}

func entryMatches(e *POEntry, value string, by FindBy) bool {
	switch by {
	case ByMsgid:
		return e.MsgID == value
	case ByMsgstr:
		return e.MsgStr != nil && *e.MsgStr == value
	case ByMsgctxt:
		return e.MsgCtxt != nil && *e.MsgCtxt == value
	case ByPreviousMsgid:
		return e.PreviousMsgid != nil && *e.PreviousMsgid == value
	case ByOccurrence:
		for _, occ := range e.Occurrences {
			rep := occ.File
			if occ.Line != "" {
				rep = occ.File + ":" + occ.Line
			}
			if rep == value || occ.File == value {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// TranslatedEntries returns every entry for which Translated is true.
func (f *POFile) TranslatedEntries() []*POEntry {
	var out []*POEntry
	for _, e := range f.Entries {
		if e.Translated() {
			out = append(out, e)
		}
	}
	return out
}

// UntranslatedEntries returns every entry for which Translated is false.
func (f *POFile) UntranslatedEntries() []*POEntry {
	var out []*POEntry
	for _, e := range f.Entries {
		if !e.Translated() {
			out = append(out, e)
		}
	}
	return out
}

// ObsoleteEntries returns every entry marked obsolete.
func (f *POFile) ObsoleteEntries() []*POEntry {
	var out []*POEntry
	for _, e := range f.Entries {
		if e.Obsolete {
			out = append(out, e)
		}
	}
	return out
}

// FuzzyEntries returns every non-obsolete entry carrying the fuzzy
// flag.
func (f *POFile) FuzzyEntries() []*POEntry {
	var out []*POEntry
	for _, e := range f.Entries {
		if !e.Obsolete && e.Fuzzy() {
			out = append(out, e)
		}
	}
	return out
}

// PercentTranslated returns the share of entries that are translated,
// as a value in [0, 100]. An empty catalog reports 0.
func (f *POFile) PercentTranslated() float64 {
	if len(f.Entries) == 0 {
		return 0
	}
	return float64(len(f.TranslatedEntries())) / float64(len(f.Entries)) * 100
}

// Append adds entry to the catalog.
func (f *POFile) Append(entry *POEntry) {
	f.Entries = append(f.Entries, entry)
}

// Remove deletes the first entry structurally equal to entry.
func (f *POFile) Remove(entry *POEntry) {
	for i, e := range f.Entries {
		if reflect.DeepEqual(e, entry) {
			f.Entries = append(f.Entries[:i], f.Entries[i+1:]...)
			return
		}
	}
}

// RemoveByMsgid deletes the first entry with the given msgid.
func (f *POFile) RemoveByMsgid(msgid string) {
	for i, e := range f.Entries {
		if e.MsgID == msgid {
			f.Entries = append(f.Entries[:i], f.Entries[i+1:]...)
			return
		}
	}
}

// RemoveByMsgidMsgctxt deletes the first entry matching both msgid and
// msgctxt.
func (f *POFile) RemoveByMsgidMsgctxt(msgid, msgctxt string) {
	for i, e := range f.Entries {
		if e.MsgID == msgid && strVal(e.MsgCtxt) == msgctxt {
			f.Entries = append(f.Entries[:i], f.Entries[i+1:]...)
			return
		}
	}
}

// Merge folds other into f: entries matching an existing one by
// (msgid, msgctxt) are overwritten with other's values, entries with no
// match are appended, and entries of f absent from other are marked
// obsolete.
func (f *POFile) Merge(other *POFile) {
	for _, oe := range other.Entries {
		var existing *POEntry
		if oe.MsgCtxt != nil {
			existing = f.FindByMsgidMsgctxt(oe.MsgID, *oe.MsgCtxt)
		} else {
			existing = f.FindByMsgid(oe.MsgID)
		}
		if existing != nil {
			existing.Merge(oe)
		} else {
			ne := NewPOEntry(0)
			ne.Merge(oe)
			f.Entries = append(f.Entries, ne)
		}
	}

	for _, e := range f.Entries {
		if other.FindByMsgid(e.MsgID) == nil {
			e.Obsolete = true
		}
	}
}

// MetadataAsEntry renders the catalog's metadata as the synthetic
// empty-msgid entry gettext stores it as on disk.
func (f *POFile) MetadataAsEntry() *POEntry {
	e := NewPOEntry(0)
	if f.MetadataIsFuzzy {
		e.Flags = append(e.Flags, "fuzzy")
	}
	if len(f.Metadata) > 0 {
		s := metadataToMsgstr(f.Metadata)
		e.MsgStr = &s
	}
	return e
}

// String renders the catalog as PO text: header comment, metadata
// entry, live entries, then obsolete entries.
func (f *POFile) String() string {
	var out strings.Builder

	if f.Header != nil {
		for _, line := range rustLines(*f.Header) {
			if line == "" {
				out.WriteString("#\n")
			} else {
				out.WriteString("# ")
				out.WriteString(line)
				out.WriteByte('\n')
			}
		}
	}

	out.WriteString(moMetadataEntryToString(MOEntryFromPOEntry(f.MetadataAsEntry())))
	out.WriteByte('\n')

	wrapwidth := f.Options.normalized().Wrapwidth
	var live, obsolete strings.Builder
	for _, e := range f.Entries {
		if e.Obsolete {
			obsolete.WriteString(e.ToStringWithWrapwidth(wrapwidth))
			obsolete.WriteByte('\n')
		} else {
			live.WriteString(e.ToStringWithWrapwidth(wrapwidth))
			live.WriteByte('\n')
		}
	}
	out.WriteString(live.String())
	out.WriteString(obsolete.String())

	s := out.String()
	if len(s) > 0 {
		s = s[:len(s)-1]
	}
	return s
}

// Save writes the catalog as PO text to path.
func (f *POFile) Save(path string) error {
	return f.SaveAsPofile(path)
}

// SaveAsPofile writes the catalog as PO text to path.
func (f *POFile) SaveAsPofile(path string) error {
	return os.WriteFile(path, []byte(f.String()), 0o644)
}

// SaveAsMofile compiles the catalog to MO and writes it to path.
func (f *POFile) SaveAsMofile(path string) error {
	return MOFileFromPOFile(f).SaveAsMofile(path)
}

// AsBytes compiles the catalog to little-endian MO bytes.
func (f *POFile) AsBytes() []byte {
	return MOFileFromPOFile(f).AsBytes()
}

// AsBytesLE compiles the catalog to little-endian MO bytes.
func (f *POFile) AsBytesLE() []byte {
	return MOFileFromPOFile(f).AsBytesLE()
}

// AsBytesBE compiles the catalog to big-endian MO bytes.
func (f *POFile) AsBytesBE() []byte {
	return MOFileFromPOFile(f).AsBytesBE()
}
