package catalog

import "os"

// MOFile is a compiled binary catalog: its decoded header fields,
// resolved metadata, and entries.
type MOFile struct {
	Entries     []*MOEntry
	Metadata    map[string]string
	MagicNumber *uint32
	Version     *uint32
	Options     Options
}

// NewMOFile returns an empty compiled catalog configured with opts.
func NewMOFile(opts Options) *MOFile {
	return &MOFile{Metadata: map[string]string{}, Options: opts}
}

// Mofile decodes an MO catalog. If opts.ByteContent is set it is
// decoded directly; otherwise opts.PathOrContent is resolved using the
// same path-or-content convention Pofile uses, except the resolved
// content is treated as raw bytes rather than UTF-8 text.
func Mofile(opts Options) (*MOFile, error) {
	opts = opts.normalized()

	var data []byte
	if opts.ByteContent != nil {
		data = opts.ByteContent
	} else {
		var err error
		data, err = resolveMOInput(opts.PathOrContent)
		if err != nil {
			return nil, &IOError{Kind: CorruptedMOData, Context: "reading input: " + err.Error()}
		}
	}

	return parseMO(data, opts)
}

// FindByMsgid returns the first entry with the given msgid, or nil.
func (f *MOFile) FindByMsgid(msgid string) *MOEntry {
	for _, e := range f.Entries {
		if e.MsgID == msgid {
			return e
		}
	}
	return nil
}

// FindByMsgidMsgctxt returns the first entry matching both msgid and
// msgctxt, or nil.
func (f *MOFile) FindByMsgidMsgctxt(msgid, msgctxt string) *MOEntry {
	for _, e := range f.Entries {
		if e.MsgID == msgid && strVal(e.MsgCtxt) == msgctxt {
			return e
		}
	}
	return nil
}

// MetadataAsEntry renders the catalog's metadata as the synthetic
// empty-msgid entry gettext stores it as on disk.
func (f *MOFile) MetadataAsEntry() *MOEntry {
	e := &MOEntry{}
	if len(f.Metadata) > 0 {
		s := metadataToMsgstr(f.Metadata)
		e.MsgStr = &s
	}
	return e
}

// AsBytesWith compiles the catalog using the given magic number and
// revision word.
func (f *MOFile) AsBytesWith(magic, revision uint32) []byte {
	return writeMO(f, magic, revision)
}

// AsBytes compiles the catalog to little-endian MO bytes, revision 0.
func (f *MOFile) AsBytes() []byte { return f.AsBytesWith(MagicLE, 0) }

// AsBytesLE compiles the catalog to little-endian MO bytes, revision 0.
func (f *MOFile) AsBytesLE() []byte { return f.AsBytesWith(MagicLE, 0) }

// AsBytesBE compiles the catalog to big-endian MO bytes, revision 0.
func (f *MOFile) AsBytesBE() []byte { return f.AsBytesWith(MagicBE, 0) }

// Save writes the compiled catalog to path.
func (f *MOFile) Save(path string) error {
	return f.SaveAsMofile(path)
}

// SaveAsMofile writes the compiled catalog to path.
func (f *MOFile) SaveAsMofile(path string) error {
	return os.WriteFile(path, f.AsBytes(), 0o644)
}

// SaveAsPofile widens the catalog to PO text and writes it to path.
func (f *MOFile) SaveAsPofile(path string) error {
	return POFileFromMOFile(f).SaveAsPofile(path)
}

// MOFileFromPOFile compiles a textual catalog down to its binary form,
// keeping only translated entries.
func MOFileFromPOFile(p *POFile) *MOFile {
	mo := NewMOFile(p.Options)
	mo.Metadata = p.Metadata
	for _, e := range p.Entries {
		if e.Translated() {
			mo.Entries = append(mo.Entries, MOEntryFromPOEntry(e))
		}
	}
	return mo
}

// POFileFromMOFile widens a compiled catalog back to the textual form,
// with empty comment/flag/occurrence fields on every entry.
func POFileFromMOFile(m *MOFile) *POFile {
	p := NewPOFile(m.Options)
	p.Metadata = m.Metadata
	for _, e := range m.Entries {
		p.Entries = append(p.Entries, POEntryFromMOEntry(e))
	}
	return p
}
