package catalog

// eot is the byte gettext uses to separate msgctxt from msgid inside
// the on-disk keys it builds for msgctxt-bearing entries.
const eot = "\x04"

const eotByte = byte(0x04)

func strPtr(s string) *string { return &s }

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Occurrence is one "#: file:line" reference attached to a PO entry.
type Occurrence struct {
	File string
	Line string
}

// POEntry is one textual catalog entry: a translatable string together
// with its translation, comments, and bookkeeping metadata.
type POEntry struct {
	MsgID        string
	MsgIDPlural  *string
	MsgStr       *string
	MsgStrPlural map[string]string
	MsgCtxt      *string

	Obsolete bool

	Comment     *string
	TComment    *string
	Occurrences []Occurrence
	Flags       []string

	PreviousMsgctxt     *string
	PreviousMsgid       *string
	PreviousMsgidPlural *string

	// Linenum is the 1-based source line the entry started on. Zero for
	// entries built programmatically rather than parsed.
	Linenum int
}

// NewPOEntry returns an empty entry recording the given source line.
func NewPOEntry(linenum int) *POEntry {
	return &POEntry{Linenum: linenum}
}

// Fuzzy reports whether the entry carries the "fuzzy" flag.
func (e *POEntry) Fuzzy() bool {
	for _, f := range e.Flags {
		if f == "fuzzy" {
			return true
		}
	}
	return false
}

// SetFuzzy adds or removes the "fuzzy" flag.
func (e *POEntry) SetFuzzy(fuzzy bool) {
	if fuzzy {
		if !e.Fuzzy() {
			e.Flags = append(e.Flags, "fuzzy")
		}
		return
	}
	out := e.Flags[:0]
	for _, f := range e.Flags {
		if f != "fuzzy" {
			out = append(out, f)
		}
	}
	e.Flags = out
}

// HasFlag reports whether the entry carries the named flag.
func (e *POEntry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Translated reports whether the entry has a translation: not obsolete,
// not fuzzy, and every msgstr slot (singular or each plural form) is
// non-empty.
func (e *POEntry) Translated() bool {
	if e.Obsolete || e.Fuzzy() {
		return false
	}
	if e.MsgStrPlural != nil {
		if len(e.MsgStrPlural) == 0 {
			return false
		}
		for _, v := range e.MsgStrPlural {
			if v == "" {
				return false
			}
		}
		return true
	}
	return e.MsgStr != nil && *e.MsgStr != ""
}

// MsgidEotMsgctxt returns the lookup key combining msgctxt and msgid the
// way MO string tables encode it: msgctxt + EOT + msgid, or plain msgid
// when there is no context.
func (e *POEntry) MsgidEotMsgctxt() string {
	return msgidMsgctxtEotSplit(e.MsgID, e.MsgCtxt)
}

// Merge overwrites every field of e with other's, matching the
// replace-on-match semantics used when merging two catalogs.
func (e *POEntry) Merge(other *POEntry) {
	*e = *other
}

func msgidMsgctxtEotSplit(msgid string, msgctxt *string) string {
	if msgctxt != nil {
		return *msgctxt + eot + msgid
	}
	return msgid
}

// MOEntry is one binary catalog entry: the reduced form a POEntry takes
// once compiled into an MO file, stripped of comments and obsolete
// bookkeeping.
type MOEntry struct {
	MsgID        string
	MsgIDPlural  *string
	MsgStr       *string
	MsgStrPlural map[string]string
	MsgCtxt      *string
}

// MsgidEotMsgctxt returns the lookup/sort key combining msgctxt and
// msgid, as MsgidEotMsgctxt does for POEntry.
func (e *MOEntry) MsgidEotMsgctxt() string {
	return msgidMsgctxtEotSplit(e.MsgID, e.MsgCtxt)
}

// Translated reports whether every msgstr slot is non-empty.
func (e *MOEntry) Translated() bool {
	if e.MsgStrPlural != nil {
		if len(e.MsgStrPlural) == 0 {
			return false
		}
		for _, v := range e.MsgStrPlural {
			if v == "" {
				return false
			}
		}
		return true
	}
	return e.MsgStr != nil && *e.MsgStr != ""
}

// Merge overwrites every field of e with other's.
func (e *MOEntry) Merge(other *MOEntry) {
	*e = *other
}

// MOEntryFromPOEntry reduces a POEntry to its MO-level fields, dropping
// comments, flags, occurrences, and obsolete/previous bookkeeping.
func MOEntryFromPOEntry(e *POEntry) *MOEntry {
	m := &MOEntry{
		MsgID:       e.MsgID,
		MsgIDPlural: e.MsgIDPlural,
		MsgStr:      e.MsgStr,
		MsgCtxt:     e.MsgCtxt,
	}
	if len(e.MsgStrPlural) > 0 {
		m.MsgStrPlural = e.MsgStrPlural
	}
	return m
}

// POEntryFromMOEntry widens an MOEntry back into a textual entry with
// empty comment/flag/occurrence fields.
func POEntryFromMOEntry(m *MOEntry) *POEntry {
	e := NewPOEntry(0)
	e.MsgID = m.MsgID
	e.MsgIDPlural = m.MsgIDPlural
	e.MsgStr = m.MsgStr
	e.MsgCtxt = m.MsgCtxt
	if m.MsgStrPlural != nil {
		e.MsgStrPlural = m.MsgStrPlural
	} else {
		e.MsgStrPlural = map[string]string{}
	}
	return e
}
