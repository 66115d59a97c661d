package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/minios-linux/gopo/escaping"
	"github.com/minios-linux/gopo/textwrap"
	"github.com/rivo/uniseg"
)

// poStringField renders one "keyword value" pair of a PO entry,
// wrapping the escaped value across continuation lines when it would
// not fit within wrapwidth.
type poStringField struct {
	fieldname   string
	delflag     string
	value       string
	pluralIndex string
	wrapwidth   int
}

func (f poStringField) String() string {
	escapedValue := escaping.Escape(f.value)

	indexSuffix := ""
	if f.pluralIndex != "" {
		indexSuffix = "[" + f.pluralIndex + "]"
	}

	realWidth := textwrap.Width(escapedValue) + textwrap.Width(f.fieldname) + 1

	var lines []string
	if realWidth > f.wrapwidth {
		lines = append([]string{""}, textwrap.Wrap(escapedValue, f.wrapwidth)...)
	} else {
		lines = []string{escapedValue}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s \"%s\"\n", f.delflag, f.fieldname, indexSuffix, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(&b, "%s\"%s\"\n", f.delflag, line)
	}
	return b.String()
}

// rustLines splits s on "\n" the way Rust's str::lines does: no
// trailing empty element is produced for a string ending in "\n", and
// an empty string yields no lines at all.
func rustLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func sortedPluralIndices(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})
	return keys
}

type msgstrFormatter func(msgstr, delflag string, wrapwidth int) string

func defaultMOEntryMsgstrFormatter(msgstr, delflag string, wrapwidth int) string {
	trimmed := strings.TrimRightFunc(msgstr, unicode.IsSpace)
	return poStringField{fieldname: "msgstr", delflag: delflag, value: trimmed, wrapwidth: wrapwidth}.String()
}

// metadataMsgstrFormatter renders the metadata entry's msgstr one
// "Key: Value\n" line at a time, each wrapped in its own quoted PO
// continuation line rather than through poStringField's wrapping.
func metadataMsgstrFormatter(msgstr, _ string, _ int) string {
	var b strings.Builder
	b.WriteString("msgstr \"\"\n")
	for _, line := range rustLines(msgstr) {
		b.WriteByte('"')
		b.WriteString(line)
		b.WriteString(`\n`)
		b.WriteByte('"')
		b.WriteByte('\n')
	}
	return b.String()
}

func moEntryToStringWithFormatter(entry *MOEntry, wrapwidth int, delflag string, formatter msgstrFormatter) string {
	var b strings.Builder

	if entry.MsgCtxt != nil {
		b.WriteString(poStringField{"msgctxt", delflag, *entry.MsgCtxt, "", wrapwidth}.String())
	}
	b.WriteString(poStringField{"msgid", delflag, entry.MsgID, "", wrapwidth}.String())
	if entry.MsgIDPlural != nil {
		b.WriteString(poStringField{"msgid_plural", delflag, *entry.MsgIDPlural, "", wrapwidth}.String())
	}

	if entry.MsgStrPlural != nil {
		for _, idx := range sortedPluralIndices(entry.MsgStrPlural) {
			b.WriteString(poStringField{"msgstr", delflag, entry.MsgStrPlural[idx], idx, wrapwidth}.String())
		}
	} else {
		b.WriteString(formatter(strVal(entry.MsgStr), delflag, wrapwidth))
	}

	return b.String()
}

func moEntryToString(entry *MOEntry, wrapwidth int, delflag string) string {
	return moEntryToStringWithFormatter(entry, wrapwidth, delflag, defaultMOEntryMsgstrFormatter)
}

func moMetadataEntryToString(entry *MOEntry) string {
	return moEntryToStringWithFormatter(entry, defaultWrapwidth, "", metadataMsgstrFormatter)
}

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

func (e *POEntry) formatCommentBlock(comment, prefix string, wrapwidth int, b *strings.Builder) {
	for _, line := range rustLines(comment) {
		if graphemeCount(line)+len(prefix) > wrapwidth {
			b.WriteString(strings.Join(textwrap.Wrap(line, wrapwidth-len(prefix)), "\n"))
		} else {
			b.WriteString(prefix)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}

// ToStringWithWrapwidth renders the entry as PO text: comments,
// occurrences, flags, previous-value fields, then the entry itself,
// each field wrapped against wrapwidth.
func (e *POEntry) ToStringWithWrapwidth(wrapwidth int) string {
	var b strings.Builder

	if e.TComment != nil {
		e.formatCommentBlock(*e.TComment, "#. ", wrapwidth, &b)
	}
	if e.Comment != nil {
		e.formatCommentBlock(*e.Comment, "# ", wrapwidth, &b)
	}

	if !e.Obsolete && len(e.Occurrences) > 0 {
		parts := make([]string, len(e.Occurrences))
		for i, occ := range e.Occurrences {
			if occ.Line == "" {
				parts[i] = occ.File
			} else {
				parts[i] = occ.File + ":" + occ.Line
			}
		}
		filesRepr := strings.Join(parts, " ")
		if graphemeCount(filesRepr)+3 > wrapwidth {
			pieces := textwrap.Wrap(filesRepr, wrapwidth-3)
			wrapped := make([]string, len(pieces))
			for i, p := range pieces {
				wrapped[i] = "#: " + p
			}
			b.WriteString(strings.Join(wrapped, "\n"))
		} else {
			b.WriteString("#: ")
			b.WriteString(filesRepr)
		}
		b.WriteByte('\n')
	}

	if len(e.Flags) > 0 {
		fmt.Fprintf(&b, "#, %s\n", strings.Join(e.Flags, ", "))
	}

	prevPrefix := "#"
	if e.Obsolete {
		prevPrefix += "~"
	}
	prevPrefix += "| "

	if e.PreviousMsgctxt != nil {
		b.WriteString(poStringField{"msgctxt", prevPrefix, *e.PreviousMsgctxt, "", wrapwidth}.String())
	}
	if e.PreviousMsgid != nil {
		b.WriteString(poStringField{"msgid", prevPrefix, *e.PreviousMsgid, "", wrapwidth}.String())
	}
	if e.PreviousMsgidPlural != nil {
		b.WriteString(poStringField{"msgid_plural", prevPrefix, *e.PreviousMsgidPlural, "", wrapwidth}.String())
		b.WriteByte('\n')
	}

	delflag := ""
	if e.Obsolete {
		delflag = "#~ "
	}
	b.WriteString(moEntryToString(MOEntryFromPOEntry(e), wrapwidth, delflag))

	return b.String()
}

// String renders the entry at the package default wrap width.
func (e *POEntry) String() string {
	return e.ToStringWithWrapwidth(defaultWrapwidth)
}
