package catalog

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/minios-linux/gopo/bitwise"
)

func byteOrderFor(magic uint32) binary.ByteOrder {
	return bitwise.ByteOrder(magic == MagicLE)
}

type moWriteItem struct {
	key   string
	orig  string
	trans string
}

// collectMOWriteEntries gathers every translated entry plus the
// synthetic metadata entry, the set a compiled MO body is built from.
func collectMOWriteEntries(mo *MOFile) []*MOEntry {
	var out []*MOEntry
	for _, e := range mo.Entries {
		if e.Translated() {
			out = append(out, e)
		}
	}
	out = append(out, mo.MetadataAsEntry())
	return out
}

func buildMOWriteItem(e *MOEntry) moWriteItem {
	orig := e.MsgID
	if e.MsgCtxt != nil {
		orig = *e.MsgCtxt + eot + e.MsgID
	}
	if e.MsgIDPlural != nil {
		orig += "\x00" + *e.MsgIDPlural
	}

	var trans string
	if e.MsgStrPlural != nil {
		indices := sortedPluralIndices(e.MsgStrPlural)
		parts := make([]string, len(indices))
		for i, idx := range indices {
			parts[i] = e.MsgStrPlural[idx]
		}
		trans = strings.Join(parts, "\x00")
	} else if e.MsgStr != nil {
		trans = *e.MsgStr
	}

	return moWriteItem{key: e.MsgidEotMsgctxt(), orig: orig, trans: trans}
}

// writeMO encodes mo as MO bytes, using the given magic number and
// revision word. Entries are sorted by byte-lexicographic
// msgctxt+EOT+msgid key, the order real msgfmt output uses.
func writeMO(mo *MOFile, magic, revision uint32) []byte {
	entries := collectMOWriteEntries(mo)
	items := make([]moWriteItem, len(entries))
	for i, e := range entries {
		items[i] = buildMOWriteItem(e)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })

	n := uint32(len(items))
	origTabOffset := uint32(moHeaderSize)
	transTabOffset := origTabOffset + n*8
	bodyOffset := transTabOffset + n*8

	origOffsets := make([]uint32, n)
	origLengths := make([]uint32, n)
	transOffsets := make([]uint32, n)
	transLengths := make([]uint32, n)

	var origBody, transBody strings.Builder
	cursor := bodyOffset
	for i, it := range items {
		origOffsets[i] = cursor
		origLengths[i] = uint32(len(it.orig))
		origBody.WriteString(it.orig)
		origBody.WriteByte(0)
		cursor += uint32(len(it.orig)) + 1
	}
	for i, it := range items {
		transOffsets[i] = cursor
		transLengths[i] = uint32(len(it.trans))
		transBody.WriteString(it.trans)
		transBody.WriteByte(0)
		cursor += uint32(len(it.trans)) + 1
	}

	order := byteOrderFor(magic)
	buf := make([]byte, cursor)

	order.PutUint32(buf[0:4], magic)
	order.PutUint32(buf[4:8], revision)
	order.PutUint32(buf[8:12], n)
	order.PutUint32(buf[12:16], origTabOffset)
	order.PutUint32(buf[16:20], transTabOffset)
	order.PutUint32(buf[20:24], 0)
	order.PutUint32(buf[24:28], 0)

	for i := range items {
		pos := origTabOffset + uint32(i)*8
		order.PutUint32(buf[pos:pos+4], origLengths[i])
		order.PutUint32(buf[pos+4:pos+8], origOffsets[i])
	}
	for i := range items {
		pos := transTabOffset + uint32(i)*8
		order.PutUint32(buf[pos:pos+4], transLengths[i])
		order.PutUint32(buf[pos+4:pos+8], transOffsets[i])
	}

	copy(buf[bodyOffset:], origBody.String())
	copy(buf[bodyOffset+uint32(origBody.Len()):], transBody.String())

	return buf
}
