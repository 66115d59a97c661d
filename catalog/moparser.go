package catalog

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/minios-linux/gopo/bitwise"
)

// MagicLE and MagicBE are the two byte-order interpretations of the MO
// magic number; which one a file uses is detected by trying both.
const (
	MagicLE uint32 = 0x950412DE
	MagicBE uint32 = 0xDE120495
)

const moHeaderSize = 28

type moTableEntry struct {
	length uint32
	offset uint32
}

// parseMO decodes raw MO bytes into an MOFile.
func parseMO(data []byte, opts Options) (*MOFile, error) {
	if len(data) < 4 {
		return nil, &IOError{Kind: ErrorReadingMagicNumber}
	}

	magicLE := bitwise.Uint32LE(data[0:4])
	magicBE := bitwise.Uint32BE(data[0:4])

	var le bool
	switch {
	case magicLE == MagicLE:
		le = true
	case magicLE == MagicBE:
		le = false
	default:
		return nil, &IOError{Kind: IncorrectMagicNumber, MagicNumberLE: magicLE, MagicNumberBE: magicBE}
	}

	if len(data) < moHeaderSize {
		return nil, &IOError{Kind: CorruptedMOData, Context: "reading file header"}
	}

	order := bitwise.ByteOrder(le)
	magic := order.Uint32(data[0:4])
	revision := order.Uint32(data[4:8])
	major := revision >> 16
	minor := revision & 0xFFFF
	if major > 1 || minor > 1 {
		return nil, &IOError{Kind: UnsupportedMORevisionNumber, Version: revision}
	}

	n := order.Uint32(data[8:12])
	origTabOffset := order.Uint32(data[12:16])
	transTabOffset := order.Uint32(data[16:20])

	origTab, err := readTable(data, origTabOffset, n, order, "reading original strings table")
	if err != nil {
		return nil, err
	}
	transTab, err := readTable(data, transTabOffset, n, order, "reading translated strings table")
	if err != nil {
		return nil, err
	}

	mo := NewMOFile(opts)
	mo.MagicNumber = &magic
	mo.Version = &revision

	for i := uint32(0); i < n; i++ {
		origBytes, err := readStringAt(data, origTab[i], "reading original string data")
		if err != nil {
			return nil, err
		}
		transBytes, err := readStringAt(data, transTab[i], "reading translated string data")
		if err != nil {
			return nil, err
		}

		if len(origBytes) == 0 {
			parseMetadataLines(mo.Metadata, string(transBytes))
			continue
		}

		mo.Entries = append(mo.Entries, decodeMOEntryPair(origBytes, transBytes))
	}

	return mo, nil
}

func readTable(data []byte, tableOffset, n uint32, order binary.ByteOrder, context string) ([]moTableEntry, error) {
	tab := make([]moTableEntry, n)
	for i := uint32(0); i < n; i++ {
		pos := int64(tableOffset) + int64(i)*8
		if pos < 0 || pos+8 > int64(len(data)) {
			return nil, &IOError{Kind: CorruptedMOData, Context: context}
		}
		tab[i] = moTableEntry{
			length: order.Uint32(data[pos : pos+4]),
			offset: order.Uint32(data[pos+4 : pos+8]),
		}
	}
	return tab, nil
}

func readStringAt(data []byte, te moTableEntry, context string) ([]byte, error) {
	start := int64(te.offset)
	end := start + int64(te.length)
	if start < 0 || end > int64(len(data)) || end < start {
		return nil, &IOError{Kind: CorruptedMOData, Context: context}
	}
	return data[start:end], nil
}

func decodeMOEntryPair(origBytes, transBytes []byte) *MOEntry {
	origStr := string(origBytes)
	transStr := string(transBytes)

	entry := &MOEntry{}

	if idx := strings.IndexByte(origStr, eotByte); idx >= 0 {
		entry.MsgCtxt = strPtr(origStr[:idx])
		origStr = origStr[idx+1:]
	}

	if idx := strings.IndexByte(origStr, 0); idx >= 0 {
		entry.MsgID = origStr[:idx]
		entry.MsgIDPlural = strPtr(origStr[idx+1:])
	} else {
		entry.MsgID = origStr
	}

	if strings.IndexByte(transStr, 0) >= 0 {
		parts := strings.Split(transStr, "\x00")
		m := make(map[string]string, len(parts))
		for i, part := range parts {
			m[strconv.Itoa(i)] = part
		}
		entry.MsgStrPlural = m
	} else {
		entry.MsgStr = strPtr(transStr)
	}

	return entry
}
