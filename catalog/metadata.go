package catalog

import (
	"strings"

	"facette.io/natsort"
)

// metadataKeysOrder lists the well-known metadata header fields in the
// order gettext conventionally emits them; any other key present in a
// catalog's metadata is appended afterwards in natural-sort order.
var metadataKeysOrder = []string{
	"Project-Id-Version",
	"Report-Msgid-Bugs-To",
	"POT-Creation-Date",
	"PO-Revision-Date",
	"Last-Translator",
	"Language-Team",
	"Language",
	"MIME-Version",
	"Content-Type",
	"Content-Transfer-Encoding",
	"Plural-Forms",
}

func metadataOrderedKeys(metadata map[string]string) []string {
	seen := make(map[string]bool, len(metadata))
	ordered := make([]string, 0, len(metadata))

	for _, key := range metadataKeysOrder {
		if _, ok := metadata[key]; ok {
			ordered = append(ordered, key)
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(metadata))
	for key := range metadata {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	natsort.Sort(rest)
	ordered = append(ordered, rest...)

	return ordered
}

// metadataToMsgstr renders metadata as the "Key: Value\n" block gettext
// stores in the metadata entry's msgstr, without a trailing newline.
func metadataToMsgstr(metadata map[string]string) string {
	if len(metadata) == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range metadataOrderedKeys(metadata) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(metadata[key])
		b.WriteByte('\n')
	}
	s := b.String()
	return s[:len(s)-1]
}

func parseMetadataLines(dest map[string]string, msgstr string) {
	for _, line := range strings.Split(msgstr, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			continue
		}
		dest[key] = value
	}
}
