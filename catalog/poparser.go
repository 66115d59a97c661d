package catalog

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/minios-linux/gopo/escaping"
)

type fieldKind int

const (
	fieldNone fieldKind = iota
	fieldMsgctxt
	fieldMsgid
	fieldMsgidPlural
	fieldMsgstr
	fieldMsgstrPlural
	fieldPrevMsgctxt
	fieldPrevMsgid
	fieldPrevMsgidPlural
)

type poParser struct {
	opts Options

	file *POFile

	source       string
	sourceIsPath bool
	lineNum      int

	current      *POEntry
	currentField fieldKind
	currentIndex string

	sawMetadata bool
	seen        map[string]bool
}

// Pofile parses a PO catalog, loading it from opts.PathOrContent per the
// path-or-content convention: an existing readable file is loaded from
// disk, otherwise the string is treated as the catalog's own content.
func Pofile(opts Options) (*POFile, error) {
	opts = opts.normalized()

	content, sourceIsPath, sourceName, err := resolveContent(opts.PathOrContent)
	if err != nil {
		return nil, &SyntaxError{Kind: BasicCustom, Source: opts.PathOrContent, SourceIsPath: true, Message: err.Error()}
	}

	p := &poParser{
		opts:         opts,
		file:         NewPOFile(opts),
		source:       sourceName,
		sourceIsPath: sourceIsPath,
		seen:         map[string]bool{},
	}
	if err := p.run(content); err != nil {
		return nil, err
	}
	return p.file, nil
}

func (p *poParser) run(content string) error {
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		p.lineNum++
		if err := p.handleLine(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &SyntaxError{Kind: BasicCustom, Source: p.source, SourceIsPath: p.sourceIsPath, Message: err.Error()}
	}
	return p.flush()
}

func (p *poParser) handleLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return p.flush()
	}
	if p.current == nil {
		p.current = NewPOEntry(p.lineNum)
	}
	return p.handleTokenLine(line)
}

func (p *poParser) handleTokenLine(raw string) error {
	line := raw
	offset := 0
	obsolete, previous := false, false

	switch {
	case strings.HasPrefix(line, "#~| "):
		obsolete, previous = true, true
		line = line[4:]
		offset = 4
	case strings.HasPrefix(line, "#| "):
		previous = true
		line = line[3:]
		offset = 3
	case strings.HasPrefix(line, "#~ "):
		obsolete = true
		line = line[3:]
		offset = 3
	}

	if obsolete {
		p.current.Obsolete = true
	}

	switch {
	case strings.HasPrefix(line, "\""):
		return p.continuation(line, offset)

	case strings.HasPrefix(line, "msgctxt "):
		field := fieldMsgctxt
		if previous {
			field = fieldPrevMsgctxt
		}
		return p.startField(field, line[8:], offset+8)

	case strings.HasPrefix(line, "msgid_plural "):
		field := fieldMsgidPlural
		if previous {
			field = fieldPrevMsgidPlural
		}
		return p.startField(field, line[13:], offset+13)

	case strings.HasPrefix(line, "msgid "):
		field := fieldMsgid
		if previous {
			field = fieldPrevMsgid
		}
		return p.startField(field, line[6:], offset+6)

	case strings.HasPrefix(line, "msgstr["):
		return p.startPluralField(line, offset)

	case strings.HasPrefix(line, "msgstr "):
		return p.startField(fieldMsgstr, line[7:], offset+7)

	case strings.HasPrefix(line, "#:"):
		return p.handleOccurrences(strings.TrimSpace(line[2:]))

	case strings.HasPrefix(line, "#,"):
		return p.handleFlags(strings.TrimSpace(line[2:]))

	case strings.HasPrefix(line, "#."):
		return p.handleExtractedComment(strings.TrimPrefix(strings.TrimPrefix(line, "#."), " "))

	case strings.HasPrefix(line, "#"):
		return p.handleTranslatorComment(strings.TrimPrefix(strings.TrimPrefix(line, "#"), " "))

	default:
		return p.syntaxErrorCustom(0, fmt.Sprintf("unknown keyword in line %q", raw))
	}
}

func (p *poParser) startPluralField(line string, offset int) error {
	bracketEnd := strings.IndexByte(line, ']')
	if bracketEnd < 0 {
		return p.syntaxErrorCustom(offset, "malformed msgstr[] index")
	}
	idxStr := line[len("msgstr["):bracketEnd]
	if _, err := strconv.Atoi(idxStr); err != nil {
		return p.syntaxErrorCustom(offset, "malformed msgstr[] index")
	}
	rest := line[bracketEnd+1:]
	if !strings.HasPrefix(rest, " ") {
		return p.syntaxErrorCustom(offset, "malformed msgstr[] index")
	}
	p.currentIndex = idxStr
	return p.startField(fieldMsgstrPlural, rest[1:], offset+bracketEnd+2)
}

// startField begins a new field assignment: it extracts and unescapes
// the quoted payload of segment (the part of the line following the
// keyword), and stores it as field's initial value. baseOffset is the
// 0-based position, within the original raw line, where segment starts
// -- used to compute accurate error indexes.
func (p *poParser) startField(field fieldKind, segment string, baseOffset int) error {
	payload, errIdx, err := extractQuoted(segment, baseOffset)
	if err != nil {
		return p.quoteError(errIdx)
	}
	unescaped, uerr := escaping.Unescape(payload)
	if uerr != nil {
		return p.escapingErr(uerr)
	}
	p.currentField = field
	p.assignField(field, unescaped)
	return nil
}

func (p *poParser) continuation(segment string, baseOffset int) error {
	payload, errIdx, err := extractQuoted(segment, baseOffset)
	if err != nil {
		return p.quoteError(errIdx)
	}
	unescaped, uerr := escaping.Unescape(payload)
	if uerr != nil {
		return p.escapingErr(uerr)
	}
	p.appendField(p.currentField, unescaped)
	return nil
}

func extractQuoted(segment string, baseOffset int) (payload string, errIndex int, err error) {
	if len(segment) < 2 || segment[0] != '"' || segment[len(segment)-1] != '"' {
		return "", -1, fmt.Errorf("missing closing quote")
	}
	payload = segment[1 : len(segment)-1]
	escaped := false
	for j := 0; j < len(payload); j++ {
		c := payload[j]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			return "", baseOffset + j + 2, fmt.Errorf("unescaped double quote")
		}
	}
	return payload, -1, nil
}

func (p *poParser) assignField(field fieldKind, value string) {
	switch field {
	case fieldMsgctxt:
		p.current.MsgCtxt = strPtr(value)
	case fieldMsgid:
		p.current.MsgID = value
	case fieldMsgidPlural:
		p.current.MsgIDPlural = strPtr(value)
	case fieldMsgstr:
		p.current.MsgStr = strPtr(value)
	case fieldMsgstrPlural:
		if p.current.MsgStrPlural == nil {
			p.current.MsgStrPlural = map[string]string{}
		}
		p.current.MsgStrPlural[p.currentIndex] = value
	case fieldPrevMsgctxt:
		p.current.PreviousMsgctxt = strPtr(value)
	case fieldPrevMsgid:
		p.current.PreviousMsgid = strPtr(value)
	case fieldPrevMsgidPlural:
		p.current.PreviousMsgidPlural = strPtr(value)
	}
}

func (p *poParser) appendField(field fieldKind, value string) {
	switch field {
	case fieldMsgctxt:
		*p.current.MsgCtxt += value
	case fieldMsgid:
		p.current.MsgID += value
	case fieldMsgidPlural:
		*p.current.MsgIDPlural += value
	case fieldMsgstr:
		*p.current.MsgStr += value
	case fieldMsgstrPlural:
		p.current.MsgStrPlural[p.currentIndex] += value
	case fieldPrevMsgctxt:
		*p.current.PreviousMsgctxt += value
	case fieldPrevMsgid:
		*p.current.PreviousMsgid += value
	case fieldPrevMsgidPlural:
		*p.current.PreviousMsgidPlural += value
	}
}

func (p *poParser) handleOccurrences(rest string) error {
	for _, tok := range strings.Fields(rest) {
		file, line := splitOccurrenceToken(tok)
		p.current.Occurrences = append(p.current.Occurrences, Occurrence{File: file, Line: line})
	}
	return nil
}

func splitOccurrenceToken(tok string) (file, line string) {
	if idx := strings.LastIndex(tok, ":"); idx >= 0 {
		linePart := tok[idx+1:]
		if linePart != "" && isAllDigits(linePart) {
			return tok[:idx], linePart
		}
	}
	return tok, ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (p *poParser) handleFlags(rest string) error {
	for _, f := range strings.Split(rest, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			p.current.Flags = append(p.current.Flags, f)
		}
	}
	return nil
}

func (p *poParser) handleExtractedComment(text string) error {
	appendCommentLine(&p.current.TComment, text)
	return nil
}

func (p *poParser) handleTranslatorComment(text string) error {
	appendCommentLine(&p.current.Comment, text)
	return nil
}

func appendCommentLine(dest **string, text string) {
	if *dest == nil {
		s := text
		*dest = &s
		return
	}
	**dest = **dest + "\n" + text
}

func (p *poParser) flush() error {
	if p.current == nil {
		return nil
	}
	entry := p.current
	p.current = nil
	p.currentField = fieldNone
	p.currentIndex = ""

	if isZeroEntry(entry) {
		return nil
	}

	if !p.sawMetadata && entry.MsgID == "" && entry.MsgCtxt == nil {
		p.sawMetadata = true
		p.file.MetadataIsFuzzy = entry.Fuzzy()
		if entry.MsgStr != nil {
			parseMetadataLines(p.file.Metadata, *entry.MsgStr)
		}
		if entry.Comment != nil {
			p.file.Header = entry.Comment
		}
		return nil
	}

	if p.opts.CheckForDuplicates {
		key := entryDupKey(entry)
		if p.seen[key] {
			return p.syntaxErrorAtLine(Custom, entry.Linenum, 0, "duplicate entry found")
		}
		p.seen[key] = true
	}

	p.file.Entries = append(p.file.Entries, entry)
	return nil
}

func isZeroEntry(e *POEntry) bool {
	return e.MsgID == "" &&
		e.MsgStr == nil &&
		e.MsgIDPlural == nil &&
		len(e.MsgStrPlural) == 0 &&
		e.MsgCtxt == nil &&
		!e.Obsolete &&
		e.Comment == nil &&
		e.TComment == nil &&
		len(e.Occurrences) == 0 &&
		len(e.Flags) == 0 &&
		e.PreviousMsgctxt == nil &&
		e.PreviousMsgid == nil &&
		e.PreviousMsgidPlural == nil
}

func entryDupKey(e *POEntry) string {
	if e.MsgCtxt != nil {
		return "1\x00" + *e.MsgCtxt + "\x00" + e.MsgID
	}
	return "0\x00" + e.MsgID
}

func (p *poParser) quoteError(idx int) error {
	if idx < 0 {
		return p.syntaxErrorCustom(0, "missing closing quote")
	}
	return &SyntaxError{
		Kind: UnescapedDoubleQuoteFound, Source: p.source, SourceIsPath: p.sourceIsPath,
		Line: p.lineNum, Index: idx,
	}
}

func (p *poParser) escapingErr(err error) error {
	return p.syntaxErrorCustom(0, err.Error())
}

func (p *poParser) syntaxErrorCustom(index int, message string) error {
	return &SyntaxError{
		Kind: Custom, Source: p.source, SourceIsPath: p.sourceIsPath,
		Line: p.lineNum, Index: index, Message: message,
	}
}

func (p *poParser) syntaxErrorAtLine(kind SyntaxErrorKind, line, index int, message string) error {
	return &SyntaxError{
		Kind: kind, Source: p.source, SourceIsPath: p.sourceIsPath,
		Line: line, Index: index, Message: message,
	}
}
