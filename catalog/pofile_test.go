package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rivo/uniseg"
)

const allPOContent = `msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Report-Msgid-Bugs-To: \n"
"POT-Creation-Date: 2020-01-01 00:00+0000\n"
"PO-Revision-Date: 2020-01-01 00:00+0000\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"

#. a comment
#: file.py:1
msgid "msgid 1"
msgstr "msgstr 1"

msgid "msgid 2"
msgid_plural "msgid 2 plural"
msgstr[0] "msgstr 2 singular"
msgstr[1] "msgstr 2 plural"

msgctxt "ctxt"
msgid "msgid 3"
msgstr "msgstr 3"

msgid "msgid 4"
msgstr ""

#, fuzzy
msgid "msgid 5"
msgstr "msgstr 5"

msgid "msgid 6"
msgstr "msgstr 6"

msgid "msgid 7"
msgstr "msgstr 7"

msgid "msgid 8"
msgstr "msgstr 8"

#~ msgid "obsolete msgid"
#~ msgstr "obsolete msgstr"
`

const twoTranslatedContent = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "msgid 1"
msgstr ""

msgid "msgid 2"
msgstr "msgstr 2"

msgid "msgid 3"
msgstr ""

msgid "msgid 4"
msgstr "msgstr 4"

msgid "msgid 5"
msgstr ""
`

const obsoletesContent = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "msgid 1"
msgstr "msgstr 1"

#~ msgid "obsolete 1"
#~ msgstr "obsolete msgstr 1"

#~ msgid "obsolete 2"
#~ msgstr "obsolete msgstr 2"
`

const naturalUnsortedMetadataContent = `msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Report-Msgid-Bugs-To: \n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"X-Poedit-SearchPath-10: Baz\n"
"X-Poedit-SearchPath-2: Bar\n"
"X-Poedit-SearchPath-1: Foo\n"
`

const fuzzyNoFuzzyContent = `msgid "a"
msgstr "a"

#, fuzzy
msgid "Line"
msgstr "Ligne"
`

func mustPofile(t *testing.T, content string) *POFile {
	t.Helper()
	f, err := Pofile(Options{PathOrContent: content})
	if err != nil {
		t.Fatalf("Pofile: %v", err)
	}
	return f
}

func TestPOFileParse(t *testing.T) {
	file := mustPofile(t, allPOContent)
	if len(file.Entries) != 9 {
		t.Fatalf("entries = %d, want 9", len(file.Entries))
	}
}

func TestPOFileMetadataAsEntry(t *testing.T) {
	file := mustPofile(t, allPOContent)
	entry := file.MetadataAsEntry()
	if entry.MsgID != "" {
		t.Errorf("MsgID = %q", entry.MsgID)
	}
	if entry.MsgStr == nil {
		t.Fatal("expected metadata msgstr")
	}
	if got := len(rustLines(*entry.MsgStr)); got != 10 {
		t.Errorf("metadata line count = %d, want 10", got)
	}

	empty := mustPofile(t, "msgid \"\"\nmsgstr \"\"\n")
	emptyEntry := empty.MetadataAsEntry()
	if emptyEntry.MsgStr != nil {
		t.Errorf("expected no metadata msgstr, got %q", *emptyEntry.MsgStr)
	}

	fuzzyHeader := `msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Report-Msgid-Bugs-To: \n"
"POT-Creation-Date: 2020-01-01 00:00+0000\n"
"PO-Revision-Date: 2020-01-01 00:00+0000\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
`
	fuzzy := mustPofile(t, "#, fuzzy\n"+fuzzyHeader)
	fuzzyEntry := fuzzy.MetadataAsEntry()
	if !fuzzyEntry.Fuzzy() {
		t.Error("expected fuzzy metadata entry")
	}
	if got := len(rustLines(*fuzzyEntry.MsgStr)); got != 10 {
		t.Errorf("metadata line count = %d, want 10", got)
	}
}

func TestMetadataKeysAreNaturalSorted(t *testing.T) {
	file := mustPofile(t, naturalUnsortedMetadataContent)
	want := `msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Report-Msgid-Bugs-To: \n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"X-Poedit-SearchPath-1: Foo\n"
"X-Poedit-SearchPath-2: Bar\n"
"X-Poedit-SearchPath-10: Baz\n"
`
	if got := file.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMOFileFromPOFile(t *testing.T) {
	poFile := mustPofile(t, allPOContent)
	moFile := MOFileFromPOFile(poFile)

	if len(moFile.Entries) != len(poFile.TranslatedEntries()) {
		t.Errorf("mo entries = %d, want %d", len(moFile.Entries), len(poFile.TranslatedEntries()))
	}
	if len(moFile.Metadata) != len(poFile.Metadata) {
		t.Errorf("mo metadata = %d, want %d", len(moFile.Metadata), len(poFile.Metadata))
	}
}

func TestPOFilePercentTranslated(t *testing.T) {
	file := mustPofile(t, twoTranslatedContent)
	if got := file.PercentTranslated(); got != 40 {
		t.Errorf("PercentTranslated = %v, want 40", got)
	}
}

func TestPOFileTranslatedEntries(t *testing.T) {
	file := mustPofile(t, twoTranslatedContent)
	translated := file.TranslatedEntries()

	if len(file.Entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(file.Entries))
	}
	if len(translated) != 2 {
		t.Fatalf("translated = %d, want 2", len(translated))
	}
	if file.Entries[0].MsgID != "msgid 1" {
		t.Errorf("Entries[0].MsgID = %q", file.Entries[0].MsgID)
	}
	if translated[0].MsgID != "msgid 2" {
		t.Errorf("translated[0].MsgID = %q", translated[0].MsgID)
	}
}

func TestPOFileUntranslatedEntries(t *testing.T) {
	file := mustPofile(t, twoTranslatedContent)
	untranslated := file.UntranslatedEntries()

	if len(file.Entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(file.Entries))
	}
	if len(untranslated) != 3 {
		t.Fatalf("untranslated = %d, want 3", len(untranslated))
	}
	if file.Entries[0].MsgID != "msgid 1" {
		t.Errorf("Entries[0].MsgID = %q", file.Entries[0].MsgID)
	}
	if untranslated[0].MsgID != "msgid 1" {
		t.Errorf("untranslated[0].MsgID = %q", untranslated[0].MsgID)
	}
	if untranslated[1].MsgID != "msgid 3" {
		t.Errorf("untranslated[1].MsgID = %q", untranslated[1].MsgID)
	}
}

func TestPOFileObsoleteEntries(t *testing.T) {
	file := mustPofile(t, obsoletesContent)
	obsolete := file.ObsoleteEntries()

	if len(file.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(file.Entries))
	}
	if len(obsolete) != 2 {
		t.Fatalf("obsolete = %d, want 2", len(obsolete))
	}
}

func TestPOFileToStringWrapBound(t *testing.T) {
	file := mustPofile(t, allPOContent)
	s := file.String()

	for _, line := range strings.Split(s, "\n") {
		n := uniseg.GraphemeClusterCount(line)
		if n > file.Options.normalized().Wrapwidth+2 {
			t.Errorf("line %q has %d graphemes, exceeds wrapwidth+2", line, n)
		}
	}
}

func TestPOFileSave(t *testing.T) {
	file := mustPofile(t, allPOContent)
	want := file.String()

	tmp := filepath.Join(t.TempDir(), "all-1.po")
	if err := file.Save(tmp); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != want {
		t.Errorf("saved content mismatch")
	}
}

func TestPOFileSaveAsPofile(t *testing.T) {
	file := mustPofile(t, allPOContent)
	want := file.String()

	tmp := filepath.Join(t.TempDir(), "all-2.po")
	if err := file.SaveAsPofile(tmp); err != nil {
		t.Fatalf("SaveAsPofile: %v", err)
	}
	got, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != want {
		t.Errorf("saved content mismatch")
	}
}

func TestPOFileSaveAsMofile(t *testing.T) {
	poFile := mustPofile(t, "msgid \"foo bar\"\nmsgstr \"foo bar\"\n")

	tmp := filepath.Join(t.TempDir(), "pofile_save_as_mofile-simple.mo")
	if err := poFile.SaveAsMofile(tmp); err != nil {
		t.Fatalf("SaveAsMofile: %v", err)
	}

	moFile, err := Mofile(Options{PathOrContent: tmp})
	if err != nil {
		t.Fatalf("Mofile: %v", err)
	}

	if len(moFile.Entries) != len(poFile.Entries) {
		t.Errorf("mo entries = %d, want %d", len(moFile.Entries), len(poFile.Entries))
	}
	if len(moFile.Metadata) != len(poFile.Metadata) {
		t.Errorf("mo metadata = %d, want %d", len(moFile.Metadata), len(poFile.Metadata))
	}
	if moFile.Entries[0].MsgID != "foo bar" {
		t.Errorf("MsgID = %q", moFile.Entries[0].MsgID)
	}
	if strVal(moFile.Entries[0].MsgStr) != "foo bar" {
		t.Errorf("MsgStr = %q", strVal(moFile.Entries[0].MsgStr))
	}
}

func TestSetFuzzy(t *testing.T) {
	file := mustPofile(t, fuzzyNoFuzzyContent)

	if file.Entries[0].Fuzzy() {
		t.Error("entries[0] should not start fuzzy")
	}
	if !file.Entries[1].Fuzzy() {
		t.Error("entries[1] should start fuzzy")
	}

	file.Entries[0].SetFuzzy(true)
	file.Entries[1].SetFuzzy(false)

	if !file.Entries[0].Fuzzy() {
		t.Error("entries[0] should now be fuzzy")
	}
	if file.Entries[1].Fuzzy() {
		t.Error("entries[1] should no longer be fuzzy")
	}

	if got, want := file.Entries[0].String(), "#, fuzzy\nmsgid \"a\"\nmsgstr \"a\"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := file.Entries[1].String(), "msgid \"Line\"\nmsgstr \"Ligne\"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
