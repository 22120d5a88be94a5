package csvio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestRead_FindsTextColumn(t *testing.T) {
	in := "id,text,src\n1,Hello,web\n2,\"Bye, now\",app\n"
	tbl, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	idx, ok := tbl.Column("text")
	if !ok || idx != 1 {
		t.Fatalf("Column(text) = %d, %v", idx, ok)
	}
	got := tbl.Values(idx)
	if len(got) != 2 || got[1] != "Bye, now" {
		t.Fatalf("Values = %q", got)
	}
}

func TestRead_StripsBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("text\nok\n")...)
	tbl, err := Read(bytes.NewReader(in))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, ok := tbl.Column("text"); !ok {
		t.Fatalf("header = %q, BOM not removed", tbl.Header)
	}
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("err = %v, want ErrNoHeader", err)
	}
}

func TestRead_WideRowFails(t *testing.T) {
	_, err := Read(strings.NewReader("a,text\n1,2\n1,2,3\n"))
	if err == nil {
		t.Fatal("expected field count error")
	}
	if !strings.Contains(err.Error(), "expected 2 fields in line 3, saw 3") {
		t.Fatalf("err = %v", err)
	}
}

func TestRead_ShortRowIsPadded(t *testing.T) {
	tbl, err := Read(strings.NewReader("id,text,src\n1,good,shop\n2,bad\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(tbl.Rows) != 2 || len(tbl.Rows[1]) != 3 {
		t.Fatalf("rows = %q", tbl.Rows)
	}
	if got := tbl.Cell(1, 2); got != "" {
		t.Fatalf("src of short row = %q, want empty", got)
	}
	if got := tbl.Values(1); got[1] != "bad" {
		t.Fatalf("text = %q", got)
	}
}

func TestRead_BareQuoteIsLiteral(t *testing.T) {
	tbl, err := Read(strings.NewReader("id,text\n1,5\" screen is great\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := tbl.Cell(0, 1); got != `5" screen is great` {
		t.Fatalf("text = %q", got)
	}
}

func TestSetColumn_AppendsAndReplaces(t *testing.T) {
	tbl := &Table{Header: []string{"text", "labels"}, Rows: [][]string{{"a", "old"}, {"b", "old"}}}
	if err := tbl.SetColumn("labels", []string{"x", "y"}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.SetColumn("confidence", []string{"0.5", "0.6"}); err != nil {
		t.Fatal(err)
	}
	if strings.Join(tbl.Header, ",") != "text,labels,confidence" {
		t.Fatalf("header = %v", tbl.Header)
	}
	if tbl.Rows[1][1] != "y" || tbl.Rows[1][2] != "0.6" {
		t.Fatalf("rows = %v", tbl.Rows)
	}
	if err := tbl.SetColumn("bad", []string{"1"}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestEncode_QuotesWhereNeeded(t *testing.T) {
	tbl := &Table{Header: []string{"labels", "text", "confidence"}, Rows: [][]string{{"Positive", `said "hi", left`, "0.9"}}}
	b, err := tbl.Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := "labels,text,confidence\nPositive,\"said \"\"hi\"\", left\",0.9\n"
	if string(b) != want {
		t.Fatalf("Encode = %q, want %q", b, want)
	}
}

func TestFormatConfidence(t *testing.T) {
	if got := FormatConfidence(0.5); got != "0.5" {
		t.Fatalf("FormatConfidence(0.5) = %q", got)
	}
	if got := FormatConfidence(1); got != "1" {
		t.Fatalf("FormatConfidence(1) = %q", got)
	}
}

func TestFileWriter_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "predictions.csv")
	w := NewFileWriter(path)
	if w.Path() != path {
		t.Fatalf("Path = %q", w.Path())
	}

	var wg sync.WaitGroup
	for _, body := range []string{"first\n", "second\n", "third\n"} {
		wg.Add(1)
		go func(b string) {
			defer wg.Done()
			if err := w.Write([]byte(b)); err != nil {
				t.Errorf("Write: %v", err)
			}
		}(body)
	}
	wg.Wait()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	switch string(got) {
	case "first\n", "second\n", "third\n":
	default:
		t.Fatalf("unexpected content %q", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}
