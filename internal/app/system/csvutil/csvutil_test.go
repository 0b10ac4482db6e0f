package csvutil

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFilenameFromQuery(t *testing.T) {
	t.Run("default uses prefix and timestamp", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/transactions/export.csv", nil)
		got := FilenameFromQuery(r, "transactions")
		if !strings.HasPrefix(got, "transactions_") {
			t.Errorf("filename %q missing prefix", got)
		}
		if !strings.HasSuffix(got, ".csv") {
			t.Errorf("filename %q missing .csv suffix", got)
		}
	})

	t.Run("explicit filename kept", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/transactions/export.csv?filename=august.csv", nil)
		if got := FilenameFromQuery(r, "transactions"); got != "august.csv" {
			t.Errorf("filename = %q, want august.csv", got)
		}
	})

	t.Run("csv suffix appended", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/transactions/export.csv?filename=august", nil)
		if got := FilenameFromQuery(r, "transactions"); got != "august.csv" {
			t.Errorf("filename = %q, want august.csv", got)
		}
	})
}

func TestBeginDownload(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/transactions/export.csv", nil)

	cw := BeginDownload(w, r, "transactions")
	_ = cw.Write([]string{"reference", "amount"})
	cw.Flush()

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	body := w.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("body should start with a UTF-8 BOM")
	}
	if !bytes.Contains(body, []byte("reference,amount\r\n")) {
		t.Errorf("body missing CRLF header row: %q", body)
	}
}
