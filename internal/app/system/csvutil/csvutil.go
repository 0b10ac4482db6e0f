// internal/app/system/csvutil/csvutil.go

// Package csvutil holds the shared pieces of CSV download endpoints:
// filename handling and a writer preconfigured so Excel opens the file
// correctly.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FilenameFromQuery returns a sanitized CSV filename based on the
// "filename" query param, or prefix plus a UTC timestamp if none is
// provided.
func FilenameFromQuery(r *http.Request, prefix string) string {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = prefix + "_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		filename += ".csv"
	}
	return filename
}

// BeginDownload sets the response headers for a CSV attachment, writes
// the UTF-8 BOM so Excel treats the file as Unicode, and returns a CRLF
// csv.Writer. The caller must Flush the writer when done.
func BeginDownload(w http.ResponseWriter, r *http.Request, prefix string) *csv.Writer {
	filename := FilenameFromQuery(r, prefix)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}
