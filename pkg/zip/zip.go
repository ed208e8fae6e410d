package zip

import (
	"archive/zip"
	"bytes"
)

// File is one entry of an archive.
type File struct {
	Name string
	Data []byte
}

// Archive bundles files into a single in-memory zip. Entries that fail
// to open are skipped rather than aborting the whole archive.
func Archive(files []File) []byte {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			continue
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil
		}
	}
	_ = zw.Close()
	return buf.Bytes()
}
