package files

import (
	"bufio"
	"io"
	"mime"
	"path"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

// sniffContentType detects the content type from the first bytes of r. The
// returned reader yields the full content, including the peeked bytes.
func sniffContentType(r io.Reader) (string, io.Reader) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	return mimetype.Detect(head).String(), br
}

// guessContentType picks a content type for a download: from the object name
// first, then from the bytes.
func guessContentType(name string, body io.ReadCloser) (string, io.ReadCloser) {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct, body
	}
	ct, r := sniffContentType(body)
	return ct, readCloser{Reader: r, Closer: body}
}

type readCloser struct {
	io.Reader
	io.Closer
}
