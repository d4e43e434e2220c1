package util

import (
	"io"
	"net/http"
)

// DetectMimeType sniffs the real content type from the first bytes of
// the upload, independent of the client-declared header.
func DetectMimeType(reader io.Reader) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(buffer[:n]), nil
}
