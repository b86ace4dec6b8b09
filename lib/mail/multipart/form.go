package multipart

import (
	"fmt"
	"io"
	"strings"

	"mpform/lib/mail"
)

const octetStream = "application/octet-stream"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// CreateFormFile creates file part with given field name and file name
// and Content-Type application/octet-stream.
func (mw *Writer) CreateFormFile(fieldname, filename string) (*Part, error) {
	return mw.CreateFormFileType(fieldname, filename, octetStream)
}

// CreateFormFileType is like CreateFormFile but with custom Content-Type.
func (mw *Writer) CreateFormFileType(
	fieldname, filename, contentType string) (*Part, error) {

	h := make(mail.Headers)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(fieldname), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return mw.CreatePart(h)
}

func (mw *Writer) CreateFormField(fieldname string) (*Part, error) {
	h := make(mail.Headers)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(fieldname)))
	return mw.CreatePart(h)
}

// WriteField creates form field and writes value as its body.
func (mw *Writer) WriteField(fieldname, value string) error {
	p, err := mw.CreateFormField(fieldname)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p, value)
	return err
}
