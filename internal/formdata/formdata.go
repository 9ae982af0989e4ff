// Package formdata decodes buffered multipart/form-data request bodies.
//
// The decoder works on the raw body bytes: it splits the body on the
// "--<boundary>" delimiter and reads each part's headers and payload
// without any encoding round-trip, so binary file content is preserved.
//
// Known limitation: there is no escaping. A payload that itself contains
// "--<boundary>" is cut at that point.
package formdata

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
)

// ErrMissingBoundary is returned when the content-type header carries no boundary parameter.
var ErrMissingBoundary = errors.New("no boundary found in content type")

var (
	dispositionMarker = []byte("Content-Disposition: form-data")
	headerTerminator  = []byte("\r\n\r\n")
	lineBreak         = []byte("\r\n")

	nameRe        = regexp.MustCompile(`(?:^|[;\s])name="([^"]+)"`)
	filenameRe    = regexp.MustCompile(`filename="([^"]+)"`)
	contentTypeRe = regexp.MustCompile(`(?m)^Content-Type: ([^\r\n]+)`)
)

// Part is one delimited segment of a multipart body.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

// IsFile reports whether the part carries both a filename and a declared content type.
func (p *Part) IsFile() bool {
	return p.Filename != "" && p.ContentType != ""
}

// Size returns the payload length in bytes.
func (p *Part) Size() int64 {
	return int64(len(p.Data))
}

// Form is the decoded body: plain fields plus file parts, both keyed by field name.
// When a name repeats, the last part wins.
type Form struct {
	Fields map[string][]byte
	Files  map[string]*Part
}

// File returns the file part with the given field name.
func (f *Form) File(name string) (*Part, bool) {
	p, ok := f.Files[name]
	return p, ok
}

// Value returns the field with the given name as a string, or "" when absent.
func (f *Form) Value(name string) string {
	return string(f.Fields[name])
}

// FieldNames returns the names of all plain fields.
func (f *Form) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	return names
}

// Boundary extracts the boundary token from a content-type header value.
func Boundary(contentType string) (string, error) {
	_, after, found := strings.Cut(contentType, "boundary=")
	if !found {
		return "", ErrMissingBoundary
	}
	if i := strings.IndexByte(after, ';'); i >= 0 {
		after = after[:i]
	}
	token := strings.Trim(strings.TrimSpace(after), `"`)
	if token == "" {
		return "", ErrMissingBoundary
	}
	return token, nil
}

// Decode parses a fully buffered multipart/form-data body.
func Decode(contentType string, body []byte) (*Form, error) {
	boundary, err := Boundary(contentType)
	if err != nil {
		return nil, err
	}

	form := &Form{
		Fields: make(map[string][]byte),
		Files:  make(map[string]*Part),
	}

	for _, segment := range bytes.Split(body, []byte("--"+boundary)) {
		part, ok := parsePart(segment)
		if !ok {
			continue
		}
		if part.IsFile() {
			form.Files[part.Name] = part
		} else {
			form.Fields[part.Name] = part.Data
		}
	}
	return form, nil
}

// parsePart reads one segment. Segments without the form-data marker, a
// header terminator or a non-empty name are not parts.
func parsePart(segment []byte) (*Part, bool) {
	if !bytes.Contains(segment, dispositionMarker) {
		return nil, false
	}
	headerEnd := bytes.Index(segment, headerTerminator)
	if headerEnd < 0 {
		return nil, false
	}
	headers := segment[:headerEnd]

	m := nameRe.FindSubmatch(headers)
	if m == nil {
		return nil, false
	}
	part := &Part{Name: string(m[1])}

	if m := filenameRe.FindSubmatch(headers); m != nil {
		part.Filename = string(m[1])
	}
	if m := contentTypeRe.FindSubmatch(headers); m != nil {
		part.ContentType = strings.TrimSpace(string(m[1]))
	}

	// The payload runs from the blank line to the last line break before the next delimiter.
	start := headerEnd + len(headerTerminator)
	end := bytes.LastIndex(segment, lineBreak)
	if end < start {
		end = start
	}
	part.Data = segment[start:end]
	return part, true
}
