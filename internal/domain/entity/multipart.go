package entity

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const (
	contentTypeJSON   = "application/json"
	contentTypeText   = "text/plain"
	contentTypeBinary = "application/octet-stream"
)

// HTTPContent is one named part of a multipart form
type HTTPContent struct {
	Name        string
	FileName    string
	ContentType string
	Data        []byte
}

// MultipartForm is an ordered list of named parts. Lookups by name see the
// first part carrying that name.
type MultipartForm struct {
	parts []HTTPContent
	index map[string]int
}

func NewMultipartForm() *MultipartForm {
	return &MultipartForm{index: make(map[string]int)}
}

// Add replaces the part named content.Name, or appends it if there is none
func (f *MultipartForm) Add(content HTTPContent) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if i, ok := f.index[content.Name]; ok {
		f.parts[i] = content
		return
	}
	f.index[content.Name] = len(f.parts)
	f.parts = append(f.parts, content)
}

// Append adds content even if a part with the same name exists, as used for
// several files under one field name
func (f *MultipartForm) Append(content HTTPContent) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if _, ok := f.index[content.Name]; !ok {
		f.index[content.Name] = len(f.parts)
	}
	f.parts = append(f.parts, content)
}

func (f *MultipartForm) HasContent(name string) bool {
	_, ok := f.index[name]
	return ok
}

func (f *MultipartForm) GetContent(name string) (HTTPContent, bool) {
	i, ok := f.index[name]
	if !ok {
		return HTTPContent{}, false
	}
	return f.parts[i], true
}

// GetContents returns every part named name
func (f *MultipartForm) GetContents(name string) []HTTPContent {
	var out []HTTPContent
	for _, part := range f.parts {
		if part.Name == name {
			out = append(out, part)
		}
	}
	return out
}

// Parts returns the parts in insertion order
func (f *MultipartForm) Parts() []HTTPContent {
	return f.parts
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WriteTo writes every part to w. The caller closes w.
func (f *MultipartForm) WriteTo(w *multipart.Writer) error {
	for _, part := range f.parts {
		disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(part.Name))
		if part.FileName != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(part.FileName))
		}

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", disposition)
		if part.ContentType != "" {
			header.Set("Content-Type", part.ContentType)
		}

		pw, err := w.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", part.Name, err)
		}
		if _, err := pw.Write(part.Data); err != nil {
			return fmt.Errorf("failed to write part %s: %w", part.Name, err)
		}
	}
	return nil
}

// ReadMultipartForm reads every part of r into a MultipartForm
func ReadMultipartForm(r *multipart.Reader) (*MultipartForm, error) {
	form := NewMultipartForm()
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read multipart part: %w", err)
		}

		data, err := io.ReadAll(p)
		p.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", p.FormName(), err)
		}

		contentType := p.Header.Get("Content-Type")
		if contentType == "" {
			contentType = contentTypeText
		}
		form.Append(HTTPContent{
			Name:        p.FormName(),
			FileName:    p.FileName(),
			ContentType: contentType,
			Data:        data,
		})
	}
}

// ParseMultipartForm converts an already parsed form, such as the one an
// HTTP server hands out, into a MultipartForm. Only the first value of each
// plain field is kept, every file is kept.
func ParseMultipartForm(mf *multipart.Form) (*MultipartForm, error) {
	form := NewMultipartForm()
	for name, values := range mf.Value {
		if len(values) == 0 {
			continue
		}
		form.Add(HTTPContent{Name: name, ContentType: contentTypeText, Data: []byte(values[0])})
	}
	for name, headers := range mf.File {
		for _, fh := range headers {
			file, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open file %s: %w", fh.Filename, err)
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read file %s: %w", fh.Filename, err)
			}

			contentType := fh.Header.Get("Content-Type")
			if contentType == "" {
				contentType = contentTypeBinary
			}
			form.Append(HTTPContent{Name: name, FileName: fh.Filename, ContentType: contentType, Data: data})
		}
	}
	return form, nil
}

// normalizePrefix makes a non-empty prefix end in the path separator
func normalizePrefix(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, ".") {
		return prefix + "."
	}
	return prefix
}

// toHTTPContent encodes v as a single part. Strings are sent as plain text,
// byte slices as binary, everything else as JSON.
func toHTTPContent(name string, v any) (HTTPContent, error) {
	switch val := v.(type) {
	case string:
		return HTTPContent{Name: name, ContentType: contentTypeText, Data: []byte(val)}, nil
	case []byte:
		return HTTPContent{Name: name, ContentType: contentTypeBinary, Data: val}, nil
	}

	data, err := codec.Marshal(v)
	if err != nil {
		return HTTPContent{}, err
	}
	return HTTPContent{Name: name, ContentType: contentTypeJSON, Data: data}, nil
}

// fromHTTPContent decodes a part produced by toHTTPContent (or a plain form
// field) into dst
func fromHTTPContent(content HTTPContent, dst any) error {
	switch d := dst.(type) {
	case *string:
		if !strings.HasPrefix(content.ContentType, contentTypeJSON) {
			*d = string(content.Data)
			return nil
		}
	case *[]byte:
		*d = append([]byte(nil), content.Data...)
		return nil
	}
	return codec.Unmarshal(content.Data, dst)
}

func writePart[T any](form *MultipartForm, name string, field Optional[T]) error {
	v, ok := field.Lookup()
	if !ok {
		return nil
	}
	content, err := toHTTPContent(name, v)
	if err != nil {
		return &FieldError{Field: name, Err: err}
	}
	form.Add(content)
	return nil
}

func readPart[T any](form *MultipartForm, name string, field *Optional[T]) error {
	content, ok := form.GetContent(name)
	if !ok {
		return nil
	}
	if strings.HasPrefix(content.ContentType, contentTypeJSON) && isNull(content.Data) {
		// a JSON null part is absent, as it is for a JSON member
		return nil
	}
	var v T
	if err := fromHTTPContent(content, &v); err != nil {
		return &FieldError{Field: name, Err: err}
	}
	field.Set(v)
	return nil
}
