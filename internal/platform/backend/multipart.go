package backend

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// File is a named upload staged into a multipart form.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Form accumulates scalar fields and files for a multipart submission.
// Repeated Add calls with the same field name produce repeated parts,
// which the upstream uses for gallery uploads (images, videos) and for
// staged id lists (imagesToDelete, videosToDelete).
type Form struct {
	fields [][2]string
	files  []File
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Add(field, value string) *Form {
	f.fields = append(f.fields, [2]string{field, value})
	return f
}

func (f *Form) AddFile(field, name string, content io.Reader) *Form {
	f.files = append(f.files, File{Field: field, Name: name, Content: content})
	return f
}

// Encode renders the form and returns the body with its content type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, field := range f.fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field[0], err)
		}
	}

	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copy file %s: %w", file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
