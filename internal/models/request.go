package models

// ImageInput is one uploaded image as the store receives it: raw bytes plus
// the MIME type declared by the uploader. Content is never inspected beyond
// the declared type.
type ImageInput struct {
	Filename    string
	ContentType string
	Data        []byte
}
