package models

import "io"

// Attachment is a single uploaded file on its way to an attachment store.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
