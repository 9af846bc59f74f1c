package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"bnbBack/internal/models"
)

const imageField = "image"

// imageTypes maps the accepted sniffed content types to the extension the
// stored file gets.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var errNotAnImage = &models.ValidationError{Field: imageField, Message: `"image" must be a JPEG, PNG, GIF or WebP file`}

// collectFiles gathers all files sent under the given form keys.
func collectFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}

// singleImage returns the uploaded image or nil when none was sent. More than
// one file is a validation error.
func singleImage(form *multipart.Form) (*multipart.FileHeader, error) {
	files := collectFiles(form, imageField)
	switch len(files) {
	case 0:
		return nil, nil
	case 1:
		return files[0], nil
	default:
		return nil, &models.ValidationError{Field: imageField, Message: `"image" must be a single file`}
	}
}

// openImage opens the upload and checks both its extension and its sniffed
// content. The returned attachment carries the detected content type and a
// file name whose extension matches it. The caller closes the file.
func openImage(header *multipart.FileHeader) (*models.Attachment, multipart.File, error) {
	if !imageExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return nil, nil, errNotAnImage
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	ext, ok := imageTypes[mtype.String()]
	if !ok {
		file.Close()
		return nil, nil, errNotAnImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, nil, err
	}

	base := filepath.Base(header.Filename)
	return &models.Attachment{
		Filename:    strings.TrimSuffix(base, filepath.Ext(base)) + ext,
		ContentType: mtype.String(),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

func formValue(form *multipart.Form, key string) string {
	if form == nil {
		return ""
	}
	if values := form.Value[key]; len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

func formInt(form *multipart.Form, key string) (int, error) {
	raw := formValue(form, key)
	if raw == "" {
		return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("%q is required", key)}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		if _, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("%q must be an integer", key)}
		}
		return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("%q must be a number", key)}
	}
	return n, nil
}

func formFloat(form *multipart.Form, key string) (float64, error) {
	raw := formValue(form, key)
	if raw == "" {
		return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("%q is required", key)}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("%q must be a number", key)}
	}
	return f, nil
}

// parseServiceIDs accepts repeated "services" / "services[]" fields as well
// as a single JSON array such as "[1,3]".
func parseServiceIDs(form *multipart.Form) ([]int, error) {
	if form == nil {
		return nil, nil
	}

	var raw []string
	for _, key := range []string{"services", "services[]"} {
		raw = append(raw, form.Value[key]...)
	}

	invalid := &models.ValidationError{Field: "services", Message: `"services" must be an array of integers`}
	var ids []int
	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" || value == "null" || value == "undefined" {
			continue
		}
		if strings.HasPrefix(value, "[") {
			var arr []int
			if err := json.Unmarshal([]byte(value), &arr); err != nil {
				return nil, invalid
			}
			ids = append(ids, arr...)
			continue
		}
		for _, part := range strings.Split(value, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, invalid
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseApartmentForm(form *multipart.Form) (models.ApartmentInput, error) {
	var in models.ApartmentInput
	var err error

	in.Title = formValue(form, "title")
	if in.Rooms, err = formInt(form, "rooms"); err != nil {
		return in, err
	}
	if in.Beds, err = formInt(form, "beds"); err != nil {
		return in, err
	}
	if in.Bathrooms, err = formInt(form, "bathrooms"); err != nil {
		return in, err
	}
	if in.SquareMeters, err = formFloat(form, "square_meters"); err != nil {
		return in, err
	}
	in.Address = formValue(form, "address")
	in.City = formValue(form, "city")
	if in.Services, err = parseServiceIDs(form); err != nil {
		return in, err
	}
	return in, nil
}
