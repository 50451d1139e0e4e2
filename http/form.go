package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/sagarc03/facerelay"
)

// submissionFields are the text fields every upload must carry.
var submissionFields = []string{"age", "gender", "mood", "recognizestate", "recognizedname"}

// parseForm reads a multipart or urlencoded body and returns its values.
// The returned cleanup removes any multipart parts spooled to disk.
func parseForm(r *http.Request, maxMemory int64) (url.Values, func(), error) {
	err := r.ParseMultipartForm(maxMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, func() {}, fmt.Errorf("parse form: %w", ErrTooLarge)
		}
		return nil, func() {}, fmt.Errorf("parse form: %w: %w", ErrInvalidForm, err)
	}

	cleanup := func() {
		if r.MultipartForm == nil {
			return
		}
		if rmErr := r.MultipartForm.RemoveAll(); rmErr != nil {
			slog.Warn("failed to remove multipart temp files", "error", rmErr)
		}
	}

	return r.PostForm, cleanup, nil
}

func requiredField(values url.Values, key string) (string, error) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", &MissingFieldError{Field: key}
	}
	return v[0], nil
}

// parseSubmission turns an upload request into a Submission. The file part
// is optional; every text field must be present but may be empty.
func parseSubmission(r *http.Request, maxMemory int64) (facerelay.Submission, func(), error) {
	values, cleanupForm, err := parseForm(r, maxMemory)
	if err != nil {
		return facerelay.Submission{}, cleanupForm, err
	}

	fields := make(map[string]string, len(submissionFields))
	for _, key := range submissionFields {
		v, err := requiredField(values, key)
		if err != nil {
			cleanupForm()
			return facerelay.Submission{}, func() {}, err
		}
		fields[key] = v
	}

	sub := facerelay.Submission{
		Age:            fields["age"],
		Gender:         fields["gender"],
		Mood:           fields["mood"],
		RecognizeState: fields["recognizestate"],
		RecognizedName: fields["recognizedname"],
	}

	header := fileHeader(r.MultipartForm, "file")
	if header == nil {
		return sub, cleanupForm, nil
	}

	f, err := header.Open()
	if err != nil {
		cleanupForm()
		return facerelay.Submission{}, func() {}, fmt.Errorf("open file part: %w", err)
	}

	sub.FileName = header.Filename
	sub.File = f

	return sub, func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file part", "error", closeErr)
		}
		cleanupForm()
	}, nil
}

func fileHeader(form *multipart.Form, key string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	headers := form.File[key]
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}
