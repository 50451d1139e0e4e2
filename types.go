package facerelay

import (
	"io"
	"time"
)

// UploadRecord is one accepted submission. Records are never mutated once
// appended to the history.
type UploadRecord struct {
	Age            string  `json:"age"`
	Gender         string  `json:"gender"`
	Mood           string  `json:"mood"`
	RecognizeState string  `json:"recognizestate"`
	RecognizedName string  `json:"recognizedname"`
	FileLocation   *string `json:"file_location"`

	FileName      string    `json:"-"`
	FileSizeBytes int64     `json:"-"`
	ContentType   string    `json:"-"`
	Etag          string    `json:"-"`
	UploadedAt    time.Time `json:"-"`
}

// HasFile reports whether a file was stored with the record.
func (r UploadRecord) HasFile() bool {
	return r.FileLocation != nil && *r.FileLocation != ""
}

// LatestData is the public view of the most recent record.
type LatestData struct {
	Age            string  `json:"age"`
	Gender         string  `json:"gender"`
	Mood           string  `json:"mood"`
	RecognizeState string  `json:"recognizestate"`
	RecognizedName string  `json:"recognizedname"`
	File           *string `json:"file"`
}

// Submission carries the form fields of one upload call. File is nil when the
// caller did not attach a file part.
type Submission struct {
	Age            string
	Gender         string
	Mood           string
	RecognizeState string
	RecognizedName string

	FileName string
	File     io.Reader
}

// HasFile reports whether the submission includes a file part.
func (s Submission) HasFile() bool {
	return s.File != nil
}

type SaveResult struct {
	BytesWritten int64
	Etag         string
	Location     string
	ContentType  string
}

// Intervals are client pacing hints, in whole seconds.
type Intervals struct {
	Upload      int `json:"upload_interval"`
	Recognition int `json:"recognition_interval"`
}

const (
	// UpdateNameKey is the only key the name setting recognizes.
	UpdateNameKey = "updatename"
	// UpdateNameUnset is reported in place of an absent name.
	UpdateNameUnset = "NotYet"

	uploadIntervalKey      = "upload_interval"
	recognitionIntervalKey = "recognition_interval"
)

// DefaultIntervals match the pacing the face-detection client starts with.
var DefaultIntervals = Intervals{Upload: 1, Recognition: 10}
