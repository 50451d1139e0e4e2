package clientcli

// UploadOptions configures an upload. FilePath is optional; without it the
// observation is sent with no file, as the detector does when a face is lost.
type UploadOptions struct {
	Age            string
	Gender         string
	Mood           string
	RecognizeState string
	RecognizedName string

	FilePath string
	FileName string // optional, defaults to the base name of FilePath
}

// Record is the stored upload as echoed by the server.
type Record struct {
	Age            string  `json:"age"`
	Gender         string  `json:"gender"`
	Mood           string  `json:"mood"`
	RecognizeState string  `json:"recognizestate"`
	RecognizedName string  `json:"recognizedname"`
	FileLocation   *string `json:"file_location"`
}

// LatestData is the most recent record as served by /data.
type LatestData struct {
	Age            string  `json:"age"`
	Gender         string  `json:"gender"`
	Mood           string  `json:"mood"`
	RecognizeState string  `json:"recognizestate"`
	RecognizedName string  `json:"recognizedname"`
	File           *string `json:"file"`
}

// DownloadOptions configures a download of the latest file.
type DownloadOptions struct {
	LocalPath string // empty = server-provided file name, "-" = stdout
}

// DownloadResult represents the result of downloading the latest file.
type DownloadResult struct {
	FileName    string `json:"file_name"`
	LocalPath   string `json:"local_path"`
	ETag        string `json:"etag"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
}

// UpdateName is the pending name. Set is false when the server reports none.
type UpdateName struct {
	Name string `json:"updatename"`
	Set  bool   `json:"set"`
}

// Intervals are the client pacing hints in seconds.
type Intervals struct {
	Upload      int `json:"upload_interval"`
	Recognition int `json:"recognition_interval"`
}

// Health is the server liveness report.
type Health struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// unsetName is what the server reports when no name is pending.
const unsetName = "NotYet"

type serverMessage struct {
	Message  string `json:"message"`
	Interval int    `json:"interval,omitempty"`
}

type serverError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
