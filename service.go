package facerelay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

// HistoryRepo holds the upload history. Implementations must be safe for
// concurrent use; only the most recent record is ever read back.
type HistoryRepo interface {
	// Append adds a record to the end of the history.
	Append(ctx context.Context, rec UploadRecord) error

	// Latest returns the most recently appended record.
	//
	// Returns:
	//   - UploadRecord: the last record
	//   - error: ErrNotFound if nothing was appended yet
	Latest(ctx context.Context) (UploadRecord, error)

	// Len returns the number of records appended so far.
	Len(ctx context.Context) (int, error)
}

// SettingsRepo is a string key/value store for runtime settings.
// Implementations must be safe for concurrent use.
type SettingsRepo interface {
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// FileStorage defines the interface for physical file storage operations.
//
// All methods accept a context for cancellation. Implementations should
// respect cancellation during long copies and clean up partial writes.
type FileStorage interface {
	// Get opens a stored file for reading.
	//
	// Returns:
	//   - io.ReadSeekCloser: reader for file content with seek capability
	//   - error: ErrNotFound if file doesn't exist, or other storage errors
	//
	// The caller is responsible for closing the returned ReadSeekCloser.
	Get(ctx context.Context, name string) (io.ReadSeekCloser, error)

	// Write stores content under name, replacing any existing file.
	//
	// Implementations should:
	//   - Write atomically (e.g., write to temp file then rename)
	//   - Compute an ETag or hash during write
	//   - Report the location the file was stored at
	Write(ctx context.Context, name string, content io.Reader) (SaveResult, error)
}

// Repos groups the in-memory state a Service owns.
type Repos struct {
	History HistoryRepo
	// Names holds the pending update name.
	Names SettingsRepo
	// Tuning holds the client pacing intervals. It is kept apart from Names
	// so clearing the name leaves the intervals alone.
	Tuning SettingsRepo
}

// ServiceConfig holds configuration options for Service.
type ServiceConfig struct {
	// Intervals reported before a client sets its own (default: DefaultIntervals)
	Intervals Intervals
	// Now is the clock used to stamp records (default: time.Now)
	Now func() time.Time
}

// Service accepts uploads and serves the latest one back.
type Service struct {
	history   HistoryRepo
	names     SettingsRepo
	tuning    SettingsRepo
	storage   FileStorage
	intervals Intervals
	now       func() time.Time

	// uploadMu makes the file write and the history append one step.
	uploadMu sync.Mutex
}

// NewService creates a Service over the given repositories and file storage.
func NewService(repos Repos, storage FileStorage, cfg ServiceConfig) (*Service, error) {
	if repos.History == nil || repos.Names == nil || repos.Tuning == nil {
		return nil, errors.New("new service: history, names and tuning repos are required")
	}
	if storage == nil {
		return nil, errors.New("new service: storage is required")
	}

	intervals := cfg.Intervals
	if intervals.Upload <= 0 {
		intervals.Upload = DefaultIntervals.Upload
	}
	if intervals.Recognition <= 0 {
		intervals.Recognition = DefaultIntervals.Recognition
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		history:   repos.History,
		names:     repos.Names,
		tuning:    repos.Tuning,
		storage:   storage,
		intervals: intervals,
		now:       now,
	}, nil
}

// Upload stores the submitted file (if any) and appends a record for the
// submission to the history.
//
// The file is written atomically under its submitted name, so a second
// upload with the same name replaces the first file's content while both
// records keep pointing at it. The write and the append run under one lock:
// readers never observe a record before its file is complete, and the last
// record always names the last file written. A failed write appends nothing.
//
// Error types returned:
//   - ErrInvalidInput: the file name is not a single valid path segment
//   - context.Canceled or context.DeadlineExceeded: context was cancelled
//   - Wrapped storage or history errors
func (s *Service) Upload(ctx context.Context, sub Submission) (UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return UploadRecord{}, fmt.Errorf("upload: %w", err)
	}

	if sub.HasFile() && !IsValidFileName(sub.FileName) {
		return UploadRecord{}, fmt.Errorf("upload %q: %w: invalid file name", sub.FileName, ErrInvalidInput)
	}

	rec := UploadRecord{
		Age:            sub.Age,
		Gender:         sub.Gender,
		Mood:           sub.Mood,
		RecognizeState: sub.RecognizeState,
		RecognizedName: sub.RecognizedName,
	}

	s.uploadMu.Lock()
	defer s.uploadMu.Unlock()

	if sub.HasFile() {
		saved, err := s.storage.Write(ctx, sub.FileName, sub.File)
		if err != nil {
			return UploadRecord{}, fmt.Errorf("upload %s: write failed: %w", sub.FileName, err)
		}

		location := saved.Location
		rec.FileLocation = &location
		rec.FileName = sub.FileName
		rec.FileSizeBytes = saved.BytesWritten
		rec.Etag = saved.Etag
		rec.ContentType = saved.ContentType
	}

	rec.UploadedAt = s.now()

	// The file stays on disk if the append fails: earlier records may
	// reference the same name.
	if err := s.history.Append(ctx, rec); err != nil {
		return UploadRecord{}, fmt.Errorf("upload: append record: %w", err)
	}

	return rec, nil
}

// Latest returns the most recent record, or ErrNotFound if nothing was
// uploaded yet.
func (s *Service) Latest(ctx context.Context) (UploadRecord, error) {
	if err := ctx.Err(); err != nil {
		return UploadRecord{}, fmt.Errorf("latest: %w", err)
	}

	rec, err := s.history.Latest(ctx)
	if err != nil {
		return UploadRecord{}, fmt.Errorf("latest: %w", err)
	}

	return rec, nil
}

// LatestData returns the public fields of the most recent record. File is
// nil when that record was uploaded without a file.
func (s *Service) LatestData(ctx context.Context) (LatestData, error) {
	rec, err := s.Latest(ctx)
	if err != nil {
		return LatestData{}, err
	}

	data := LatestData{
		Age:            rec.Age,
		Gender:         rec.Gender,
		Mood:           rec.Mood,
		RecognizeState: rec.RecognizeState,
		RecognizedName: rec.RecognizedName,
	}
	if rec.HasFile() {
		location := *rec.FileLocation
		data.File = &location
	}

	return data, nil
}

// LatestFile opens the file stored with the most recent record.
//
// Returns ErrNotFound if nothing was uploaded yet and ErrNoFile if the
// latest record carries no file or its file is gone from storage.
// The caller must close the returned reader.
func (s *Service) LatestFile(ctx context.Context) (UploadRecord, io.ReadSeekCloser, error) {
	rec, err := s.Latest(ctx)
	if err != nil {
		return UploadRecord{}, nil, err
	}

	if !rec.HasFile() {
		return UploadRecord{}, nil, fmt.Errorf("latest file: %w", ErrNoFile)
	}

	f, err := s.storage.Get(ctx, rec.FileName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UploadRecord{}, nil, fmt.Errorf("latest file %s: %w", rec.FileName, ErrNoFile)
		}
		return UploadRecord{}, nil, fmt.Errorf("latest file %s: %w", rec.FileName, err)
	}

	return rec, f, nil
}

// Records returns how many uploads were accepted so far.
func (s *Service) Records(ctx context.Context) (int, error) {
	n, err := s.history.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("records: %w", err)
	}
	return n, nil
}

// SetUpdateName stores the pending name, replacing any previous one.
func (s *Service) SetUpdateName(ctx context.Context, name string) error {
	if err := s.names.Set(ctx, UpdateNameKey, name); err != nil {
		return fmt.Errorf("set update name: %w", err)
	}
	return nil
}

// UpdateName returns the pending name, or ErrNotFound when none is set.
func (s *Service) UpdateName(ctx context.Context) (string, error) {
	name, err := s.names.Get(ctx, UpdateNameKey)
	if err != nil {
		return "", fmt.Errorf("get update name: %w", err)
	}
	return name, nil
}

// ClearUpdateName empties the name settings entirely.
func (s *Service) ClearUpdateName(ctx context.Context) error {
	if err := s.names.Clear(ctx); err != nil {
		return fmt.Errorf("clear update name: %w", err)
	}
	return nil
}

// SetUploadInterval sets the upload pacing hint in seconds.
func (s *Service) SetUploadInterval(ctx context.Context, seconds int) error {
	return s.setInterval(ctx, uploadIntervalKey, seconds)
}

// SetRecognitionInterval sets the recognition pacing hint in seconds.
func (s *Service) SetRecognitionInterval(ctx context.Context, seconds int) error {
	return s.setInterval(ctx, recognitionIntervalKey, seconds)
}

func (s *Service) setInterval(ctx context.Context, key string, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("set %s: %w: interval must be positive", key, ErrInvalidInput)
	}

	if err := s.tuning.Set(ctx, key, strconv.Itoa(seconds)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Intervals returns the current pacing hints, falling back to the configured
// defaults for values never set.
func (s *Service) Intervals(ctx context.Context) (Intervals, error) {
	upload, err := s.interval(ctx, uploadIntervalKey, s.intervals.Upload)
	if err != nil {
		return Intervals{}, err
	}

	recognition, err := s.interval(ctx, recognitionIntervalKey, s.intervals.Recognition)
	if err != nil {
		return Intervals{}, err
	}

	return Intervals{Upload: upload, Recognition: recognition}, nil
}

func (s *Service) interval(ctx context.Context, key string, fallback int) (int, error) {
	raw, err := s.tuning.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w: %w", key, ErrInternal, err)
	}
	return seconds, nil
}
