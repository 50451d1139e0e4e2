package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats results for output.
type Formatter interface {
	FormatUpload(w io.Writer, rec *Record) error
	FormatData(w io.Writer, data *LatestData) error
	FormatDownload(w io.Writer, result *DownloadResult) error
	FormatUpdateName(w io.Writer, name *UpdateName) error
	FormatIntervals(w io.Writer, intervals *Intervals) error
	FormatMessage(w io.Writer, message string) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatUpload(w io.Writer, rec *Record) error {
	if f.Quiet {
		return nil
	}
	if rec.FileLocation != nil {
		_, _ = fmt.Fprintf(w, "Uploaded: %s\n", *rec.FileLocation)
	} else {
		_, _ = fmt.Fprintln(w, "Uploaded: (no file)")
	}
	writeObservation(w, rec.Age, rec.Gender, rec.Mood, rec.RecognizeState, rec.RecognizedName)
	return nil
}

// FormatData prints the latest record. In quiet mode only the recognized
// name is printed.
func (f *HumanFormatter) FormatData(w io.Writer, data *LatestData) error {
	if f.Quiet {
		_, _ = fmt.Fprintln(w, data.RecognizedName)
		return nil
	}
	writeObservation(w, data.Age, data.Gender, data.Mood, data.RecognizeState, data.RecognizedName)
	file := "(none)"
	if data.File != nil {
		file = *data.File
	}
	_, _ = fmt.Fprintf(w, "  File:       %s\n", file)
	return nil
}

func writeObservation(w io.Writer, age, gender, mood, state, name string) {
	_, _ = fmt.Fprintf(w, "  Age:        %s\n", orDash(age))
	_, _ = fmt.Fprintf(w, "  Gender:     %s\n", orDash(gender))
	_, _ = fmt.Fprintf(w, "  Mood:       %s\n", orDash(mood))
	_, _ = fmt.Fprintf(w, "  Recognized: %s (%s)\n", orDash(name), orDash(state))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (f *HumanFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	if f.Quiet {
		return nil
	}
	if result.LocalPath == "-" {
		_, _ = fmt.Fprintf(w, "Downloaded: %s (%s)\n", result.FileName, formatSize(result.Size))
	} else {
		_, _ = fmt.Fprintf(w, "Downloaded: %s -> %s (%s)\n", result.FileName, result.LocalPath, formatSize(result.Size))
	}
	if result.ETag != "" {
		_, _ = fmt.Fprintf(w, "  ETag: %s\n", result.ETag)
	}
	return nil
}

// FormatUpdateName prints the pending name, or a placeholder when none is
// set. Quiet mode prints the bare name and nothing when unset.
func (f *HumanFormatter) FormatUpdateName(w io.Writer, name *UpdateName) error {
	switch {
	case f.Quiet && name.Set:
		_, _ = fmt.Fprintln(w, name.Name)
	case f.Quiet:
	case name.Set:
		_, _ = fmt.Fprintf(w, "Pending name: %s\n", name.Name)
	default:
		_, _ = fmt.Fprintln(w, "No pending name")
	}
	return nil
}

func (f *HumanFormatter) FormatIntervals(w io.Writer, intervals *Intervals) error {
	if f.Quiet {
		_, _ = fmt.Fprintf(w, "%d %d\n", intervals.Upload, intervals.Recognition)
		return nil
	}
	_, _ = fmt.Fprintf(w, "Upload interval:      %ds\n", intervals.Upload)
	_, _ = fmt.Fprintf(w, "Recognition interval: %ds\n", intervals.Recognition)
	return nil
}

func (f *HumanFormatter) FormatMessage(w io.Writer, message string) error {
	if !f.Quiet {
		_, _ = fmt.Fprintln(w, message)
	}
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	maxNameLen := 4 // "NAME"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
	}
	if maxNameLen > 20 {
		maxNameLen = 20
	}

	_, _ = fmt.Fprintf(w, "  %-*s  %s\n", maxNameLen, "NAME", "ENDPOINT")
	_, _ = fmt.Fprintf(w, "  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", 8))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		name := p.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %s\n", marker, maxNameLen, name, p.Endpoint)
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint: %s\n", profile.Endpoint)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatUpload(w io.Writer, rec *Record) error {
	return writeJSON(w, rec)
}

func (f *JSONFormatter) FormatData(w io.Writer, data *LatestData) error {
	return writeJSON(w, data)
}

func (f *JSONFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatUpdateName(w io.Writer, name *UpdateName) error {
	return writeJSON(w, name)
}

func (f *JSONFormatter) FormatIntervals(w io.Writer, intervals *Intervals) error {
	return writeJSON(w, intervals)
}

func (f *JSONFormatter) FormatMessage(w io.Writer, message string) error {
	return writeJSON(w, struct {
		Message string `json:"message"`
	}{Message: message})
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	type jsonProfile struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Default  bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		output.Profiles[i] = jsonProfile{
			Name:     profiles[i].Name,
			Endpoint: profiles[i].Endpoint,
			Default:  profiles[i].Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	output := struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		Default  bool   `json:"default"`
	}{
		Name:     profile.Name,
		Endpoint: profile.Endpoint,
		Default:  isDefault,
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes < 0:
		return "unknown size"
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
