package facerelay_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sagarc03/facerelay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRecord_HasFile(t *testing.T) {
	empty := ""
	location := "uploads/image.png"

	tests := []struct {
		name string
		rec  facerelay.UploadRecord
		want bool
	}{
		{name: "nil location", rec: facerelay.UploadRecord{}, want: false},
		{name: "empty location", rec: facerelay.UploadRecord{FileLocation: &empty}, want: false},
		{name: "stored file", rec: facerelay.UploadRecord{FileLocation: &location}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.HasFile())
		})
	}
}

func TestSubmission_HasFile(t *testing.T) {
	assert.False(t, facerelay.Submission{FileName: "image.png"}.HasFile())
	assert.True(t, facerelay.Submission{File: strings.NewReader("")}.HasFile())
}

func TestUploadRecord_JSONShape(t *testing.T) {
	rec := facerelay.UploadRecord{
		Age:            "25",
		Gender:         "male",
		Mood:           "neutral",
		RecognizeState: "true",
		RecognizedName: "Bob",
		FileName:       "image.png",
		Etag:           "abc",
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Len(t, got, 6, "internal fields stay out of the payload")
	assert.Contains(t, got, "file_location")
	assert.Nil(t, got["file_location"])
	assert.Equal(t, "Bob", got["recognizedname"])
}

func TestLatestData_NullFile(t *testing.T) {
	data, err := json.Marshal(facerelay.LatestData{Age: "25"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file":null`)
}
