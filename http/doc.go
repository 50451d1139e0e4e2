// Package http exposes the facerelay service over HTTP.
//
// The face-detection client posts one observation at a time to /upload;
// consumers read the newest one back from /data and /file. A single pending
// name can be set by an operator and picked up by the client.
//
// # Endpoints
//
//	POST /upload                    multipart: file (optional), age, gender, mood,
//	                                recognizestate, recognizedname
//	GET  /data                      latest record as JSON
//	GET  /file                      latest record's file
//	POST /update-name, /updatename  form field: name
//	GET  /getupdatename             {"updatename": name or "NotYet"}
//	POST /clearupdatename           clears the pending name
//	POST /set-interval              {"interval": seconds}
//	POST /set-recognition-interval  {"interval": seconds}
//	GET  /intervals                 current pacing hints
//	GET  /                          liveness and record count
//
// Every route also answers with a trailing slash.
//
// # Errors
//
// Errors are returned as JSON:
//
//	{"error": "not_found", "message": "No data available"}
//
// HandleError maps the root package's sentinel errors to status codes:
// ErrNotFound and ErrNoFile to 404, ErrInvalidInput to 400, missing or
// unreadable form fields to 422, oversized bodies to 413 and anything
// else to 500 with a generic message. Details of internal errors are only
// logged.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    CORS: http.CORSConfig{
//	        Enabled:        true,
//	        AllowedOrigins: []string{"http://localhost:3000"},
//	    },
//	    MaxUploadSize: 10 << 20,
//	}, service)
//	server := &stdhttp.Server{Addr: ":8000", Handler: handler.Router()}
package http
