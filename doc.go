// Package facerelay relays face-detection observations from a browser client
// to whoever needs the most recent one.
//
// A client posts one observation at a time: an optional captured frame plus
// age, gender, mood, recognition state and recognized name. Service keeps the
// submissions in an append-only history, stores frames on disk, and serves
// the latest record and its file back. It also holds a single pending
// "update name" that an operator sets and the client consumes, and the
// pacing intervals the client polls with.
//
// # Key Components
//
//   - Service: upload, latest-record, latest-file, name and interval operations
//   - HistoryRepo / SettingsRepo: in-memory state (see the memory package)
//   - FileStorage: file operations (see the filesystem package)
//
// # Example Usage
//
//	svc, err := facerelay.NewService(facerelay.Repos{
//	    History: memory.NewHistory(),
//	    Names:   memory.NewSettings(),
//	    Tuning:  memory.NewSettings(),
//	}, storage, facerelay.ServiceConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec, err := svc.Upload(ctx, facerelay.Submission{Age: "31", FileName: "image.png", File: r})
//	data, err := svc.LatestData(ctx)
//
// State lives for the lifetime of the process only. See the http package for
// the REST API.
package facerelay
