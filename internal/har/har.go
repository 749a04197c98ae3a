package har

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// File is the top-level HAR structure.
type File struct {
	Log Log `json:"log"`
}

// Log holds the recorded entries of one capture.
type Log struct {
	Entries []Entry `json:"entries"`
}

// Entry is one request/response pair from the capture.
type Entry struct {
	// StartedDateTime is the request start timestamp as recorded by the
	// crawler, ISO 8601.
	StartedDateTime string `json:"startedDateTime"`

	// Request holds the outgoing request data.
	Request Request `json:"request"`

	// Response holds the response data.
	Response Response `json:"response"`

	// Cookies are the cookies the crawler attached to this entry.
	// The capture tooling records them at the entry level rather than
	// inside request/response.
	Cookies []Cookie `json:"cookies,omitempty"`
}

// Request is the request half of an entry.
type Request struct {
	URL      string    `json:"url"`
	Headers  []Header  `json:"headers,omitempty"`
	PostData *PostData `json:"postData,omitempty"`
}

// PostData is the optional request body.
type PostData struct {
	Text string `json:"text"`
}

// Response is the response half of an entry.
type Response struct {
	Headers []Header `json:"headers,omitempty"`
}

// Header is one name/value header pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cookie is one name/value cookie pair.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Load reads and parses the capture at the given path.
// Malformed JSON is fatal and propagates to the caller; there is no
// partial recovery because a truncated capture would read as "no leaks".
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Capture path comes from the scanned directory tree
	if err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse capture: %w", err)
	}

	return &f, nil
}

// HeaderValue returns the value of the first header whose name matches
// case-insensitively, or the empty string when the header is absent.
func HeaderValue(headers []Header, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Timestamp returns the entry's start timestamp, defaulting to the
// current UTC time when the capture did not record one.
func (e *Entry) Timestamp() string {
	if e.StartedDateTime != "" {
		return e.StartedDateTime
	}
	return time.Now().UTC().Format(time.RFC3339Nano)
}
