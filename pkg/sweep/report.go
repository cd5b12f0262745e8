package sweep

import (
	"fmt"
	"sync"
	"time"
)

// Severity tags a report line for client-side color coding.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityFailure Severity = "failure"
	SeverityError   Severity = "error"
)

// Entry is one timestamped line of a run report.
type Entry struct {
	Time     time.Time `json:"time"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// Reporter accumulates the log stream for a whole run. Safe for
// concurrent use; entries keep append order.
type Reporter struct {
	mu      sync.Mutex
	entries []Entry
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) log(severity Severity, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Time:     time.Now(),
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Reporter) Successf(format string, args ...any) { r.log(SeveritySuccess, format, args...) }
func (r *Reporter) Infof(format string, args ...any)    { r.log(SeverityInfo, format, args...) }
func (r *Reporter) Failuref(format string, args ...any) { r.log(SeverityFailure, format, args...) }
func (r *Reporter) Errorf(format string, args ...any)   { r.log(SeverityError, format, args...) }

// Entries returns a copy of the accumulated report lines.
func (r *Reporter) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
