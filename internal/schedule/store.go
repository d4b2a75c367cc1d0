package schedule

import (
	"bufio"
	"io"

	"github.com/somnisoft/crond/internal/sizearith"
)

// Store is an append-only, ordered sequence of parsed jobs. Ordering is
// insertion order (= file order); the matcher does not depend on it, but
// job launches within one minute occur in store order.
//
// Store is a single-owner resource: the main loop is the only component
// that mutates it.
type Store struct {
	jobs []Job
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of jobs currently held.
func (s *Store) Len() int {
	return len(s.jobs)
}

// Jobs returns the jobs in store (= file) order. The returned slice must
// not be mutated by the caller.
func (s *Store) Jobs() []Job {
	return s.jobs
}

// Append adds job to the end of the store, after validating the
// resulting size with overflow-checked arithmetic (spec §4.3, §4.1). On
// overflow the store is left unchanged.
func (s *Store) Append(job Job) bool {
	if _, wrapped := sizearith.Add(uint64(len(s.jobs)), 1); wrapped {
		return false
	}
	s.jobs = append(s.jobs, job)
	return true
}

// Reset clears the store, releasing every job's buffers.
func (s *Store) Reset() {
	s.jobs = nil
}

// ParseResult carries the outcome of parsing one line of a schedule
// file, for callers (like the validate CLI) that want per-line
// diagnostics rather than just a populated Store.
type ParseResult struct {
	LineNumber int
	Accepted   bool
	Err        error
}

// LoadReader parses every line from r (newline-delimited) and appends
// each accepted job to the store, which is reset first. It returns one
// ParseResult per line that produced a job or was rejected, so
// validate-style tooling can report rejects by line number; blank and
// comment lines produce no ParseResult.
//
// Per spec §4.4, any I/O error mid-reparse leaves the store freed
// (empty) rather than partially populated.
func LoadReader(r io.Reader, store *Store) ([]ParseResult, error) {
	store.Reset()
	var results []ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		job, err := ParseLine(line)
		switch {
		case err != nil:
			results = append(results, ParseResult{LineNumber: lineNumber, Accepted: false, Err: err})
		case job != nil:
			store.Append(*job)
			results = append(results, ParseResult{LineNumber: lineNumber, Accepted: true})
		}
	}
	if err := scanner.Err(); err != nil {
		store.Reset()
		return nil, err
	}
	return results, nil
}
