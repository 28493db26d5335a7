// Package progress derives an application's completion percentage from its
// status and the documents the applicant has supplied.
//
// Progress is always the larger of the status percentage and the document
// percentage, where documents contribute at most 50 points.
package progress

import (
	"errors"
	"fmt"
	"time"
)

// Status is an application lifecycle state.
type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusDenied      Status = "denied"
)

// DefaultApplicationType is used when an application is submitted without a type.
const DefaultApplicationType = "mission_180"

// documentCeiling is the most progress document completion alone can reach.
const documentCeiling = 50

var (
	ErrInvalidStatus = errors.New("INVALID_STATUS")
	ErrInvalidInput  = errors.New("INVALID_INPUT")
)

var statusPercentages = map[Status]int{
	StatusSubmitted:   25,
	StatusUnderReview: 50,
	StatusApproved:    100,
	StatusDenied:      100,
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statusPercentages[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Percentage returns the progress implied by a status alone.
func (s Status) Percentage() int {
	return statusPercentages[s]
}

// IsTerminal reports whether no further transitions are expected.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// Tracker is the subset of an application the progress model reads and writes.
type Tracker struct {
	Status             Status
	Notes              string
	ProgressPercentage int
	RequiredDocuments  []string
	CompletedDocuments []string
	UpdatedAt          time.Time
}

// DocumentPercentage is floor(50 * completed / required), or 0 when nothing is required.
func DocumentPercentage(completed, required int) int {
	if required <= 0 {
		return 0
	}
	if completed > required {
		completed = required
	}
	return documentCeiling * completed / required
}

// Compute applies the progress invariant to a tracker's current state.
func Compute(t Tracker) int {
	pct := t.Status.Percentage()
	if docs := DocumentPercentage(len(t.CompletedDocuments), len(t.RequiredDocuments)); docs > pct {
		pct = docs
	}
	return pct
}

// UpdateStatus moves the tracker to a new status and recomputes progress.
func UpdateStatus(t Tracker, newStatus, notes string, now time.Time) (Tracker, error) {
	status, err := ParseStatus(newStatus)
	if err != nil {
		return t, err
	}

	t.Status = status
	t.Notes = notes
	t.UpdatedAt = now
	t.ProgressPercentage = Compute(t)
	return t, nil
}

// CompleteDocument marks a required document as completed. The returned bool
// is false when nothing changed: the document was already complete or the
// application requires no documents.
func CompleteDocument(t Tracker, documentName string, now time.Time) (Tracker, bool, error) {
	if documentName == "" {
		return t, false, fmt.Errorf("%w: document name is required", ErrInvalidInput)
	}
	if len(t.RequiredDocuments) == 0 {
		return t, false, nil
	}
	if !contains(t.RequiredDocuments, documentName) {
		return t, false, fmt.Errorf("%w: %q is not a required document", ErrInvalidInput, documentName)
	}
	if contains(t.CompletedDocuments, documentName) {
		return t, false, nil
	}

	completed := make([]string, 0, len(t.CompletedDocuments)+1)
	completed = append(completed, t.CompletedDocuments...)
	t.CompletedDocuments = append(completed, documentName)
	t.UpdatedAt = now
	t.ProgressPercentage = Compute(t)
	return t, true, nil
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
