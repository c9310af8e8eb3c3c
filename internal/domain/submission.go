package domain

import (
	"time"

	"github.com/google/uuid"
)

const SubmissionKeyPrefix = "code-assessments/"

// Submission is the final answer of a candidate, as stored in the object store
type Submission struct {
	ID         string `json:"id,omitempty"`
	Key        string `json:"key,omitempty"`
	Code       string `json:"code"`
	Language   string `json:"language"`
	Output     string `json:"output"`
	AccessCode string `json:"accessCode"`
	Timestamp  string `json:"timestamp"`
	IP         string `json:"ip"`
	UserAgent  string `json:"userAgent"`
}

// SubmissionRequest carries what the handler knows about a final answer
type SubmissionRequest struct {
	Code       string
	Language   string
	Output     string
	AccessCode string
	IP         string
	UserAgent  string
}

// SubmissionReceipt is returned once a submission has been stored
type SubmissionReceipt struct {
	SubmissionID uuid.UUID `json:"submissionId"`
	Key          string    `json:"key"`
	Timestamp    string    `json:"timestamp"`
}

// SubmissionIndex is the row kept in postgres to find a submission object by ID
type SubmissionIndex struct {
	ID          uuid.UUID `db:"id"`
	ObjectKey   string    `db:"object_key"`
	Language    string    `db:"language"`
	AccessCode  string    `db:"access_code"`
	ClientIP    string    `db:"client_ip"`
	SubmittedAt time.Time `db:"submitted_at"`
}

type SubmissionIndexTable struct {
	ID          string
	ObjectKey   string
	Language    string
	AccessCode  string
	ClientIP    string
	SubmittedAt string
}

func GetSubmissionIndexTable() SubmissionIndexTable {
	return SubmissionIndexTable{
		ID:          "id",
		ObjectKey:   "object_key",
		Language:    "language",
		AccessCode:  "access_code",
		ClientIP:    "client_ip",
		SubmittedAt: "submitted_at",
	}
}

func (SubmissionIndexTable) TableName() string {
	return "submissions"
}

// StoredObject is a single object to put into the object store
type StoredObject struct {
	Key         string
	Body        string
	ContentType string
	Metadata    map[string]string
}

// ObjectLocation describes where an object has been stored
type ObjectLocation struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Notification is a recruiter announcement for a new submission
type Notification struct {
	SubmissionID uuid.UUID
	Subject      string
	Message      string
}
