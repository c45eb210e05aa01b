package store

import (
	"context"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ResponseData is one scored answer to persist.
type ResponseData struct {
	Category string
	Variable string
	Average  float64
	Level    int
	Note     string
}

// SubmissionData is a completed questionnaire ready to be appended.
type SubmissionData struct {
	SubmissionID    string
	Timestamp       time.Time
	RespondentName  string
	RespondentEmail string
	Company         string
	BankTitle       string
	OverallLevel    float64
	Responses       []ResponseData
}

// SubmissionRecord is a stored submission header.
type SubmissionRecord struct {
	ID              int
	Sequence        int64
	Timestamp       time.Time
	SubmissionID    string
	RespondentName  string
	RespondentEmail string
	Company         string
	BankTitle       string
	QuestionCount   int
	OverallLevel    float64
	ReportPath      string
}

// ResponseRecord is a stored answer row.
type ResponseRecord struct {
	ID              int
	Sequence        int64
	Timestamp       time.Time
	SubmissionID    string
	RespondentName  string
	RespondentEmail string
	Company         string
	Category        string
	Variable        string
	Average         float64
	Level           int
	Note            string
}

// ResponseFilter narrows QueryResponses. Empty fields match everything.
type ResponseFilter struct {
	SubmissionID string
	Company      string
	Category     string
	QueryOpts
}

// ResponseRepo appends and reads questionnaire submissions. Rows are never
// updated except for the report path recorded after rendering.
type ResponseRepo interface {
	// AppendSubmission writes the header and every response in one
	// transaction. Either all rows are stored or none are.
	AppendSubmission(ctx context.Context, data SubmissionData) error

	// SetReportPath records where the PDF for a submission was written.
	SetReportPath(ctx context.Context, submissionID, path string) error

	// QuerySubmissions returns submission headers, newest first.
	QuerySubmissions(ctx context.Context, opts QueryOpts) ([]SubmissionRecord, error)

	// GetSubmission returns the header for submissionID, or nil if missing.
	GetSubmission(ctx context.Context, submissionID string) (*SubmissionRecord, error)

	// QueryResponses returns answers in insertion order.
	QueryResponses(ctx context.Context, filter ResponseFilter) ([]ResponseRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose or model.
type LLMUsageStats struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the LLM audit log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if missing.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStats, error)
}
