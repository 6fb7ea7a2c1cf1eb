package model

import (
	"encoding/json"
	"time"
)

// Kind identifies one of the five searchable record kinds.
type Kind string

const (
	KindJournal  Kind = "journal"
	KindTasks    Kind = "tasks"
	KindCalendar Kind = "calendar"
	KindEmails   Kind = "emails"
	KindContacts Kind = "contacts"
)

// AllKinds lists every record kind in canonical order.
func AllKinds() []Kind {
	return []Kind{KindJournal, KindTasks, KindCalendar, KindEmails, KindContacts}
}

// Task priority literals. Scoring treats HIGH and URGENT as important.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// JournalEntry is a dated free-text entry with a mood label and tags.
type JournalEntry struct {
	EntryID     string    `json:"entryId"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Reflections *string   `json:"reflections,omitempty"`
	Mood        string    `json:"mood"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Task is a to-do item with priority, due date and completion state.
type Task struct {
	TaskID      string     `json:"taskId"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Important   bool       `json:"important"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CalendarEvent is a scheduled event bounded by start and end times.
type CalendarEvent struct {
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Important   bool      `json:"important"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// Email is a received or sent message. Exactly one of ReceivedAt/SentAt is
// expected depending on Folder, but both may be present for replies.
type Email struct {
	EmailID    string     `json:"emailId"`
	UserID     string     `json:"userId"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	From       string     `json:"from"`
	To         []string   `json:"to,omitempty"`
	Folder     string     `json:"folder"`
	Read       bool       `json:"read"`
	Important  bool       `json:"important"`
	ReceivedAt *time.Time `json:"receivedAt,omitempty"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
}

// Contact is an address-book entry.
type Contact struct {
	ContactID string    `json:"contactId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScoredResult wraps a record with its relevance score and excerpt.
// It lives only for the duration of one search request.
type ScoredResult struct {
	Record  interface{} `json:"-"`
	Kind    Kind        `json:"-"`
	Score   float64     `json:"-"`
	Excerpt string      `json:"-"`
}

// MarshalJSON flattens the wrapped record's fields into the result object
// alongside type, relevanceScore and excerpt.
func (r ScoredResult) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(r.Record)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"] = string(r.Kind)
	m["relevanceScore"] = r.Score
	m["excerpt"] = r.Excerpt
	return json.Marshal(m)
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string                  `json:"query"`
	Total   int                     `json:"total"`
	Results map[Kind][]ScoredResult `json:"results"`
	Summary map[Kind]int            `json:"summary"`
}

// MetricBucket is one point of a sparse time series. Date format depends on
// the requested granularity; buckets with zero events are never emitted.
type MetricBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TagCount pairs a tag with its occurrence count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TaskMetrics summarizes task activity over a date range.
// Overdue is always computed against the current clock, not the range.
type TaskMetrics struct {
	Total          int            `json:"total"`
	TotalCreated   int            `json:"totalCreated"`
	Overdue        int            `json:"overdue"`
	CompletionRate float64        `json:"completionRate"`
	TimeSeries     []MetricBucket `json:"timeSeries"`
}

// JournalMetrics summarizes journaling activity over a date range.
type JournalMetrics struct {
	Total       int            `json:"total"`
	AverageMood float64        `json:"averageMood"`
	TopTags     []TagCount     `json:"topTags"`
	TimeSeries  []MetricBucket `json:"timeSeries"`
}

// CalendarMetrics summarizes calendar activity over a date range.
type CalendarMetrics struct {
	Total           int            `json:"total"`
	TotalMinutes    float64        `json:"totalMinutes"`
	AverageDuration float64        `json:"averageDuration"`
	TimeSeries      []MetricBucket `json:"timeSeries"`
}

// EmailMetrics summarizes email activity over a date range.
type EmailMetrics struct {
	Received       int            `json:"received"`
	Sent           int            `json:"sent"`
	TotalProcessed int            `json:"totalProcessed"`
	UnreadCount    int            `json:"unreadCount"`
	ResponseRate   float64        `json:"responseRate"`
	TimeSeries     []MetricBucket `json:"timeSeries"`
}

// ContactMetrics summarizes contact growth over a date range.
type ContactMetrics struct {
	Total     int        `json:"total"`
	Companies int        `json:"companies"`
	TopTags   []TagCount `json:"topTags"`
}

// MetricsResponse is the body of GET /api/analytics/metrics. Category
// sections are present only when requested.
type MetricsResponse struct {
	Overview map[string]int   `json:"overview"`
	Tasks    *TaskMetrics     `json:"tasks,omitempty"`
	Journal  *JournalMetrics  `json:"journal,omitempty"`
	Calendar *CalendarMetrics `json:"calendar,omitempty"`
	Emails   *EmailMetrics    `json:"emails,omitempty"`
	Contacts *ContactMetrics  `json:"contacts,omitempty"`
	Insights []string         `json:"insights"`
}
