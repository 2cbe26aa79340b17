package entity

import "strings"

// LogOrigin tells whether a log was written by a person or by a process
type LogOrigin string

const (
	LogOriginHuman   LogOrigin = "human"
	LogOriginProcess LogOrigin = "process"
)

// LogSubtype constants
type LogSubtype string

const (
	LogSubtypeRun          LogSubtype = "run"
	LogSubtypeSubsystem    LogSubtype = "subsystem"
	LogSubtypeAnnouncement LogSubtype = "announcement"
	LogSubtypeIntervention LogSubtype = "intervention"
	LogSubtypeComment      LogSubtype = "comment"
)

func (s LogSubtype) valid() bool {
	switch s {
	case LogSubtypeRun, LogSubtypeSubsystem, LogSubtypeAnnouncement, LogSubtypeIntervention, LogSubtypeComment:
		return true
	}
	return false
}

// Log describes an intervention or an event that happened
type Log struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Text         string        `json:"text"`
	Author       *User         `json:"author,omitempty"`
	CreatedAt    int64         `json:"createdAt,omitempty"` // epoch milliseconds
	UpdatedAt    int64         `json:"updatedAt,omitempty"`
	Origin       LogOrigin     `json:"origin,omitempty"`
	Subtype      LogSubtype    `json:"subtype,omitempty"`
	RootLogID    *int64        `json:"rootLogId,omitempty"`
	ParentLogID  *int64        `json:"parentLogId,omitempty"`
	Replies      int           `json:"replies,omitempty"`
	Attachments  []Attachment  `json:"attachments,omitempty"`
	Tags         []Tag         `json:"tags,omitempty"`
	Runs         []LogRun      `json:"runs,omitempty"`
	Environments []Environment `json:"environments,omitempty"`
	LhcFills     []LhcFill     `json:"lhcFills,omitempty"`
}

// Validate checks the enumerations the Bookkeeping schema declares for a log
func (l *Log) Validate() error {
	verr := &ValidationError{}
	if l.Origin != "" && l.Origin != LogOriginHuman && l.Origin != LogOriginProcess {
		verr.add("origin", "must be one of: human, process")
	}
	if l.Subtype != "" && !l.Subtype.valid() {
		verr.add("subtype", "must be one of: run, subsystem, announcement, intervention, comment")
	}
	if strings.TrimSpace(l.Title) == "" {
		verr.add("title", "is required")
	}
	return verr.errOrNil()
}

type User struct {
	ID         int64  `json:"id"`
	ExternalID int64  `json:"externalId,omitempty"`
	Name       string `json:"name"`
}

type Tag struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Email      string `json:"email,omitempty"`
	Mattermost string `json:"mattermost,omitempty"`
	Archived   bool   `json:"archived,omitempty"`
	CreatedAt  int64  `json:"createdAt,omitempty"`
	UpdatedAt  int64  `json:"updatedAt,omitempty"`
}

// Attachment is a file stored alongside a log
type Attachment struct {
	ID           int64  `json:"id"`
	FileName     string `json:"fileName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
	OriginalName string `json:"originalName,omitempty"`
	Path         string `json:"path,omitempty"`
	Encoding     string `json:"encoding,omitempty"`
	CreationTime int64  `json:"creationTime,omitempty"`
	LogID        int64  `json:"logId,omitempty"`
}

type LogRun struct {
	ID        int64 `json:"id"`
	RunNumber int64 `json:"runNumber"`
}

type Environment struct {
	ID string `json:"id"`
}

type LhcFill struct {
	FillNumber int64 `json:"fillNumber"`
}
