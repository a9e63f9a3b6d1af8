package models

// Status is the lifecycle state of an issue.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// Statuses lists known statuses in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

// Known reports whether s is one of the declared statuses.
func (s Status) Known() bool { return known(Statuses, s) }

// Priority ranks an issue.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists known priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Known reports whether p is one of the declared priorities.
func (p Priority) Known() bool { return known(Priorities, p) }

// FileType is the format of a document.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeWord  FileType = "word"
	FileTypeExcel FileType = "excel"
	FileTypePPT   FileType = "ppt"
)

// FileTypes lists known file types in display order.
var FileTypes = []FileType{FileTypePDF, FileTypeWord, FileTypeExcel, FileTypePPT}

// Known reports whether f is one of the declared file types.
func (f FileType) Known() bool { return known(FileTypes, f) }

// EventType classifies an event.
type EventType string

const (
	EventRelease   EventType = "release"
	EventMilestone EventType = "milestone"
	EventMeeting   EventType = "meeting"
	EventOther     EventType = "other"
)

// EventTypes lists known event types in display order.
var EventTypes = []EventType{EventRelease, EventMilestone, EventMeeting, EventOther}

// Known reports whether t is one of the declared event types.
func (t EventType) Known() bool { return known(EventTypes, t) }

// Importance grades an event.
type Importance string

const (
	ImportanceNormal    Importance = "normal"
	ImportanceImportant Importance = "important"
	ImportanceCritical  Importance = "critical"
)

// Importances lists known importance levels in display order.
var Importances = []Importance{ImportanceNormal, ImportanceImportant, ImportanceCritical}

// Known reports whether i is one of the declared importance levels.
func (i Importance) Known() bool { return known(Importances, i) }

func known[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Strings converts a typed enum slice to plain strings.
func Strings[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
