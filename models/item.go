package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemKind discriminates the three record variants. It is immutable
// after creation and selects the schema, the status enumeration and
// the collection a record belongs to.
type ItemKind string

const (
	KindFeature ItemKind = "feature"
	KindBug     ItemKind = "bug"
	KindTask    ItemKind = "task"
)

// Kinds lists all known item kinds in display order.
func Kinds() []ItemKind {
	return []ItemKind{KindFeature, KindBug, KindTask}
}

// ParseKind converts a user-supplied string into an ItemKind.
func ParseKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case KindFeature, KindBug, KindTask:
		return ItemKind(s), nil
	}
	return "", fmt.Errorf("unknown item kind %q (expected feature, bug or task)", s)
}

// Priority represents the priority levels shared by all item kinds.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Severity grades the impact of a bug.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// FeatureStatus represents the possible statuses of a feature.
type FeatureStatus string

const (
	FeatureBacklog    FeatureStatus = "backlog"
	FeaturePlanning   FeatureStatus = "planning"
	FeatureInProgress FeatureStatus = "in-progress"
	FeatureTesting    FeatureStatus = "testing"
	FeatureCompleted  FeatureStatus = "completed"
)

// BugStatus represents the possible statuses of a bug.
type BugStatus string

const (
	BugOpen       BugStatus = "open"
	BugInProgress BugStatus = "in-progress"
	BugResolved   BugStatus = "resolved"
	BugClosed     BugStatus = "closed"
	BugWontFix    BugStatus = "wont-fix"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskBlocked    TaskStatus = "blocked"
	TaskCompleted  TaskStatus = "completed"
)

// BaseItem carries the fields shared by all item kinds. ID, Type and
// CreatedAt are set once by the store and never change afterwards.
type BaseItem struct {
	ID          string    `json:"id"`
	Type        ItemKind  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Feature is a unit of planned product work.
type Feature struct {
	BaseItem
	Status             FeatureStatus `json:"status"`
	Epic               string        `json:"epic,omitempty"`
	StoryPoints        *float64      `json:"storyPoints,omitempty"`
	AcceptanceCriteria []string      `json:"acceptanceCriteria"`
}

// Bug is a defect report.
type Bug struct {
	BaseItem
	Status           BugStatus `json:"status"`
	Severity         Severity  `json:"severity"`
	Reproducible     bool      `json:"reproducible"`
	StepsToReproduce []string  `json:"stepsToReproduce"`
	Environment      string    `json:"environment"`
	Resolution       string    `json:"resolution,omitempty"`
}

// Task is a unit of execution work.
type Task struct {
	BaseItem
	Status         TaskStatus `json:"status"`
	DueDate        string     `json:"dueDate,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	Subtasks       []string   `json:"subtasks"`
}

// Item is the polymorphic view over Feature, Bug and Task used by the
// store's kind-agnostic operations.
type Item interface {
	Kind() ItemKind
	ItemID() string
	ItemTitle() string
	StatusString() string
	Base() BaseItem
}

func (f Feature) Kind() ItemKind       { return KindFeature }
func (f Feature) ItemID() string       { return f.ID }
func (f Feature) ItemTitle() string    { return f.Title }
func (f Feature) StatusString() string { return string(f.Status) }
func (f Feature) Base() BaseItem       { return f.BaseItem }

func (b Bug) Kind() ItemKind       { return KindBug }
func (b Bug) ItemID() string       { return b.ID }
func (b Bug) ItemTitle() string    { return b.Title }
func (b Bug) StatusString() string { return string(b.Status) }
func (b Bug) Base() BaseItem       { return b.BaseItem }

func (t Task) Kind() ItemKind       { return KindTask }
func (t Task) ItemID() string       { return t.ID }
func (t Task) ItemTitle() string    { return t.Title }
func (t Task) StatusString() string { return string(t.Status) }
func (t Task) Base() BaseItem       { return t.BaseItem }

// DecodeItem converts a generic field map into the concrete item type
// for the given kind via a JSON round trip, so that field names and
// value coercion match the wire format exactly.
func DecodeItem(kind ItemKind, fields map[string]any) (Item, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode %s fields: %w", kind, err)
	}
	switch kind {
	case KindFeature:
		var f Feature
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		return f, nil
	case KindBug:
		var b Bug
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("decode bug: %w", err)
		}
		return b, nil
	case KindTask:
		var t Task
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown item kind %q", kind)
}

// EncodeMap flattens any JSON-marshalable value into a field map.
func EncodeMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode value into map: %w", err)
	}
	return m, nil
}
