package models

// Status is the workflow state of a task. Any status may be set from any
// other one; there is no enforced transition order.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Rank returns the fixed ordering position of a status, used for sorting.
func (s Status) Rank() int {
	switch s {
	case StatusNotStarted:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	}
	return 3
}

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusDone
}

// Tracks is the fixed list of training tracks an intern can belong to.
var Tracks = []string{
	"Développement Web",
	"Développement Mobile",
	"Data Science",
	"Cybersécurité",
	"Design UX/UI",
	"Marketing Digital",
	"Autre",
}

// TagOwner says which record kind a tag applies to.
type TagOwner string

const (
	TagOwnerIntern TagOwner = "intern"
	TagOwnerTask   TagOwner = "task"
)

// Intern is a tracked trainee record.
type Intern struct {
	ID            string   `json:"id"`
	LastName      string   `json:"lastName"`
	FirstName     string   `json:"firstName"`
	Track         string   `json:"track"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone,omitempty"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	GuardianName  string   `json:"guardianName"`
	GuardianPhone string   `json:"guardianPhone"`
	TagIDs        []string `json:"tagIds,omitempty"`
}

// FullName returns "First Last" for display.
func (i Intern) FullName() string {
	return i.FirstName + " " + i.LastName
}

func (i Intern) TagList() []string { return i.TagIDs }

// Task is a work item assigned to one or more interns. IsGroup is derived:
// it must always equal len(AssigneeIDs) > 1, recomputed on every write that
// touches the assignee list.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssigneeIDs []string `json:"assigneeIds"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
	DueDate     string   `json:"dueDate"`
	IsGroup     bool     `json:"isGroup"`
	TagIDs      []string `json:"tagIds,omitempty"`
}

func (t Task) TagList() []string { return t.TagIDs }

// Tag is a user-defined colored label attachable to interns or tasks.
type Tag struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color"`
	Owner TagOwner `json:"ownerType"`
}

// InternDraft is a partially filled intern awaiting completion.
type InternDraft struct {
	ID            string `json:"id"`
	LastName      string `json:"lastName,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	Track         string `json:"track,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	CreatedAt     string `json:"createdAt"`
	ModifiedAt    string `json:"modifiedAt"`
}

// TaskDraft is a partially filled task awaiting completion.
type TaskDraft struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	AssigneeIDs []string `json:"assigneeIds,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	ModifiedAt  string   `json:"modifiedAt"`
}

// Preferences is the persisted user preferences document.
type Preferences struct {
	Theme         string `json:"theme"`
	ShowCalendar  bool   `json:"showCalendar"`
	ShowAnalytics bool   `json:"showAnalytics"`
	DefaultView   string `json:"defaultView"`
}
