package pomodoro

import "github.com/doni-wahyudi/stillmove-planner-sub001/internal/models"

// TaskKind names the kind of entity a focus interval is linked to.
type TaskKind string

const (
	TaskNone      TaskKind = ""
	TaskCustom    TaskKind = "custom"
	TaskGoal      TaskKind = "goal"
	TaskTimeBlock TaskKind = "timeBlock"
	TaskCard      TaskKind = "card"
)

// TaskAssociation links the timer to at most one thing being worked on: free
// text, an annual goal, a time block or a kanban card. The zero value is no
// association.
type TaskAssociation struct {
	kind  TaskKind
	id    string
	label string
}

func NoTask() TaskAssociation {
	return TaskAssociation{}
}

// CustomTask links free text. Empty text yields no association.
func CustomTask(text string) TaskAssociation {
	if text == "" {
		return NoTask()
	}

	return TaskAssociation{kind: TaskCustom, label: text}
}

func GoalTask(id, label string) TaskAssociation {
	return linked(TaskGoal, id, label)
}

func TimeBlockTask(id, label string) TaskAssociation {
	return linked(TaskTimeBlock, id, label)
}

func CardTask(id, label string) TaskAssociation {
	return linked(TaskCard, id, label)
}

func linked(kind TaskKind, id, label string) TaskAssociation {
	if id == "" {
		return CustomTask(label)
	}

	return TaskAssociation{kind: kind, id: id, label: label}
}

func (t TaskAssociation) Kind() TaskKind {
	return t.kind
}

func (t TaskAssociation) ID() string {
	return t.id
}

// Label returns the text shown for the association, falling back to the
// linked id when no label is known.
func (t TaskAssociation) Label() string {
	if t.label == "" {
		return t.id
	}

	return t.label
}

func (t TaskAssociation) IsZero() bool {
	return t.kind == TaskNone
}

func (t TaskAssociation) String() string {
	if t.IsZero() {
		return ""
	}

	return string(t.kind) + ":" + t.Label()
}

// fields returns the session record columns for the association.
func (t TaskAssociation) fields() models.TaskFields {
	var f models.TaskFields

	if t.IsZero() {
		return f
	}

	desc := t.Label()
	f.Description = &desc

	id := t.id

	switch t.kind {
	case TaskGoal:
		f.GoalID = &id
	case TaskTimeBlock:
		f.TimeBlockID = &id
	case TaskNone, TaskCustom, TaskCard:
	}

	return f
}

func (t TaskAssociation) ref() *models.TaskRef {
	if t.IsZero() {
		return nil
	}

	return &models.TaskRef{
		Kind:  string(t.kind),
		ID:    t.id,
		Label: t.label,
	}
}

// TaskFromRef rebuilds an association from its serialised form. Unknown kinds
// yield no association.
func TaskFromRef(ref *models.TaskRef) TaskAssociation {
	if ref == nil {
		return NoTask()
	}

	switch TaskKind(ref.Kind) {
	case TaskCustom:
		return CustomTask(ref.Label)
	case TaskGoal:
		return GoalTask(ref.ID, ref.Label)
	case TaskTimeBlock:
		return TimeBlockTask(ref.ID, ref.Label)
	case TaskCard:
		return CardTask(ref.ID, ref.Label)
	case TaskNone:
	}

	return NoTask()
}
