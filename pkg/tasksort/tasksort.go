// Package tasksort orders task lists by up to three ranked criteria. Criteria
// are parsed from the query-string form "field:direction,field:direction",
// e.g. "priority:desc,due_date:asc". Sorting is stable, so ties on every
// criterion preserve the incoming order.
package tasksort

import (
	"fmt"
	"sort"
	"strings"

	"tasklane/pkg/models"
)

// MaxCriteria caps how many criteria a single sort may combine.
const MaxCriteria = 3

// Field names a sortable task attribute.
type Field string

const (
	FieldPriority  Field = "priority"
	FieldUrgency   Field = "urgency"
	FieldStatus    Field = "status"
	FieldDueDate   Field = "due_date"
	FieldCreatedAt Field = "created_at"
	FieldTitle     Field = "title"
	FieldEstimate  Field = "estimate"
)

// Direction is the sort direction for one criterion.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Criterion pairs a field with a direction.
type Criterion struct {
	Field     Field
	Direction Direction
}

// Parse turns "priority:desc,due_date" into criteria. Direction defaults to
// ascending. Unknown fields, bad directions and more than MaxCriteria entries
// are errors.
func Parse(s string) ([]Criterion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) > MaxCriteria {
		return nil, fmt.Errorf("at most %d sort criteria allowed, got %d", MaxCriteria, len(parts))
	}

	criteria := make([]Criterion, 0, len(parts))
	for _, part := range parts {
		field, dir, _ := strings.Cut(strings.TrimSpace(part), ":")

		// API clients commonly send camelCase field names.
		switch field {
		case "dueDate":
			field = string(FieldDueDate)
		case "createdAt":
			field = string(FieldCreatedAt)
		}

		c := Criterion{Field: Field(field), Direction: Asc}
		switch c.Field {
		case FieldPriority, FieldUrgency, FieldStatus, FieldDueDate, FieldCreatedAt, FieldTitle, FieldEstimate:
		default:
			return nil, fmt.Errorf("unknown sort field %q", field)
		}

		switch dir {
		case "", "asc":
		case "desc":
			c.Direction = Desc
		default:
			return nil, fmt.Errorf("invalid sort direction %q", dir)
		}

		criteria = append(criteria, c)
	}
	return criteria, nil
}

// Sort orders tasks in place by the given criteria. With no criteria the
// slice is left untouched.
func Sort(tasks []*models.Task, criteria []Criterion) {
	if len(criteria) == 0 {
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		for _, c := range criteria {
			cmp := compare(tasks[i], tasks[j], c.Field)
			if cmp == 0 {
				continue
			}
			if c.Direction == Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compare returns -1, 0 or 1 ordering a before b ascending on field. Tasks
// without a due date sort after those with one regardless of direction of the
// numeric comparison.
func compare(a, b *models.Task, field Field) int {
	switch field {
	case FieldPriority:
		return intCompare(a.Priority.Rank(), b.Priority.Rank())
	case FieldUrgency:
		return intCompare(a.Urgency.Rank(), b.Urgency.Rank())
	case FieldStatus:
		return intCompare(a.Status.Rank(), b.Status.Rank())
	case FieldDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return 1
		case b.DueDate == nil:
			return -1
		case a.DueDate.Before(*b.DueDate):
			return -1
		case b.DueDate.Before(*a.DueDate):
			return 1
		}
		return 0
	case FieldCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case b.CreatedAt.Before(a.CreatedAt):
			return 1
		}
		return 0
	case FieldTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case FieldEstimate:
		switch {
		case a.EstimateHours < b.EstimateHours:
			return -1
		case a.EstimateHours > b.EstimateHours:
			return 1
		}
		return 0
	}
	return 0
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
