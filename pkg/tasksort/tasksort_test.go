package tasksort

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/pkg/models"
)

func task(title string, p models.Priority, u models.Urgency, s models.TaskStatus) *models.Task {
	return &models.Task{
		ID:       models.NewTaskID(),
		Title:    title,
		Priority: p,
		Urgency:  u,
		Status:   s,
	}
}

func titles(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestParse(t *testing.T) {
	criteria, err := Parse("priority:desc,due_date:asc,title")
	require.NoError(t, err)
	require.Len(t, criteria, 3)
	assert.Equal(t, Criterion{FieldPriority, Desc}, criteria[0])
	assert.Equal(t, Criterion{FieldDueDate, Asc}, criteria[1])
	assert.Equal(t, Criterion{FieldTitle, Asc}, criteria[2])

	criteria, err = Parse("")
	require.NoError(t, err)
	assert.Empty(t, criteria)

	_, err = Parse("priority:desc,urgency,status,title")
	assert.Error(t, err, "more than three criteria")

	_, err = Parse("karma:desc")
	assert.Error(t, err)

	_, err = Parse("priority:sideways")
	assert.Error(t, err)
}

func TestSortSingleCriterion(t *testing.T) {
	tasks := []*models.Task{
		task("a", models.PriorityLow, models.UrgencyNormal, models.TaskStatusTodo),
		task("b", models.PriorityCritical, models.UrgencyNormal, models.TaskStatusTodo),
		task("c", models.PriorityMedium, models.UrgencyNormal, models.TaskStatusTodo),
	}

	Sort(tasks, []Criterion{{FieldPriority, Desc}})
	assert.Equal(t, []string{"b", "c", "a"}, titles(tasks))

	Sort(tasks, []Criterion{{FieldPriority, Asc}})
	assert.Equal(t, []string{"a", "c", "b"}, titles(tasks))
}

func TestSortIsStableOnTies(t *testing.T) {
	tasks := []*models.Task{
		task("first", models.PriorityHigh, models.UrgencyNormal, models.TaskStatusTodo),
		task("second", models.PriorityHigh, models.UrgencyNormal, models.TaskStatusTodo),
		task("third", models.PriorityHigh, models.UrgencyNormal, models.TaskStatusTodo),
	}

	Sort(tasks, []Criterion{{FieldPriority, Desc}})
	assert.Equal(t, []string{"first", "second", "third"}, titles(tasks))
}

func TestSortMultiCriteria(t *testing.T) {
	tasks := []*models.Task{
		task("a", models.PriorityHigh, models.UrgencyLow, models.TaskStatusTodo),
		task("b", models.PriorityLow, models.UrgencyHigh, models.TaskStatusTodo),
		task("c", models.PriorityHigh, models.UrgencyHigh, models.TaskStatusTodo),
		task("d", models.PriorityHigh, models.UrgencyHigh, models.TaskStatusDone),
	}

	// priority desc, then urgency desc, then status asc
	Sort(tasks, []Criterion{
		{FieldPriority, Desc},
		{FieldUrgency, Desc},
		{FieldStatus, Asc},
	})
	assert.Equal(t, []string{"c", "d", "a", "b"}, titles(tasks))
}

func TestSortDueDateNilsLast(t *testing.T) {
	soon := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	a := task("no-date", models.PriorityMedium, models.UrgencyNormal, models.TaskStatusTodo)
	b := task("later", models.PriorityMedium, models.UrgencyNormal, models.TaskStatusTodo)
	b.DueDate = &later
	c := task("soon", models.PriorityMedium, models.UrgencyNormal, models.TaskStatusTodo)
	c.DueDate = &soon

	tasks := []*models.Task{a, b, c}
	Sort(tasks, []Criterion{{FieldDueDate, Asc}})
	assert.Equal(t, []string{"soon", "later", "no-date"}, titles(tasks))
}
