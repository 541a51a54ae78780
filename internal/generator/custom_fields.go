package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

var fieldCreatedRange = temporal.NewDayRange(50, 250)

// PlanCustomFields picks 2-4 distinct catalog fields per project.
func PlanCustomFields(env *Env, projects []ProjectRef) ([]FieldRef, *database.Batch) {
	batch := database.NewBatch(schema.CustomFields, "field_id", "project_id", "name", "field_type", "created_at")

	var fields []FieldRef
	for _, project := range projects {
		for _, idx := range env.sample(len(content.CustomFields), env.intBetween(2, 4)) {
			spec := content.CustomFields[idx]
			field := FieldRef{
				ID:        env.IDs.New(),
				ProjectID: project.ID,
				Name:      spec.Name,
				Type:      spec.Type,
				CreatedAt: temporal.Latest(env.Time.Past(fieldCreatedRange), project.CreatedAt),
			}
			batch.Add(field.ID, project.ID, field.Name, field.Type, temporal.Format(field.CreatedAt))
			fields = append(fields, field)
		}
	}
	return fields, batch
}

// PlanFieldValues fills each of a project's fields on each of its tasks at
// custom_field_value_rate. Values always match the field's declared type.
func PlanFieldValues(env *Env, tasks []TaskRef, fields []FieldRef) *database.Batch {
	batch := database.NewBatch(schema.CustomFieldValue, "value_id", "field_id", "task_id", "value", "updated_at")

	byProject := make(map[string][]FieldRef)
	for _, f := range fields {
		byProject[f.ProjectID] = append(byProject[f.ProjectID], f)
	}

	for _, task := range tasks {
		for _, field := range byProject[task.ProjectID] {
			if !env.Time.Chance(env.Config.Probabilities.CustomFieldValue) {
				continue
			}
			value := content.FieldValue(content.FieldSpec{Name: field.Name, Type: field.Type}, env.Rand)
			updated := env.Time.After(temporal.Latest(task.CreatedAt, field.CreatedAt), 30)
			batch.Add(env.IDs.New(), field.ID, task.ID, value, temporal.Format(updated))
		}
	}
	return batch
}

// GenerateCustomFields writes definitions and values in one flush.
func GenerateCustomFields(ctx context.Context, env *Env, projects []ProjectRef, tasks []TaskRef) ([]FieldRef, int, error) {
	fields, defs := PlanCustomFields(env, projects)
	values := PlanFieldValues(env, tasks, fields)
	if err := env.flush(ctx, defs, values); err != nil {
		return nil, 0, err
	}
	return fields, values.Len(), nil
}
