package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

const (
	subtaskCompletionDone = 0.9
	subtaskCompletionOpen = 0.5
)

// PlanSubtasks breaks a share of the tasks into 2-5 subtasks. A subtask may
// only inherit the parent's assignee, so it never leaves the project's team.
func PlanSubtasks(env *Env, tasks []TaskRef) *database.Batch {
	batch := database.NewBatch(schema.Subtasks,
		"subtask_id", "parent_task_id", "assignee_id", "name", "completed", "created_at", "completed_at")

	for _, task := range tasks {
		if !env.Time.Chance(env.Config.Probabilities.Subtask) {
			continue
		}

		rate := subtaskCompletionOpen
		if task.Completed {
			rate = subtaskCompletionDone
		}

		count := env.intBetween(2, 5)
		for i := 0; i < count; i++ {
			created := env.Time.After(task.CreatedAt, 10)

			var assignee string
			if env.Time.Chance(0.5) {
				assignee = task.AssigneeID
			}

			completedAt := env.Time.MaybeCompletedAt(created, false, rate)
			batch.Add(env.IDs.New(), task.ID, nullable(assignee), env.pick(content.SubtaskTitles),
				boolInt(completedAt != nil), temporal.Format(created), temporal.FormatPtr(completedAt))
		}
	}
	return batch
}

func GenerateSubtasks(ctx context.Context, env *Env, tasks []TaskRef) (int, error) {
	batch := PlanSubtasks(env, tasks)
	if err := env.flush(ctx, batch); err != nil {
		return 0, err
	}
	return batch.Len(), nil
}
