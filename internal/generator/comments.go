package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

// commentCount draws from the none / low / high mixture.
func commentCount(env *Env) int {
	p := env.Config.Probabilities
	switch {
	case env.Time.Chance(p.CommentNone):
		return 0
	case env.Time.Chance(p.CommentLow):
		return env.intBetween(1, 2)
	default:
		return env.intBetween(3, 8)
	}
}

// PlanComments writes each task's thread in order. Every comment is placed
// after the previous one, starting from the task's creation.
func PlanComments(env *Env, tasks []TaskRef, users []UserRef) (*database.Batch, error) {
	batch := database.NewBatch(schema.Comments, "comment_id", "task_id", "author_id", "body", "created_at")
	if len(users) == 0 {
		return batch, nil
	}

	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	fill := content.Context{
		"name":   content.Choices(names...),
		"number": content.Number(100, 999),
	}

	for _, task := range tasks {
		last := task.CreatedAt
		for i, n := 0, commentCount(env); i < n; i++ {
			body, err := content.FillRandom(content.CommentTemplates, fill, env.Rand)
			if err != nil {
				return nil, err
			}
			author := users[env.Rand.Intn(len(users))]
			last = env.Time.After(last, 15)
			batch.Add(env.IDs.New(), task.ID, author.ID, body, temporal.Format(last))
		}
	}
	return batch, nil
}

func GenerateComments(ctx context.Context, env *Env, tasks []TaskRef, users []UserRef) (int, error) {
	batch, err := PlanComments(env, tasks, users)
	if err != nil {
		return 0, err
	}
	if err := env.flush(ctx, batch); err != nil {
		return 0, err
	}
	return batch.Len(), nil
}
