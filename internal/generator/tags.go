package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

var tagCreatedRange = temporal.NewDayRange(180, 365)

// PlanTags creates up to tags_count global tags from the catalog.
func PlanTags(env *Env) ([]TagRef, *database.Batch) {
	batch := database.NewBatch(schema.Tags, "tag_id", "name", "created_at")
	count := min(env.Config.Counts.TagsCount, len(content.TagNames))

	tags := make([]TagRef, 0, count)
	for _, name := range content.TagNames[:count] {
		tag := TagRef{
			ID:        env.IDs.New(),
			Name:      name,
			CreatedAt: env.Time.Past(tagCreatedRange),
		}
		batch.Add(tag.ID, tag.Name, temporal.Format(tag.CreatedAt))
		tags = append(tags, tag)
	}
	return tags, batch
}

// PlanTagAssociations tags a share of the tasks with 1-3 distinct tags. The
// assignment happens after both the task and the tag exist.
func PlanTagAssociations(env *Env, tasks []TaskRef, tags []TagRef) *database.Batch {
	batch := database.NewBatch(schema.TaskTags, "task_id", "tag_id", "assigned_at")
	if len(tags) == 0 {
		return batch
	}

	for _, task := range tasks {
		if !env.Time.Chance(env.Config.Probabilities.TaskHasTags) {
			continue
		}
		for _, idx := range env.sample(len(tags), env.intBetween(1, 3)) {
			tag := tags[idx]
			assigned := env.Time.After(temporal.Latest(task.CreatedAt, tag.CreatedAt), 30)
			batch.Add(task.ID, tag.ID, temporal.Format(assigned))
		}
	}
	return batch
}

// GenerateTags writes the tags and their task associations in one flush.
func GenerateTags(ctx context.Context, env *Env, tasks []TaskRef) ([]TagRef, int, error) {
	tags, tagBatch := PlanTags(env)
	assoc := PlanTagAssociations(env, tasks, tags)
	if err := env.flush(ctx, tagBatch, assoc); err != nil {
		return nil, 0, err
	}
	return tags, assoc.Len(), nil
}
