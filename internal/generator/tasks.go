package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

// TaskColumns is the column order of the tasks batch.
var TaskColumns = []string{
	"task_id", "project_id", "section_id", "assignee_id", "name",
	"description", "due_date", "completed", "created_at", "completed_at",
}

// PlanTasks generates tasks for projects that have at least one section and
// at least one team member in members. Other projects get no tasks.
func PlanTasks(env *Env, projects []ProjectRef, sections []SectionRef, members map[string][]string) ([]TaskRef, *database.Batch, error) {
	batch := database.NewBatch(schema.Tasks, TaskColumns...)
	cfg := env.Config
	p := cfg.Probabilities

	byProject := make(map[string][]SectionRef)
	for _, s := range sections {
		byProject[s.ProjectID] = append(byProject[s.ProjectID], s)
	}

	var tasks []TaskRef
	for _, project := range projects {
		projectSections := byProject[project.ID]
		candidates := members[project.ID]
		if len(projectSections) == 0 || len(candidates) == 0 {
			continue
		}

		n := cfg.Counts.TasksPerProject
		count := env.intBetween(max(5, n-5), n+5)
		for i := 0; i < count; i++ {
			component := env.pick(content.Components)
			fill := content.Context{"component": content.Choices(component)}

			title, err := content.FillRandom(content.TaskTemplates, fill, env.Rand)
			if err != nil {
				return nil, nil, err
			}

			var description any
			if env.Time.Chance(p.TaskHasDescription) {
				fill["title"] = content.Choices(title)
				text, err := content.FillRandom(content.DescriptionTemplates, fill, env.Rand)
				if err != nil {
					return nil, nil, err
				}
				description = text
			}

			section := projectSections[env.Rand.Intn(len(projectSections))]

			task := TaskRef{
				ID:        env.IDs.New(),
				ProjectID: project.ID,
				CreatedAt: temporal.Latest(env.Time.Past(cfg.DateRanges.Task), project.CreatedAt),
			}
			if !env.Time.Chance(p.TaskUnassigned) {
				task.AssigneeID = env.pick(candidates)
			}

			var dueDate any
			hasDue := env.Time.Chance(p.TaskHasDueDate)
			if hasDue {
				dueDate = temporal.FormatDate(env.Time.DueDate(task.CreatedAt, p.TaskOverdue))
			}

			completedAt := env.Time.MaybeCompletedAt(task.CreatedAt, hasDue, p.TaskCompletion)
			task.Completed = completedAt != nil

			batch.Add(task.ID, project.ID, section.ID, nullable(task.AssigneeID), title,
				description, dueDate, boolInt(task.Completed),
				temporal.Format(task.CreatedAt), temporal.FormatPtr(completedAt))
			tasks = append(tasks, task)
		}
	}
	return tasks, batch, nil
}

// GenerateTasks resolves each project's candidate assignees through the
// project -> team -> membership join before planning.
func GenerateTasks(ctx context.Context, env *Env, projects []ProjectRef, sections []SectionRef) ([]TaskRef, error) {
	members := make(map[string][]string, len(projects))
	for _, project := range projects {
		ids, err := env.Store.TeamMemberIDs(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		members[project.ID] = ids
	}

	tasks, batch, err := PlanTasks(env, projects, sections, members)
	if err != nil {
		return nil, err
	}
	if err := env.flush(ctx, batch); err != nil {
		return nil, err
	}
	return tasks, nil
}
