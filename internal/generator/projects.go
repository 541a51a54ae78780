package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

var projectContext = content.Context{
	"filler": content.Choices(content.ProjectFillers...),
}

// PlanProjects gives every team exactly projects_per_team projects. A
// project is never older than its team.
func PlanProjects(env *Env, teams []TeamRef) ([]ProjectRef, *database.Batch, error) {
	batch := database.NewBatch(schema.Projects, "project_id", "team_id", "name", "project_type", "created_at")
	perTeam := env.Config.Counts.ProjectsPerTeam

	projects := make([]ProjectRef, 0, len(teams)*perTeam)
	for _, team := range teams {
		for i := 0; i < perTeam; i++ {
			name, err := content.FillRandom(content.ProjectTemplates, projectContext, env.Rand)
			if err != nil {
				return nil, nil, err
			}

			project := ProjectRef{
				ID:        env.IDs.New(),
				TeamID:    team.ID,
				CreatedAt: temporal.Latest(env.Time.Past(env.Config.DateRanges.Project), team.CreatedAt),
			}
			batch.Add(project.ID, team.ID, name, env.pick(content.ProjectTypes), temporal.Format(project.CreatedAt))
			projects = append(projects, project)
		}
	}
	return projects, batch, nil
}

func GenerateProjects(ctx context.Context, env *Env, teams []TeamRef) ([]ProjectRef, error) {
	projects, batch, err := PlanProjects(env, teams)
	if err != nil {
		return nil, err
	}
	if err := env.flush(ctx, batch); err != nil {
		return nil, err
	}
	return projects, nil
}
