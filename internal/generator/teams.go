package generator

import (
	"context"
	"fmt"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

// PlanTeams cycles through the team catalog. Names repeat with a numeric
// suffix once every catalog entry is taken.
func PlanTeams(env *Env, org OrgRef) ([]TeamRef, *database.Batch) {
	batch := database.NewBatch(schema.Teams, "team_id", "organization_id", "name", "team_type", "created_at")
	count := env.Config.Counts.TeamsPerOrg

	teams := make([]TeamRef, 0, count)
	for i := 0; i < count; i++ {
		idx := i % len(content.TeamNames)
		name := content.TeamNames[idx]
		if round := i / len(content.TeamNames); round > 0 {
			name = fmt.Sprintf("%s %d", name, round+1)
		}

		team := TeamRef{
			ID:        env.IDs.New(),
			Name:      name,
			CreatedAt: temporal.Latest(env.Time.Past(env.Config.DateRanges.Team), org.CreatedAt),
		}
		batch.Add(team.ID, org.ID, team.Name, content.TeamTypes[idx], temporal.Format(team.CreatedAt))
		teams = append(teams, team)
	}
	return teams, batch
}

func GenerateTeams(ctx context.Context, env *Env, org OrgRef) ([]TeamRef, error) {
	teams, batch := PlanTeams(env, org)
	if err := env.flush(ctx, batch); err != nil {
		return nil, err
	}
	return teams, nil
}
