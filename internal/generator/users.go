package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

// PlanUsers creates the organization's users and, for each, 1-3 memberships
// in distinct teams. A membership is joined the moment the user is created.
func PlanUsers(env *Env, org OrgRef, teams []TeamRef) ([]UserRef, *database.Batch, *database.Batch) {
	users := database.NewBatch(schema.Users, "user_id", "organization_id", "first_name", "last_name", "email", "role", "created_at")
	memberships := database.NewBatch(schema.TeamMemberships, "membership_id", "user_id", "team_id", "joined_at")

	count := env.Config.Counts.UsersPerOrg
	emails := make(map[string]bool, count)
	refs := make([]UserRef, 0, count)

	for i := 0; i < count; i++ {
		first := env.pick(content.FirstNames)
		last := env.pick(content.LastNames)
		email := uniqueEmail(emails, first, last, org.Domain)

		user := UserRef{
			ID:        env.IDs.New(),
			Name:      first + " " + last,
			CreatedAt: temporal.Latest(env.Time.Past(env.Config.DateRanges.User), org.CreatedAt),
		}
		created := temporal.Format(user.CreatedAt)
		users.Add(user.ID, org.ID, first, last, email, env.pick(content.Roles), created)

		if len(teams) > 0 {
			n := env.intBetween(1, min(3, len(teams)))
			for _, idx := range env.sample(len(teams), n) {
				team := teams[idx]
				memberships.Add(env.IDs.New(), user.ID, team.ID, created)
				user.Teams = append(user.Teams, team.ID)
			}
		}
		refs = append(refs, user)
	}
	return refs, users, memberships
}

func GenerateUsers(ctx context.Context, env *Env, org OrgRef, teams []TeamRef) ([]UserRef, error) {
	refs, users, memberships := PlanUsers(env, org, teams)
	if err := env.flush(ctx, users, memberships); err != nil {
		return nil, err
	}
	return refs, nil
}

// uniqueEmail derives first.last@domain and appends a counter on collision.
func uniqueEmail(seen map[string]bool, first, last, domain string) string {
	local := strings.ToLower(first + "." + last)
	email := local + "@" + domain
	for n := 2; seen[email]; n++ {
		email = fmt.Sprintf("%s%d@%s", local, n, domain)
	}
	seen[email] = true
	return email
}
