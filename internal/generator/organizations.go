package generator

import (
	"context"
	"fmt"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

// PlanOrganizations names organizations from the catalog and falls back to
// "Company N" once it runs out.
func PlanOrganizations(env *Env) ([]OrgRef, *database.Batch) {
	batch := database.NewBatch(schema.Organizations, "organization_id", "name", "domain", "created_at")
	count := env.Config.Counts.Organizations

	orgs := make([]OrgRef, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("Company %d", i+1)
		domain := fmt.Sprintf("company%d.com", i+1)
		if i < len(content.CompanyNames) {
			name = content.CompanyNames[i]
			domain = content.CompanyDomains[i]
		}

		org := OrgRef{
			ID:        env.IDs.New(),
			Domain:    domain,
			CreatedAt: env.Time.Past(env.Config.DateRanges.Org),
		}
		batch.Add(org.ID, name, org.Domain, temporal.Format(org.CreatedAt))
		orgs = append(orgs, org)
	}
	return orgs, batch
}

func GenerateOrganizations(ctx context.Context, env *Env) ([]OrgRef, error) {
	orgs, batch := PlanOrganizations(env)
	if err := env.flush(ctx, batch); err != nil {
		return nil, err
	}
	return orgs, nil
}
