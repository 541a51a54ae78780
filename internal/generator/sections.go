package generator

import (
	"context"

	"github.com/Rana718/Tasksim/internal/content"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
)

// PlanSections gives each project 3-6 distinct sections at positions
// 0..k-1.
func PlanSections(env *Env, projects []ProjectRef) ([]SectionRef, *database.Batch) {
	batch := database.NewBatch(schema.Sections, "section_id", "project_id", "name", "position")

	var sections []SectionRef
	for _, project := range projects {
		k := env.intBetween(3, 6)
		for pos, idx := range env.sample(len(content.SectionNames), k) {
			section := SectionRef{
				ID:        env.IDs.New(),
				ProjectID: project.ID,
				Position:  pos,
			}
			batch.Add(section.ID, project.ID, content.SectionNames[idx], pos)
			sections = append(sections, section)
		}
	}
	return sections, batch
}

func GenerateSections(ctx context.Context, env *Env, projects []ProjectRef) ([]SectionRef, error) {
	sections, batch := PlanSections(env, projects)
	if err := env.flush(ctx, batch); err != nil {
		return nil, err
	}
	return sections, nil
}
