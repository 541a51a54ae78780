package schema

import (
	"fmt"
	"sort"
)

type DependencyGraph struct {
	tables map[string]*TableInfo
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]*TableInfo),
	}
}

func (g *DependencyGraph) AddTable(table *TableInfo) {
	g.tables[table.Name] = table
}

// BuildInsertionOrder returns a topological order of the tables. Tables
// are visited by name so the result does not depend on map iteration.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		if table := g.tables[tableName]; table != nil {
			deps := append([]string(nil), table.Dependencies...)
			sort.Strings(deps)
			for _, dep := range deps {
				if dep == tableName {
					continue
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	names := make([]string, 0, len(g.tables))
	for name := range g.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}

// ValidateSequence checks that every table in seq comes after each table it
// references. Tables missing from seq must not be referenced by tables in it.
func (g *DependencyGraph) ValidateSequence(seq []string) error {
	pos := make(map[string]int, len(seq))
	for i, name := range seq {
		if _, ok := g.tables[name]; !ok {
			return fmt.Errorf("unknown table %s", name)
		}
		if _, dup := pos[name]; dup {
			return fmt.Errorf("table %s produced twice", name)
		}
		pos[name] = i
	}

	for _, name := range seq {
		for _, dep := range g.tables[name].Dependencies {
			depIdx, ok := pos[dep]
			if !ok {
				return fmt.Errorf("table %s references %s, which is never produced", name, dep)
			}
			if depIdx >= pos[name] {
				return fmt.Errorf("table %s references %s, which is produced later", name, dep)
			}
		}
	}
	return nil
}
