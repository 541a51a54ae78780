package schema

import (
	"fmt"
	"regexp"
	"strings"
)

type TableInfo struct {
	Name         string
	Columns      []ColumnInfo
	PrimaryKey   []string
	ForeignKeys  []ForeignKey
	Dependencies []string
}

type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
	IsPK     bool
	IsFK     bool
	FKTable  string
	FKColumn string
}

type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
	Nullable  bool
}

func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", fk.Table, fk.Column, fk.RefTable, fk.RefColumn)
}

// Schema is the parsed form of a DDL script.
type Schema struct {
	Tables map[string]*TableInfo
	Graph  *DependencyGraph
}

var (
	validIdentifier  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	createTableRegex = regexp.MustCompile(`(?is)^CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?["'` + "`" + `]?(\w+)["'` + "`" + `]?\s*\((.*)\)$`)
	fkRegex          = regexp.MustCompile(`(?i)FOREIGN\s+KEY\s*\(\s*["']?(\w+)["']?\s*\)\s*REFERENCES\s+["']?(\w+)["']?\s*\(\s*["']?(\w+)["']?\s*\)`)
	refRegex         = regexp.MustCompile(`(?i)REFERENCES\s+["']?(\w+)["']?\s*\(\s*["']?(\w+)["']?\s*\)`)
	pkRegex          = regexp.MustCompile(`(?i)^PRIMARY\s+KEY\s*\(([^)]*)\)`)
)

// Parse extracts every CREATE TABLE in ddl and orders the tables by their
// foreign keys.
func Parse(ddl string) (*Schema, error) {
	s := &Schema{
		Tables: make(map[string]*TableInfo),
		Graph:  NewDependencyGraph(),
	}

	for _, stmt := range Statements(ddl) {
		m := createTableRegex.FindStringSubmatch(strings.TrimSpace(stmt))
		if m == nil {
			continue
		}
		table, err := parseTableDefinition(m[1], m[2])
		if err != nil {
			return nil, err
		}
		if _, dup := s.Tables[table.Name]; dup {
			return nil, fmt.Errorf("table %s defined twice", table.Name)
		}
		s.Tables[table.Name] = table
		s.Graph.AddTable(table)
	}

	if len(s.Tables) == 0 {
		return nil, fmt.Errorf("no tables found in schema")
	}

	for _, table := range s.Tables {
		for _, fk := range table.ForeignKeys {
			if _, ok := s.Tables[fk.RefTable]; !ok {
				return nil, fmt.Errorf("foreign key %s references unknown table", fk)
			}
		}
	}

	if _, err := s.Graph.BuildInsertionOrder(); err != nil {
		return nil, fmt.Errorf("failed to build insertion order: %w", err)
	}
	return s, nil
}

// DropOrder is the insertion order reversed, so children go first.
func (s *Schema) DropOrder() []string {
	order := s.Graph.GetOrder()
	out := make([]string, len(order))
	for i, name := range order {
		out[len(order)-1-i] = name
	}
	return out
}

// Relations lists every foreign key in insertion order.
func (s *Schema) Relations() []ForeignKey {
	var out []ForeignKey
	for _, name := range s.Graph.GetOrder() {
		out = append(out, s.Tables[name].ForeignKeys...)
	}
	return out
}

func parseTableDefinition(tableName, body string) (*TableInfo, error) {
	if !validIdentifier.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name: %s", tableName)
	}

	table := &TableInfo{Name: tableName}

	for _, line := range splitTopLevel(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)

		if m := fkRegex.FindStringSubmatch(line); m != nil {
			table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
				Table:     tableName,
				Column:    m[1],
				RefTable:  m[2],
				RefColumn: m[3],
			})
			continue
		}

		if m := pkRegex.FindStringSubmatch(line); m != nil {
			for _, col := range strings.Split(m[1], ",") {
				table.PrimaryKey = append(table.PrimaryKey, strings.Trim(strings.TrimSpace(col), `"'`))
			}
			continue
		}

		if strings.HasPrefix(upper, "UNIQUE") ||
			strings.HasPrefix(upper, "CHECK") ||
			strings.HasPrefix(upper, "CONSTRAINT") ||
			strings.HasPrefix(upper, "INDEX") ||
			strings.HasPrefix(upper, "KEY") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			return nil, fmt.Errorf("table %s: cannot parse column definition %q", tableName, line)
		}

		col := ColumnInfo{
			Name:     strings.Trim(parts[0], `"'`+"`"),
			Type:     parts[1],
			Nullable: !strings.Contains(upper, "NOT NULL") && !strings.Contains(upper, "PRIMARY KEY"),
			IsPK:     strings.Contains(upper, "PRIMARY KEY"),
		}
		if !validIdentifier.MatchString(col.Name) {
			return nil, fmt.Errorf("invalid column name in table %s: %s", tableName, col.Name)
		}

		if m := refRegex.FindStringSubmatch(line); m != nil {
			table.ForeignKeys = append(table.ForeignKeys, ForeignKey{
				Table:     tableName,
				Column:    col.Name,
				RefTable:  m[1],
				RefColumn: m[2],
			})
		}
		if col.IsPK {
			table.PrimaryKey = append(table.PrimaryKey, col.Name)
		}
		table.Columns = append(table.Columns, col)
	}

	for _, pk := range table.PrimaryKey {
		if i := table.columnIndex(pk); i >= 0 {
			table.Columns[i].IsPK = true
			table.Columns[i].Nullable = false
		}
	}

	seen := make(map[string]bool)
	for i, fk := range table.ForeignKeys {
		idx := table.columnIndex(fk.Column)
		if idx < 0 {
			return nil, fmt.Errorf("table %s: foreign key on unknown column %s", tableName, fk.Column)
		}
		c := &table.Columns[idx]
		c.IsFK = true
		c.FKTable = fk.RefTable
		c.FKColumn = fk.RefColumn
		table.ForeignKeys[i].Nullable = c.Nullable

		if fk.RefTable != tableName && !seen[fk.RefTable] {
			seen[fk.RefTable] = true
			table.Dependencies = append(table.Dependencies, fk.RefTable)
		}
	}

	return table, nil
}

func (t *TableInfo) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// splitTopLevel splits a table body on commas that are not nested inside
// parentheses, so VARCHAR(36) and composite keys survive intact.
func splitTopLevel(body string) []string {
	var parts []string
	depth, start := 0, 0
	inString := false
	for i, ch := range body {
		switch {
		case ch == '\'':
			inString = !inString
		case inString:
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == ',' && depth == 0:
			parts = append(parts, body[start:i])
			start = i + 1
		}
	}
	return append(parts, body[start:])
}
