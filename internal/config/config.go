package config

import (
	"fmt"
	"strings"

	"github.com/Rana718/Tasksim/internal/temporal"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const EnvPrefix = "TASKSIM"

type Config struct {
	Database      Database      `yaml:"database"`
	Counts        Counts        `yaml:"generation_counts"`
	Probabilities Probabilities `yaml:"generation_probabilities"`
	DateRanges    DateRanges    `yaml:"date_ranges"`
	Logging       Logging       `yaml:"logging"`
	Seed          int64         `yaml:"seed"`

	// Warnings collects every key that fell back to its default.
	Warnings []string `yaml:"-"`
}

type Database struct {
	Provider   string `yaml:"provider"`
	OutputPath string `yaml:"output_path"`
}

type Counts struct {
	Organizations   int `yaml:"organizations"`
	TeamsPerOrg     int `yaml:"teams_per_org"`
	UsersPerOrg     int `yaml:"users_per_org"`
	ProjectsPerTeam int `yaml:"projects_per_team"`
	TasksPerProject int `yaml:"tasks_per_project"`
	TagsCount       int `yaml:"tags_count"`
}

type Probabilities struct {
	TaskUnassigned     float64 `yaml:"task_unassigned_rate"`
	TaskHasDueDate     float64 `yaml:"task_has_due_date_rate"`
	TaskCompletion     float64 `yaml:"task_completion_rate"`
	TaskOverdue        float64 `yaml:"task_overdue_chance"`
	Subtask            float64 `yaml:"subtask_probability"`
	TaskHasDescription float64 `yaml:"task_has_description_rate"`
	TaskHasTags        float64 `yaml:"task_has_tags_rate"`
	CustomFieldValue   float64 `yaml:"custom_field_value_rate"`
	CommentNone        float64 `yaml:"comment_none_rate"`
	CommentLow         float64 `yaml:"comment_low_rate"`
}

type DateRanges struct {
	Org     temporal.DayRange `yaml:"org"`
	Team    temporal.DayRange `yaml:"team"`
	User    temporal.DayRange `yaml:"user"`
	Project temporal.DayRange `yaml:"project"`
	Task    temporal.DayRange `yaml:"task"`
}

type Logging struct {
	Level    string `yaml:"log_level"`
	ToFile   bool   `yaml:"log_to_file"`
	FilePath string `yaml:"log_file_path"`
}

var supportedProviders = []string{"sqlite", "sqlite3", "postgres", "postgresql", "mysql"}

// Defaults mirrors the documented defaults of every recognized key.
func Defaults() *Config {
	return &Config{
		Database: Database{
			Provider:   "sqlite",
			OutputPath: "output/asana_simulation.sqlite",
		},
		Counts: Counts{
			Organizations:   1,
			TeamsPerOrg:     8,
			UsersPerOrg:     50,
			ProjectsPerTeam: 4,
			TasksPerProject: 20,
			TagsCount:       15,
		},
		Probabilities: Probabilities{
			TaskUnassigned:     0.20,
			TaskHasDueDate:     0.70,
			TaskCompletion:     0.70,
			TaskOverdue:        0.20,
			Subtask:            0.30,
			TaskHasDescription: 0.30,
			TaskHasTags:        0.60,
			CustomFieldValue:   0.70,
			CommentNone:        0.30,
			CommentLow:         0.70,
		},
		DateRanges: DateRanges{
			Org:     temporal.NewDayRange(730, 365),
			Team:    temporal.NewDayRange(365, 180),
			User:    temporal.NewDayRange(365, 30),
			Project: temporal.NewDayRange(300, 30),
			Task:    temporal.NewDayRange(200, 1),
		},
		Logging: Logging{
			Level:    "INFO",
			ToFile:   false,
			FilePath: "logs/generator.log",
		},
	}
}

// NewViper returns a viper instance wired for TASKSIM_* environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	Configure(v)
	return v
}

func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load builds the configuration from the global viper instance.
func Load() *Config {
	return FromViper(viper.GetViper())
}

// FromViper reads every recognized key. Missing or malformed values keep
// their default and are recorded in Warnings; this never fails.
func FromViper(v *viper.Viper) *Config {
	cfg := Defaults()
	r := &reader{v: v}

	cfg.Database.Provider = strings.ToLower(r.stringValue("database.provider", cfg.Database.Provider))
	if !isSupported(cfg.Database.Provider) {
		r.warn("database.provider", cfg.Database.Provider)
		cfg.Database.Provider = "sqlite"
	}
	cfg.Database.OutputPath = r.stringValue("database.output_path", cfg.Database.OutputPath)

	c := &cfg.Counts
	c.Organizations = atLeast(r.intValue("generation_counts.organizations", c.Organizations), 1)
	c.TeamsPerOrg = atLeast(r.intValue("generation_counts.teams_per_org", c.TeamsPerOrg), 0)
	c.UsersPerOrg = atLeast(r.intValue("generation_counts.users_per_org", c.UsersPerOrg), 0)
	c.ProjectsPerTeam = atLeast(r.intValue("generation_counts.projects_per_team", c.ProjectsPerTeam), 0)
	c.TasksPerProject = atLeast(r.intValue("generation_counts.tasks_per_project", c.TasksPerProject), 0)
	c.TagsCount = atLeast(r.intValue("generation_counts.tags_count", c.TagsCount), 0)

	p := &cfg.Probabilities
	p.TaskUnassigned = r.prob("generation_probabilities.task_unassigned_rate", p.TaskUnassigned)
	p.TaskHasDueDate = r.prob("generation_probabilities.task_has_due_date_rate", p.TaskHasDueDate)
	p.TaskCompletion = r.prob("generation_probabilities.task_completion_rate", p.TaskCompletion)
	p.TaskOverdue = r.prob("generation_probabilities.task_overdue_chance", p.TaskOverdue)
	p.Subtask = r.prob("generation_probabilities.subtask_probability", p.Subtask)
	p.TaskHasDescription = r.prob("generation_probabilities.task_has_description_rate", p.TaskHasDescription)
	p.TaskHasTags = r.prob("generation_probabilities.task_has_tags_rate", p.TaskHasTags)
	p.CustomFieldValue = r.prob("generation_probabilities.custom_field_value_rate", p.CustomFieldValue)
	p.CommentNone = r.prob("generation_probabilities.comment_none_rate", p.CommentNone)
	p.CommentLow = r.prob("generation_probabilities.comment_low_rate", p.CommentLow)

	d := &cfg.DateRanges
	d.Org = r.dayRange("org", d.Org)
	d.Team = r.dayRange("team", d.Team)
	d.User = r.dayRange("user", d.User)
	d.Project = r.dayRange("project", d.Project)
	d.Task = r.dayRange("task", d.Task)

	cfg.Logging.Level = strings.ToUpper(r.stringValue("logging.log_level", cfg.Logging.Level))
	cfg.Logging.ToFile = r.boolValue("logging.log_to_file", cfg.Logging.ToFile)
	cfg.Logging.FilePath = r.stringValue("logging.log_file_path", cfg.Logging.FilePath)

	cfg.Seed = r.int64Value("generation.seed", 0)

	cfg.Warnings = r.warnings
	return cfg
}

// IsSQLite reports whether the output path is a local sqlite file.
func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

type reader struct {
	v        *viper.Viper
	warnings []string
}

func (r *reader) warn(key string, raw any) {
	r.warnings = append(r.warnings, fmt.Sprintf("invalid value %v for %s, using default", raw, key))
}

func (r *reader) stringValue(key, def string) string {
	raw := r.v.Get(key)
	if raw == nil {
		return def
	}
	s, err := cast.ToStringE(raw)
	if err != nil || strings.TrimSpace(s) == "" {
		r.warn(key, raw)
		return def
	}
	return strings.TrimSpace(s)
}

func (r *reader) intValue(key string, def int) int {
	raw := r.v.Get(key)
	if raw == nil {
		return def
	}
	n, err := cast.ToIntE(trim(raw))
	if err != nil {
		r.warn(key, raw)
		return def
	}
	return n
}

func (r *reader) int64Value(key string, def int64) int64 {
	raw := r.v.Get(key)
	if raw == nil {
		return def
	}
	n, err := cast.ToInt64E(trim(raw))
	if err != nil {
		r.warn(key, raw)
		return def
	}
	return n
}

func (r *reader) prob(key string, def float64) float64 {
	raw := r.v.Get(key)
	if raw == nil {
		return def
	}
	f, err := cast.ToFloat64E(trim(raw))
	if err != nil {
		r.warn(key, raw)
		return def
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (r *reader) boolValue(key string, def bool) bool {
	raw := r.v.Get(key)
	if raw == nil {
		return def
	}
	b, err := cast.ToBoolE(trim(raw))
	if err != nil {
		r.warn(key, raw)
		return def
	}
	return b
}

func (r *reader) dayRange(entity string, def temporal.DayRange) temporal.DayRange {
	prefix := "date_ranges." + entity + "_created_days_ago_"
	// Config files name the older bound "min"; either order is accepted.
	a := r.intValue(prefix+"min", def.Oldest)
	b := r.intValue(prefix+"max", def.Newest)
	return temporal.NewDayRange(a, b)
}

func trim(raw any) any {
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return raw
}

func atLeast(n, min int) int {
	if n < min {
		return min
	}
	return n
}

func isSupported(provider string) bool {
	for _, p := range supportedProviders {
		if p == provider {
			return true
		}
	}
	return false
}
