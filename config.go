package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Reference     ReferenceConfig     `mapstructure:"reference"`
	Prescriptions PrescriptionsConfig `mapstructure:"prescriptions"`
	Drugs         []string            `mapstructure:"drugs" validate:"min=1,dive,required"`
	Boards        []string            `mapstructure:"boards" validate:"min=1,dive,required"`
	YoungAdult    AgeRangeConfig      `mapstructure:"young_adult"`
	Calendar      CalendarConfig      `mapstructure:"calendar"`
	Sources       []SourceConfig      `mapstructure:"sources" validate:"dive"`
}

type ReferenceConfig struct {
	HealthBoardFile string `mapstructure:"health_board_file" validate:"required"`
	PopulationFile  string `mapstructure:"population_file" validate:"required"`
	AgeFile         string `mapstructure:"age_file" validate:"required"`
	NamePrefix      string `mapstructure:"name_prefix"`
	PreambleRows    int    `mapstructure:"preamble_rows" validate:"gte=0"`
	AllAgesLabel    string `mapstructure:"all_ages_label" validate:"required"`
	AllSexesLabel   string `mapstructure:"all_sexes_label" validate:"required"`
}

type PrescriptionsConfig struct {
	ExamDir    string `mapstructure:"exam_dir" validate:"required"`
	NonExamDir string `mapstructure:"non_exam_dir" validate:"required"`
	Encoding   string `mapstructure:"encoding" validate:"oneof=utf-8 windows-1252"`
}

type AgeRangeConfig struct {
	MinAge int `mapstructure:"min_age" validate:"gte=0,ltefield=MaxAge"`
	MaxAge int `mapstructure:"max_age" validate:"gte=0"`
}

type CalendarConfig struct {
	Semester1Start  []int `mapstructure:"semester_1_start" validate:"dive,gte=1,lte=12"`
	Semester1Finals []int `mapstructure:"semester_1_finals" validate:"dive,gte=1,lte=12"`
	Semester2Start  []int `mapstructure:"semester_2_start" validate:"dive,gte=1,lte=12"`
	Semester2Finals []int `mapstructure:"semester_2_finals" validate:"dive,gte=1,lte=12"`
}

type SourceConfig struct {
	URL      string `mapstructure:"url" validate:"required,url"`
	Season   string `mapstructure:"season" validate:"required"`
	Filename string `mapstructure:"filename"`
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("reference.name_prefix", "NHS")
	v.SetDefault("reference.preamble_rows", 0)
	v.SetDefault("reference.all_ages_label", "All ages")
	v.SetDefault("reference.all_sexes_label", "All")
	v.SetDefault("prescriptions.encoding", "windows-1252")
	v.SetDefault("drugs", []string{
		"Escitalopram",
		"Sertraline",
		"Fluoxetine",
		"Venlafaxine",
		"Paroxetine",
		"Citalopram",
	})
	v.SetDefault("boards", []string{
		"Lothian",
		"Greater Glasgow and Clyde",
		"Grampian",
		"Tayside",
		"Fife",
		"Forth Valley",
		"Highland",
	})
	v.SetDefault("young_adult.min_age", 17)
	v.SetDefault("young_adult.max_age", 25)
	v.SetDefault("calendar.semester_1_start", []int{9, 10})
	v.SetDefault("calendar.semester_1_finals", []int{4, 5})
	v.SetDefault("calendar.semester_2_start", []int{1, 2})
	v.SetDefault("calendar.semester_2_finals", []int{11, 12})
}

func loadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setConfigDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if filepath.Clean(cfg.Prescriptions.ExamDir) == filepath.Clean(cfg.Prescriptions.NonExamDir) {
		return Config{}, fmt.Errorf("invalid config %s: exam_dir and non_exam_dir are the same directory", path)
	}
	for _, source := range cfg.Sources {
		if _, err := parseSeason(source.Season); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: source %s: %w", path, source.URL, err)
		}
	}
	return cfg, nil
}

func normalizeDrugList(drugs []string) ([]string, map[string]bool) {
	set := make(map[string]bool, len(drugs))
	ordered := make([]string, 0, len(drugs))
	for _, drug := range drugs {
		name := strings.ToUpper(strings.TrimSpace(drug))
		if name == "" || set[name] {
			continue
		}
		set[name] = true
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
	return ordered, set
}

func boardAllowList(boards []string) ([]string, map[string]bool) {
	set := make(map[string]bool, len(boards))
	ordered := make([]string, 0, len(boards))
	for _, board := range boards {
		name := strings.TrimSpace(board)
		if name == "" || set[name] {
			continue
		}
		set[name] = true
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
	return ordered, set
}
