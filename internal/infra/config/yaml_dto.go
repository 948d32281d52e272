package config

// YAMLWorkspace mirrors mmdesign.yaml. Pointer fields distinguish "unset"
// from a zero value so partial files keep the defaults.
type YAMLWorkspace struct {
	Selection YAMLSelection `yaml:"selection"`
	Defaults  YAMLDefaults  `yaml:"defaults"`
	Scorer    YAMLScorer    `yaml:"scorer"`
	Paths     YAMLPaths     `yaml:"paths"`
}

type YAMLSelection struct {
	Bins            *int     `yaml:"nbins"`
	BinMin          *float64 `yaml:"bin_min"`
	BinMax          *float64 `yaml:"bin_max"`
	ExclusionRadius *int     `yaml:"exclusion_radius"`
	RepeatWarn      *int     `yaml:"repeat_warn"`
	Antisense       string   `yaml:"antisense"`
}

type YAMLDefaults struct {
	N            *int    `yaml:"n"`
	Families     *int    `yaml:"families"`
	DivideEvenly *bool   `yaml:"divide_evenly"`
	Seed         *uint64 `yaml:"seed"`
}

type YAMLScorer struct {
	Kind          string   `yaml:"kind"`
	Model         string   `yaml:"model"`
	Scores        string   `yaml:"scores"`
	URL           string   `yaml:"url"`
	ScorePath     string   `yaml:"score_path"`
	BatchSize     *int     `yaml:"batch_size"`
	IdentityScore *float64 `yaml:"identity_score"`
}

type YAMLPaths struct {
	RunsDir string `yaml:"runs_dir"`
}
