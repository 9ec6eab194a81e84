// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InputConfig locates the parsed corpus to read.
type InputConfig struct {
	// InputFile is the CoNLL-CSV file produced by the parser.
	InputFile string `json:"input_file" yaml:"input_file"`
}

// RulesConfig locates the pattern and lexicon file.
type RulesConfig struct {
	// RulesFile is a YAML file with PATTERNS and LEXICON sections.
	// Empty selects the embedded default rules for the stage.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
}

// QuotesConfig holds settings for the quote detection stage.
type QuotesConfig struct {
	InputConfig `yaml:",inline"`
	RulesConfig `yaml:",inline"`

	// OutputFile receives the CSV records. Empty or "-" writes to stdout.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// Resolve enables rewriting partial and pronominal author names to
	// the fuller name mentioned earlier in the article (default true).
	Resolve bool `json:"resolve" yaml:"resolve"`

	// Workers is the number of documents processed concurrently (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// Database, when set, also stores the records in the SQLite quote store.
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// ActorsConfig holds settings for the actor extraction stage.
type ActorsConfig struct {
	InputConfig `yaml:",inline"`
	RulesConfig `yaml:",inline"`

	// OutputFile receives the CSV records. Empty or "-" writes to stdout.
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// StoreConfig holds settings for the quote store.
type StoreConfig struct {
	// Database is the SQLite file path (default "quotes.db").
	Database string `json:"database" yaml:"database"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig selects logging verbosity and destination.
type LogConfig struct {
	// Level is one of ERROR, WARNING, INFO, DEBUG (default WARNING).
	Level string `json:"level" yaml:"level"`

	// File, when set, writes logs to a rotating file instead of stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// MaxSizeMB is the size at which the log file is rotated (default 10).
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files kept (default 5).
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Quotes  QuotesConfig `json:"quotes" yaml:"quotes"`
	Actors  ActorsConfig `json:"actors" yaml:"actors"`
	Store   StoreConfig  `json:"store" yaml:"store"`
	Logging LogConfig    `json:"logging" yaml:"logging"`
}
