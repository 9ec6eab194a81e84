// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	Runs   []Run         `json:"runs" yaml:"runs"`
	Quotes []QueryResult `json:"quotes" yaml:"quotes"`
}

const exportLimit = 1000000

// ExportYAML writes the store, or the subset matching opts, to path.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	export, err := s.export(ctx, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the store, or the subset matching opts, to path.
func (s *Store) ExportJSON(ctx context.Context, path string, opts QueryOptions) error {
	export, err := s.export(ctx, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (*Export, error) {
	opts.MaxResults = exportLimit
	quotes, err := s.Retrieve(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	runs, err := s.Runs(ctx)
	if err != nil {
		return nil, err
	}
	return &Export{Runs: runs, Quotes: quotes}, nil
}
