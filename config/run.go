package config

import (
	"fmt"

	"github.com/kbukum/halokit/logger"
	"github.com/kbukum/halokit/validation"
)

// RunConfig holds the settings of one analysis invocation. Embed it in a
// larger struct when a tool carries extra configuration.
type RunConfig struct {
	// Name labels the tool in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// OutputDir is the catalog root directory.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
	// Workers is the worker group size. -1 requests maximal parallelism:
	// one worker per available CPU, drawing indices dynamically. 0 is
	// invalid.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=-1,ne=0"`
	// Partition selects static or dynamic index assignment. When unset it
	// defaults to static, or to dynamic when Workers is negative.
	Partition string `yaml:"partition" mapstructure:"partition" validate:"omitempty,oneof=static dynamic"`
	// PipelineFile points to a declarative pipeline definition (YAML).
	PipelineFile string `yaml:"pipeline_file" mapstructure:"pipeline_file"`
	// SaveTargets retains surviving targets in memory after the run.
	SaveTargets bool `yaml:"save_targets" mapstructure:"save_targets"`
	// DisableCatalog skips writing catalog shards.
	DisableCatalog bool `yaml:"disable_catalog" mapstructure:"disable_catalog"`
	// ProgressAddr, when set, serves run progress over HTTP (host:port).
	ProgressAddr string `yaml:"progress_addr" mapstructure:"progress_addr"`
	// Logging configures the structured logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the run configuration.
func (c *RunConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "halokit"
	}
	if c.OutputDir == "" {
		c.OutputDir = "analysis"
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Partition == "" {
		if c.Workers < 0 {
			c.Partition = "dynamic"
		} else {
			c.Partition = "static"
		}
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the run configuration. Call ApplyDefaults first.
func (c *RunConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
