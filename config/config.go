/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	storageerrors "github.com/Aesonus/alchemical-storage/errors"
	"github.com/Aesonus/alchemical-storage/filter"
	"github.com/Aesonus/alchemical-storage/join"
	"github.com/Aesonus/alchemical-storage/pagination"
	"github.com/Aesonus/alchemical-storage/registry"
	"github.com/Aesonus/alchemical-storage/visitor"
)

// Config is a declarative model namespace plus visitor pipeline document.
type Config struct {
	Models   map[string]ModelConfig `yaml:"models"`
	Pipeline *PipelineConfig        `yaml:"pipeline"`
}

// ModelConfig declares one model.
type ModelConfig struct {
	Table         string                        `yaml:"table"`
	Columns       []ColumnConfig                `yaml:"columns"`
	Relationships map[string]RelationshipConfig `yaml:"relationships"`
	PrimaryKey    []string                      `yaml:"primary_key"`
}

// ColumnConfig declares one column. A bare string is shorthand for a column
// whose SQL name equals its attribute name.
type ColumnConfig struct {
	Name string `yaml:"name"`
	SQL  string `yaml:"sql"`
}

// UnmarshalYAML accepts either a scalar column name or a name/sql mapping.
func (c *ColumnConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Name = value.Value
		return nil
	}
	type plain ColumnConfig
	return value.Decode((*plain)(c))
}

// RelationshipConfig declares one joinable relationship.
type RelationshipConfig struct {
	Target string `yaml:"target"`
	On     string `yaml:"on"`
}

// PipelineConfig declares the visitors of a pipeline. Build order is fixed:
// joins, filters, null filters, order by, pagination — so joins always
// precede the filters that may reference joined tables.
type PipelineConfig struct {
	Joins           []JoinConfig            `yaml:"joins"`
	Filters         map[string]FilterConfig `yaml:"filters"`
	NullFilters     map[string]string       `yaml:"null_filters"`
	NullIdentifiers []string                `yaml:"null_identifiers"`
	OrderBy         *OrderByConfig          `yaml:"order_by"`
	Pagination      *PaginationConfig       `yaml:"pagination"`
}

// JoinConfig declares one join rule.
type JoinConfig struct {
	Triggers      []string `yaml:"triggers"`
	Relationships []string `yaml:"relationships"`
}

// FilterConfig declares one filter parameter. A bare string is shorthand
// for an equality filter on that column reference.
type FilterConfig struct {
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
}

// UnmarshalYAML accepts either a scalar column reference or a column/op mapping.
func (f *FilterConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		f.Column = value.Value
		return nil
	}
	type plain FilterConfig
	return value.Decode((*plain)(f))
}

// OrderByConfig declares the order-by visitor.
type OrderByConfig struct {
	Param string            `yaml:"param"`
	Keys  map[string]string `yaml:"keys"`
}

// PaginationConfig declares the pagination visitor. Style selects the
// payload accessor: "attr" (default) or "map".
type PaginationConfig struct {
	Param     string `yaml:"param"`
	Style     string `yaml:"style"`
	PageSize  string `yaml:"page_size"`
	FirstItem string `yaml:"first_item"`
}

// operators usable in filter declarations.
var operators = map[string]filter.Operator{
	"":      filter.Eq,
	"eq":    filter.Eq,
	"ne":    filter.NotEq,
	"gt":    filter.Gt,
	"ge":    filter.GtEq,
	"lt":    filter.Lt,
	"le":    filter.LtEq,
	"like":  filter.Like,
	"ilike": filter.ILike,
}

// Load parses a config document.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadFile parses a config document from a file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Namespace builds a registry namespace from the declared models.
func (c *Config) Namespace() (registry.Namespace, error) {
	ns := make(registry.Namespace, len(c.Models))
	for name, mc := range c.Models {
		if mc.Table == "" {
			return nil, storageerrors.NewConfigurationError(name, "model has no table")
		}
		model := &registry.Model{
			Name:       name,
			Table:      mc.Table,
			Columns:    make([]registry.Column, 0, len(mc.Columns)),
			PrimaryKey: mc.PrimaryKey,
		}
		for _, cc := range mc.Columns {
			if cc.Name == "" {
				return nil, storageerrors.NewConfigurationError(name, "column with no name")
			}
			model.Columns = append(model.Columns, registry.Column{Name: cc.Name, SQL: cc.SQL})
		}
		if len(mc.Relationships) > 0 {
			model.Relationships = make(map[string]registry.Relationship, len(mc.Relationships))
			for relName, rc := range mc.Relationships {
				if rc.Target == "" || rc.On == "" {
					return nil, storageerrors.NewConfigurationError(name+registry.RefSeparator+relName, "relationship needs target and on")
				}
				model.Relationships[relName] = registry.Relationship{Target: rc.Target, On: rc.On}
			}
		}
		ns[name] = model
	}
	return ns, nil
}

// BuildPipeline resolves the declared pipeline against the namespace. Every
// declared reference resolves now; a bad one fails with a ConfigurationError.
func (c *Config) BuildPipeline(ns registry.Namespace) (visitor.Pipeline, error) {
	if c.Pipeline == nil {
		return nil, nil
	}
	pc := c.Pipeline
	var pipeline visitor.Pipeline

	if len(pc.Joins) > 0 {
		specs := make([]join.Spec, 0, len(pc.Joins))
		for _, jc := range pc.Joins {
			specs = append(specs, join.Spec{Triggers: jc.Triggers, Relationships: jc.Relationships})
		}
		jm, err := join.NewJoinMap(ns, specs)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, jm)
	}

	if len(pc.Filters) > 0 {
		specs := make(map[string]filter.Spec, len(pc.Filters))
		for param, fc := range pc.Filters {
			op, ok := operators[fc.Op]
			if !ok {
				return nil, storageerrors.NewConfigurationError(fc.Column, "unknown operator "+fc.Op)
			}
			specs[param] = filter.Spec{Column: fc.Column, Op: op}
		}
		fm, err := filter.NewFilterMap(ns, specs)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, fm)
	}

	if len(pc.NullFilters) > 0 {
		var opts []filter.NullFilterOption
		if len(pc.NullIdentifiers) > 0 {
			if len(pc.NullIdentifiers) != 2 {
				return nil, storageerrors.NewConfigurationError("", "null_identifiers needs exactly two values")
			}
			opts = append(opts, filter.WithNullIdentifiers(pc.NullIdentifiers[0], pc.NullIdentifiers[1]))
		}
		nf, err := filter.NewNullFilterMap(ns, pc.NullFilters, opts...)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, nf)
	}

	if pc.OrderBy != nil {
		var opts []filter.OrderByOption
		if pc.OrderBy.Param != "" {
			opts = append(opts, filter.WithOrderByParam(pc.OrderBy.Param))
		}
		ob, err := filter.NewOrderByMap(ns, pc.OrderBy.Keys, opts...)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, ob)
	}

	if pc.Pagination != nil {
		pm, err := buildPagination(pc.Pagination)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, pm)
	}

	return pipeline, nil
}

func buildPagination(pc *PaginationConfig) (*pagination.PaginationMap, error) {
	if pc.Param == "" {
		return nil, storageerrors.NewConfigurationError("", "pagination needs a param name")
	}
	switch pc.Style {
	case "", "attr":
		pageSize := pc.PageSize
		if pageSize == "" {
			pageSize = pagination.DefaultPageSizeField
		}
		firstItem := pc.FirstItem
		if firstItem == "" {
			firstItem = pagination.DefaultFirstItemField
		}
		return pagination.NewPaginationMap(pc.Param,
			pagination.WithAccessor(pagination.StructAccessor(pageSize, firstItem))), nil
	case "map":
		pageSize := pc.PageSize
		if pageSize == "" {
			pageSize = pagination.DefaultPageSizeKey
		}
		firstItem := pc.FirstItem
		if firstItem == "" {
			firstItem = pagination.DefaultFirstItemKey
		}
		return pagination.NewPaginationMap(pc.Param,
			pagination.WithAccessor(pagination.MapAccessor(pageSize, firstItem))), nil
	default:
		return nil, storageerrors.NewConfigurationError("", "unknown pagination style "+pc.Style)
	}
}
