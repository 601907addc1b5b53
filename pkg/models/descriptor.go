// Package models defines the model descriptors returned by the catalog
// endpoint, along with capability filtering and display-name ordering.
package models

import (
	"slices"
	"strings"

	"github.com/agentstation/modelprobe/pkg/constants"
)

// Descriptor describes one model from the provider catalog.
// Descriptors are values; callers receive copies and never share slices
// with the client that produced them.
type Descriptor struct {
	Name                       string   `json:"name" yaml:"name"`
	DisplayName                string   `json:"displayName" yaml:"display_name"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods" yaml:"supported_generation_methods"`
	BaseModelID                string   `json:"baseModelId,omitempty" yaml:"base_model_id,omitempty"`
	Version                    string   `json:"version,omitempty" yaml:"version,omitempty"`
	Description                string   `json:"description,omitempty" yaml:"description,omitempty"`
	InputTokenLimit            int64    `json:"inputTokenLimit,omitempty" yaml:"input_token_limit,omitempty"`
	OutputTokenLimit           int64    `json:"outputTokenLimit,omitempty" yaml:"output_token_limit,omitempty"`
}

// Supports reports whether the model advertises the given generation method.
// Method names are compared exactly.
func (d Descriptor) Supports(method string) bool {
	return slices.Contains(d.SupportedGenerationMethods, method)
}

// ID returns the model name without the "models/" prefix.
func (d Descriptor) ID() string {
	return ID(d.Name)
}

// Label returns the display name, or the ID when the catalog omits it.
func (d Descriptor) Label() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.ID()
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	d.SupportedGenerationMethods = slices.Clone(d.SupportedGenerationMethods)
	return d
}

// ID strips the catalog prefix from a model name: "models/foo" -> "foo".
// Names with any other prefix are returned unchanged.
func ID(name string) string {
	return strings.TrimPrefix(name, constants.ModelNamePrefix)
}

// ResourceName returns the path used to address a model in method URLs.
// Bare identifiers gain the "models/" prefix; names that already carry a
// collection ("models/foo", "tunedModels/bar") are kept as-is.
func ResourceName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.Contains(name, "/") {
		return name
	}
	return constants.ModelNamePrefix + name
}
