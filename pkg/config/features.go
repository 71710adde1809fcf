package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdrender/pkg/render"
)

// ErrUnknownFeature is returned for feature names with no matching flag.
var ErrUnknownFeature = errors.New("unknown feature")

//nolint:gochecknoglobals // Read-only lookup table.
var featureNames = map[string]render.Feature{
	"tables":     render.FeatureTables,
	"fenced":     render.FeatureFenced,
	"footnotes":  render.FeatureFootnotes,
	"autolink":   render.FeatureAutolink,
	"strike":     render.FeatureStrike,
	"super":      render.FeatureSuper,
	"math":       render.FeatureMath,
	"metadata":   render.FeatureMetadata,
	"deflist":    render.FeatureDefList,
	"tasks":      render.FeatureTasks,
	"highlight":  render.FeatureHighlight,
	"attributes": render.FeatureAttributes,
}

// FeatureNames returns the accepted feature names in a stable order.
func FeatureNames() []string {
	return []string{
		"tables", "fenced", "footnotes", "autolink", "strike", "super",
		"math", "metadata", "deflist", "tasks", "highlight", "attributes",
	}
}

// ParseFeatures converts feature names into a bitset. Names are matched
// case-insensitively. An empty list selects render.FeatureDefault.
func ParseFeatures(names []string) (render.Feature, error) {
	if len(names) == 0 {
		return render.FeatureDefault, nil
	}

	var features render.Feature
	for _, name := range names {
		feature, ok := featureNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("%w %q; valid features: %s",
				ErrUnknownFeature, name, strings.Join(FeatureNames(), ", "))
		}
		features |= feature
	}
	return features, nil
}
