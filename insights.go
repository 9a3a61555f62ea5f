package vizboard

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultInsight is the caption used for files with no mapped insight.
const DefaultInsight = "No insight available for this image."

// Insights is a read-only mapping from file name to caption text.
// The zero value is an empty mapping.
type Insights struct {
	m map[string]string
}

// NewInsights returns an Insights holding a copy of m.
func NewInsights(m map[string]string) Insights {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Insights{m: cp}
}

// Lookup returns the caption for filename, or DefaultInsight.
func (in Insights) Lookup(filename string) string {
	if text, ok := in.m[filename]; ok {
		return text
	}
	return DefaultInsight
}

// Len returns the number of mapped file names.
func (in Insights) Len() int {
	return len(in.m)
}

// Names returns the mapped file names in sorted order.
func (in Insights) Names() []string {
	names := make([]string, 0, len(in.m))
	for k := range in.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LoadInsights parses a flat YAML document of `filename: caption` pairs.
func LoadInsights(r io.Reader) (Insights, error) {
	var m map[string]string
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return NewInsights(nil), nil
		}
		return Insights{}, fmt.Errorf("parse insights: %w", err)
	}
	return NewInsights(m), nil
}

// LoadInsightsFile reads an insights document from path.
func LoadInsightsFile(path string) (Insights, error) {
	f, err := os.Open(path)
	if err != nil {
		return Insights{}, fmt.Errorf("open insights: %w", err)
	}
	defer f.Close()
	return LoadInsights(f)
}

// DefaultInsights returns the mapping shipped with the binary.
func DefaultInsights() Insights {
	in, err := LoadInsights(bytes.NewReader(defaultInsightsYAML))
	if err != nil {
		panic("vizboard: embedded insights.yaml: " + err.Error())
	}
	return in
}
