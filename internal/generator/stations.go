package generator

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed stations.yaml
var defaultStations []byte

// Station is a named weather station and its mean temperature.
type Station struct {
	Name string  `yaml:"name"`
	Mean float64 `yaml:"mean"`
}

type stationFile struct {
	Stations []Station `yaml:"stations"`
}

// DefaultStations returns the embedded station list.
func DefaultStations() ([]Station, error) {
	return ParseStations(defaultStations)
}

// LoadStations reads a station list from a YAML file.
// An empty path selects the embedded list.
func LoadStations(path string) ([]Station, error) {
	if path == "" {
		return DefaultStations()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station file %s: %w", path, err)
	}
	stations, err := ParseStations(data)
	if err != nil {
		return nil, fmt.Errorf("station file %s: %w", path, err)
	}
	return stations, nil
}

// ParseStations decodes and validates a station list.
func ParseStations(data []byte) ([]Station, error) {
	var f stationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing stations: %w", err)
	}
	if len(f.Stations) == 0 {
		return nil, fmt.Errorf("no stations defined")
	}

	seen := make(map[string]struct{}, len(f.Stations))
	for _, s := range f.Stations {
		if s.Name == "" {
			return nil, fmt.Errorf("station name must not be empty")
		}
		if strings.ContainsAny(s.Name, ";\r\n") {
			return nil, fmt.Errorf("station %q: name must not contain ';' or line breaks", s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("station %q: duplicate name", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return f.Stations, nil
}
