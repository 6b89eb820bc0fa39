// Package config reads mapcheck trace scenarios from a configuration directory.
package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const ConfigFile1 = "mapcheck.yaml"
const ConfigFile2 = "mapcheck.yml"

const (
	MapHashMap = "hashmap"
	MapTreeMap = "treemap"
)

const (
	HasherXXH3  = "xxh3"
	HasherXXH64 = "xxh64"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const DefaultLogLevel = LogLevelInfo

type Config struct {
	LogLevel  string
	Scenarios []*Scenario
}

type Scenario struct {
	Name string
	Map  string

	// Hasher is only defined for MapHashMap scenarios.
	Hasher string

	Seed            int64
	Operations      int
	KeySpace        int
	CheckOrderEvery int
}

type config struct {
	LogLevel  string           `yaml:"log-level"`
	Scenarios []scenarioConfig `yaml:"scenarios"`
}

type scenarioConfig struct {
	Name            string `yaml:"name"`
	Map             string `yaml:"map"`
	Hasher          string `yaml:"hasher"`
	Seed            int64  `yaml:"seed"`
	Operations      int    `yaml:"operations"`
	KeySpace        int    `yaml:"key-space"`
	CheckOrderEvery int    `yaml:"check-order-every"`
}

func ReadConfig(filesystem fs.FS, dirPath string) (*Config, error) {
	d, err := fs.ReadDir(filesystem, dirPath)
	if err != nil {
		return nil, fmt.Errorf("reading config directory: %w", err)
	}

	var path string
	for _, o := range d {
		n := o.Name()
		if o.IsDir() || (n != ConfigFile1 && n != ConfigFile2) {
			continue
		}
		if path != "" {
			return nil, &ErrorConflict{Items: []string{
				filepath.Join(dirPath, ConfigFile1),
				filepath.Join(dirPath, ConfigFile2),
			}}
		}
		path = filepath.Join(dirPath, n)
	}
	if path == "" {
		return nil, &ErrorMissing{
			FilePath: filepath.Join(dirPath, ConfigFile1),
		}
	}

	f, err := filesystem.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var c config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, &ErrorIllegal{
			FilePath: path,
			Message:  err.Error(),
		}
	}

	conf := &Config{LogLevel: DefaultLogLevel}
	if c.LogLevel != "" {
		if err := ValidateLogLevel(c.LogLevel); err != "" {
			return nil, &ErrorIllegal{
				FilePath: path,
				Feature:  "log-level",
				Message:  err,
			}
		}
		conf.LogLevel = c.LogLevel
	}

	if len(c.Scenarios) < 1 {
		return nil, &ErrorMissing{
			FilePath: path,
			Feature:  "scenarios",
		}
	}

	byName := make(map[string]struct{}, len(c.Scenarios))
	for i := range c.Scenarios {
		s, err := readScenario(path, i, &c.Scenarios[i])
		if err != nil {
			return nil, err
		}
		if _, ok := byName[s.Name]; ok {
			return nil, &ErrorConflict{Items: []string{
				path,
				"scenarios." + s.Name,
			}}
		}
		byName[s.Name] = struct{}{}
		conf.Scenarios = append(conf.Scenarios, s)
	}

	return conf, nil
}

func readScenario(path string, index int, c *scenarioConfig) (*Scenario, error) {
	feature := func(name string) string {
		return fmt.Sprintf("scenarios[%d].%s", index, name)
	}

	if c.Name == "" {
		return nil, &ErrorMissing{FilePath: path, Feature: feature("name")}
	}
	if err := ValidateID(c.Name); err != "" {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  feature("name"),
			Message:  err,
		}
	}

	s := &Scenario{
		Name:            c.Name,
		Map:             c.Map,
		Seed:            c.Seed,
		Operations:      c.Operations,
		KeySpace:        c.KeySpace,
		CheckOrderEvery: c.CheckOrderEvery,
	}

	switch c.Map {
	case "":
		return nil, &ErrorMissing{FilePath: path, Feature: feature("map")}
	case MapHashMap:
		switch c.Hasher {
		case "":
			s.Hasher = HasherXXH3
		case HasherXXH3, HasherXXH64:
			s.Hasher = c.Hasher
		default:
			return nil, &ErrorIllegal{
				FilePath: path,
				Feature:  feature("hasher"),
				Message: fmt.Sprintf(
					"unsupported hasher %q, expected %s or %s",
					c.Hasher, HasherXXH3, HasherXXH64,
				),
			}
		}
	case MapTreeMap:
		if c.Hasher != "" {
			return nil, &ErrorIllegal{
				FilePath: path,
				Feature:  feature("hasher"),
				Message:  "hasher is only applicable to " + MapHashMap,
			}
		}
	default:
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  feature("map"),
			Message: fmt.Sprintf(
				"unsupported map %q, expected %s or %s",
				c.Map, MapHashMap, MapTreeMap,
			),
		}
	}

	if c.Operations == 0 {
		return nil, &ErrorMissing{FilePath: path, Feature: feature("operations")}
	} else if c.Operations < 0 {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  feature("operations"),
			Message:  "must be positive",
		}
	}

	if c.KeySpace == 0 {
		return nil, &ErrorMissing{FilePath: path, Feature: feature("key-space")}
	} else if c.KeySpace < 0 {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  feature("key-space"),
			Message:  "must be positive",
		}
	}

	if c.CheckOrderEvery < 0 {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  feature("check-order-every"),
			Message:  "must not be negative",
		}
	}

	return s, nil
}

// ValidateLogLevel returns an error message if l isn't a supported level.
func ValidateLogLevel(l string) (err string) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return ""
	}
	return fmt.Sprintf("unsupported level %q", l)
}

func ValidateID(n string) (err string) {
	if n == "" {
		return "empty"
	}
	for i := range n {
		if strings.IndexByte(IDValidCharDict, n[i]) < 0 {
			return fmt.Sprintf("contains illegal character at index %d", i)
		}
	}
	return ""
}

const IDValidCharDict = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"_-"

type ErrorConflict struct {
	Items []string
}

func (e ErrorConflict) Error() string {
	var b strings.Builder
	b.WriteString("conflict between: ")
	for i := range e.Items {
		b.WriteString(e.Items[i])
		if i+1 < len(e.Items) {
			b.WriteString(", ")
		}
	}
	return b.String()
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	if e.Feature == "" {
		b.Grow(len("missing ") + len(e.FilePath))
		b.WriteString("missing ")
		b.WriteString(e.FilePath)
		return b.String()
	}
	b.Grow(len("missing ") + len(e.Feature) + len(" in ") + len(e.FilePath))
	b.WriteString("missing ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.WriteString("illegal ")
	if e.Feature != "" {
		b.WriteString(e.Feature)
		b.WriteString(" in ")
	}
	b.WriteString(e.FilePath)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
