package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// DefaultProfile holds the naming used when a report spans every record kind.
	DefaultProfile = "default"
	allScope       = "all"
)

type Profile struct {
	Name     string
	Title    string
	Filename string
}

type Registry interface {
	GetProfiles() ([]string, error)
	GetProfile(name string) (Profile, error)
	Lookup(scope string) (title, filename string)
}

type profileRegistry struct {
	cfg *ini.File
}

// NewRegistry loads report profiles from an ini file. Section names are case
// insensitive. An empty path yields a registry without profiles.
func NewRegistry(path string) (Registry, error) {
	if path == "" {
		return &profileRegistry{cfg: ini.Empty(ini.LoadOptions{Insensitive: true})}, nil
	}
	cfg, err := ini.InsensitiveLoad(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load report profiles from %s: %w", path, err)
	}
	return &profileRegistry{cfg: cfg}, nil
}

func (pr *profileRegistry) GetProfiles() ([]string, error) {
	var profiles []string
	for _, section := range pr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (pr *profileRegistry) GetProfile(name string) (Profile, error) {
	section, err := pr.cfg.GetSection(strings.ToLower(name))
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s not found", name)
	}
	return Profile{
		Name:     section.Name(),
		Title:    value(section, "title"),
		Filename: value(section, "filename"),
	}, nil
}

func value(section *ini.Section, key string) string {
	if !section.HasKey(key) {
		return ""
	}
	return strings.TrimSpace(section.Key(key).String())
}

// Lookup returns the configured title and file name for a report scope: a
// record kind, or "all" for reports over every kind. Missing values come back
// empty so the caller keeps its own defaults.
func (pr *profileRegistry) Lookup(scope string) (string, string) {
	name := scope
	if name == allScope {
		name = DefaultProfile
	}
	p, err := pr.GetProfile(name)
	if err != nil {
		return "", ""
	}
	return p.Title, p.Filename
}
