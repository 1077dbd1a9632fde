package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// SSOSession is a named identity-provider endpoint from the config file.
type SSOSession struct {
	Name     string
	StartURL string
	Region   string
}

// Profile references an SSO session and pins an account/role pair.
type Profile struct {
	Name      string
	Session   SSOSession
	AccountID string
	RoleName  string
}

// Loader reads SSO sessions and profiles from an AWS shared-config style
// ini file.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given config file path. An empty path
// falls back to ~/.aws/config.
func NewLoader(path string) (*Loader, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".aws", "config")
	}
	return &Loader{path: path}, nil
}

// Load parses the config file and returns the usable profiles. Profiles
// missing a resolvable sso_session reference, an account id, or a role
// name are excluded. A missing file yields an empty profile set.
func (l *Loader) Load() ([]Profile, error) {
	cfg, err := ini.Load(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Profile{}, nil
		}
		return nil, fmt.Errorf("failed to load config file %s: %w", l.path, err)
	}

	sessions := make(map[string]SSOSession)
	for _, section := range cfg.Sections() {
		name, ok := strings.CutPrefix(section.Name(), "sso-session ")
		if !ok {
			continue
		}
		startURL := section.Key("sso_start_url").String()
		region := section.Key("sso_region").String()
		if startURL == "" || region == "" {
			continue
		}
		sessions[name] = SSOSession{
			Name:     name,
			StartURL: startURL,
			Region:   region,
		}
	}

	var profiles []Profile
	for _, section := range cfg.Sections() {
		name, ok := strings.CutPrefix(section.Name(), "profile ")
		if !ok {
			continue
		}
		session, ok := sessions[section.Key("sso_session").String()]
		if !ok {
			continue
		}
		accountID := section.Key("sso_account_id").String()
		roleName := section.Key("sso_role_name").String()
		if accountID == "" || roleName == "" {
			continue
		}
		profiles = append(profiles, Profile{
			Name:      name,
			Session:   session,
			AccountID: accountID,
			RoleName:  roleName,
		})
	}

	return profiles, nil
}

// ProfileSet indexes loaded profiles by name.
type ProfileSet struct {
	byName map[string]Profile
	names  []string
}

// NewProfileSet builds a set from loaded profiles, keeping file order.
func NewProfileSet(profiles []Profile) *ProfileSet {
	set := &ProfileSet{byName: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if _, exists := set.byName[p.Name]; exists {
			continue
		}
		set.byName[p.Name] = p
		set.names = append(set.names, p.Name)
	}
	return set
}

// Profile returns the named profile.
func (s *ProfileSet) Profile(name string) (Profile, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Names returns profile names in file order.
func (s *ProfileSet) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}
