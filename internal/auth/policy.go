package auth

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	identitydomain "github.com/Apurer/cafe-api/internal/domains/identity/domain"
)

// PublicPath is an allow-list entry evaluated before any credential check.
// Prefix entries match the path itself and anything below it.
type PublicPath struct {
	Path   string
	Prefix bool
}

// Rule restricts a path prefix to a set of roles.
type Rule struct {
	Prefix string
	Roles  identitydomain.RoleSet
}

// Policy is the ordered route table consulted by the Gate. Rules are
// evaluated first-match; a protected path matching no rule only requires a
// valid token.
type Policy struct {
	Public []PublicPath
	Rules  []Rule
}

var (
	staffOnly     = identitydomain.NewRoleSet(identitydomain.RoleAdmin)
	accountHolder = identitydomain.NewRoleSet(identitydomain.RoleAdmin, identitydomain.RoleCustomer)
)

// DefaultPolicy is the café route table.
func DefaultPolicy() Policy {
	return Policy{
		Public: []PublicPath{
			{Path: "/healthz"},
			{Path: "/api"},
			{Path: "/api/auth", Prefix: true},
			{Path: "/api/menu", Prefix: true},
			{Path: "/api/contact", Prefix: true},
			{Path: "/api/cart"},
			{Path: "/api/cart/guest/submit"},
		},
		Rules: []Rule{
			{Prefix: "/api/admin", Roles: staffOnly},
			{Prefix: "/api/orders", Roles: accountHolder},
			{Prefix: "/api/cart/member", Roles: accountHolder},
		},
	}
}

// IsPublic reports whether the cleaned path bypasses authentication.
func (p Policy) IsPublic(requestPath string) bool {
	requestPath = cleanPath(requestPath)
	for _, entry := range p.Public {
		if requestPath == entry.Path {
			return true
		}
		if entry.Prefix && strings.HasPrefix(requestPath, strings.TrimSuffix(entry.Path, "/")+"/") {
			return true
		}
	}
	return false
}

// Authorize applies the first rule whose prefix matches. Rule prefixes match
// as raw string prefixes so near-miss paths stay protected.
func (p Policy) Authorize(requestPath string, role identitydomain.Role) bool {
	requestPath = cleanPath(requestPath)
	for _, rule := range p.Rules {
		if strings.HasPrefix(requestPath, rule.Prefix) {
			return rule.Roles.Contains(role)
		}
	}
	return true
}

// Validate rejects entries that could never match or that grant nothing.
func (p Policy) Validate() error {
	for _, entry := range p.Public {
		if !strings.HasPrefix(entry.Path, "/") {
			return fmt.Errorf("public path %q must start with /", entry.Path)
		}
	}
	for _, rule := range p.Rules {
		if !strings.HasPrefix(rule.Prefix, "/") {
			return fmt.Errorf("rule prefix %q must start with /", rule.Prefix)
		}
		if len(rule.Roles.Roles()) == 0 {
			return fmt.Errorf("rule %q allows no roles", rule.Prefix)
		}
	}
	return nil
}

func cleanPath(requestPath string) string {
	if requestPath == "" {
		return "/"
	}
	return path.Clean("/" + strings.TrimPrefix(requestPath, "/"))
}

type policyFile struct {
	Public []struct {
		Path   string `yaml:"path"`
		Prefix bool   `yaml:"prefix"`
	} `yaml:"public"`
	Rules []struct {
		Prefix string   `yaml:"prefix"`
		Roles  []string `yaml:"roles"`
	} `yaml:"rules"`
}

// ParsePolicy decodes a YAML route table.
func ParsePolicy(raw []byte) (Policy, error) {
	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Policy{}, fmt.Errorf("decode policy: %w", err)
	}
	if len(file.Public) == 0 && len(file.Rules) == 0 {
		return Policy{}, errors.New("policy defines no public paths and no rules")
	}
	var policy Policy
	for _, entry := range file.Public {
		policy.Public = append(policy.Public, PublicPath{Path: strings.TrimSpace(entry.Path), Prefix: entry.Prefix})
	}
	for _, rule := range file.Rules {
		roles := make([]identitydomain.Role, 0, len(rule.Roles))
		for _, name := range rule.Roles {
			role, err := identitydomain.ParseRole(name)
			if err != nil {
				return Policy{}, fmt.Errorf("rule %q: %w: %s", rule.Prefix, err, name)
			}
			roles = append(roles, role)
		}
		policy.Rules = append(policy.Rules, Rule{
			Prefix: strings.TrimSpace(rule.Prefix),
			Roles:  identitydomain.NewRoleSet(roles...),
		})
	}
	if err := policy.Validate(); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

// LoadPolicyFile reads a YAML route table from disk.
func LoadPolicyFile(filename string) (Policy, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}
	return ParsePolicy(raw)
}
