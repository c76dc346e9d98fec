package oidc

import (
	"fmt"

	"github.com/jmespath-community/go-jmespath"
	domainauth "github.com/target/gradebook/internal/domain/auth"
)

// claimMapper turns a raw claims object into an Identity.
// Group membership is located with a JMESPath expression because IdPs disagree on where
// they put it (groups, roles, realm_access.roles, ...).
type claimMapper struct {
	groupsExpr string
}

func newClaimMapper(expr string) (*claimMapper, error) {
	if expr == "" {
		expr = "groups"
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("compile groups claim %q: %w", expr, err)
	}
	return &claimMapper{groupsExpr: expr}, nil
}

func (m *claimMapper) identity(claims map[string]any) (domainauth.Identity, error) {
	groups, err := m.extractGroups(claims)
	if err != nil {
		return domainauth.Identity{}, err
	}
	return domainauth.Identity{
		UserID:    stringClaim(claims, "sub"),
		Email:     firstNonEmpty(stringClaim(claims, "email"), stringClaim(claims, "upn")),
		FirstName: stringClaim(claims, "given_name"),
		LastName:  stringClaim(claims, "family_name"),
		Groups:    groups,
	}, nil
}

func (m *claimMapper) extractGroups(claims map[string]any) ([]string, error) {
	v, err := jmespath.Search(m.groupsExpr, claims)
	if err != nil {
		return nil, fmt.Errorf("evaluate groups claim %q: %w", m.groupsExpr, err)
	}
	switch g := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{g}, nil
	case []any:
		out := make([]string, 0, len(g))
		for _, item := range g {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("groups claim %q is %T, want string list", m.groupsExpr, v)
	}
}

// mergeMissing copies fields from extra into id where id is empty.
func mergeMissing(id *domainauth.Identity, extra domainauth.Identity) {
	if id.UserID == "" {
		id.UserID = extra.UserID
	}
	if id.Email == "" {
		id.Email = extra.Email
	}
	if id.FirstName == "" {
		id.FirstName = extra.FirstName
	}
	if id.LastName == "" {
		id.LastName = extra.LastName
	}
	if len(id.Groups) == 0 {
		id.Groups = extra.Groups
	}
}

func stringClaim(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
