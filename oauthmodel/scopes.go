package oauthmodel

import "strings"

// Access scopes understood by the sheet provider's authorization endpoint.
const (
	ScopeReadSheets      = "READ_SHEETS"
	ScopeWriteSheets     = "WRITE_SHEETS"
	ScopeShareSheets     = "SHARE_SHEETS"
	ScopeDeleteSheets    = "DELETE_SHEETS"
	ScopeCreateSheets    = "CREATE_SHEETS"
	ScopeReadUsers       = "READ_USERS"
	ScopeAdminUsers      = "ADMIN_USERS"
	ScopeAdminSheets     = "ADMIN_SHEETS"
	ScopeAdminWorkspaces = "ADMIN_WORKSPACES"
)

// AllScopes returns every scope the provider defines, in a stable order.
func AllScopes() []string {
	return []string{
		ScopeReadSheets,
		ScopeWriteSheets,
		ScopeShareSheets,
		ScopeDeleteSheets,
		ScopeCreateSheets,
		ScopeReadUsers,
		ScopeAdminUsers,
		ScopeAdminSheets,
		ScopeAdminWorkspaces,
	}
}

// NormalizeScopes trims the requested scopes and drops blanks and duplicates,
// keeping the order in which they were first requested.
func NormalizeScopes(scopes []string) []string {
	seen := make(map[string]struct{}, len(scopes))
	result := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}

// JoinScopes renders scopes the way the scope parameter carries them: space separated.
func JoinScopes(scopes []string) string {
	return strings.Join(NormalizeScopes(scopes), " ")
}

// SplitScopes is the inverse of JoinScopes.
func SplitScopes(scope string) []string {
	return NormalizeScopes(strings.Fields(scope))
}
