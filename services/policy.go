// services/policy.go
package services

import "basketball-league/models"

// Policy is one capability check. Routes compose several.
type Policy interface {
	Allow(user *models.User) bool
}

type PolicyFunc func(user *models.User) bool

func (f PolicyFunc) Allow(user *models.User) bool { return f(user) }

func IsAdmin(user *models.User) bool  { return hasRole(user, models.RoleAdmin) }
func IsCoach(user *models.User) bool  { return hasRole(user, models.RoleCoach) }
func IsPlayer(user *models.User) bool { return hasRole(user, models.RolePlayer) }

func hasRole(user *models.User, role string) bool {
	return user != nil && user.Role == role
}

// OwnsTeam reports whether user coaches team.
func OwnsTeam(user *models.User, team *models.Team) bool {
	return user != nil && team != nil && user.ID != "" && team.CoachID == user.ID
}

var (
	RequireAdmin  Policy = PolicyFunc(IsAdmin)
	RequireCoach  Policy = PolicyFunc(IsCoach)
	RequirePlayer Policy = PolicyFunc(IsPlayer)
)

// RequireTeamOwner allows only the coach of team.
func RequireTeamOwner(team *models.Team) Policy {
	return PolicyFunc(func(user *models.User) bool { return OwnsTeam(user, team) })
}

// Authorize fails with ErrUnauthorized without a user and with
// ErrForbidden on the first policy that denies.
func Authorize(user *models.User, policies ...Policy) error {
	if user == nil {
		return ErrUnauthorized
	}
	for _, p := range policies {
		if !p.Allow(user) {
			return ErrForbidden
		}
	}
	return nil
}
