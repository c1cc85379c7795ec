package domain

// User is the authenticated dashboard operator as reported by the Auth API.
// Instances are immutable snapshots: each successful login, refresh or
// who-am-I lookup replaces the whole value, never individual fields.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Roles        []string `json:"roles"`
	PrimaryRole  string   `json:"primary_role,omitempty"`
	RestaurantID int64    `json:"restaurant_id,omitempty"`
}

// NormalizedRoles returns the user's canonical role set. An empty result
// marks the session as corrupt for authorization purposes.
func (u *User) NormalizedRoles() []Role {
	if u == nil {
		return nil
	}
	return NormalizeRoles(u.Roles)
}
