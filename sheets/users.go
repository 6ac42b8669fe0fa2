package sheets

import "context"

// UserProfile is the subset of the user resource returned by /users/me.
type UserProfile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// UserResources groups the user endpoints.
type UserResources struct {
	client *Client
}

// GetCurrentUser returns the profile of the user the access token belongs
// to, or of the assumed user when one is set.
func (u *UserResources) GetCurrentUser(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := u.client.get(ctx, "users/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
