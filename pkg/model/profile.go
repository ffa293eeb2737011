package model

import "time"

// Profile is the public GitHub account a run analyzes.
type Profile struct {
	Login       string    `json:"login" yaml:"login"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	AvatarURL   string    `json:"avatarUrl" yaml:"avatarUrl"`
	Bio         string    `json:"bio,omitempty" yaml:"bio,omitempty"`
	HTMLURL     string    `json:"htmlUrl" yaml:"htmlUrl"`
	PublicRepos int       `json:"publicRepos" yaml:"publicRepos"`
	Followers   int       `json:"followers" yaml:"followers"`
	Following   int       `json:"following" yaml:"following"`
	CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// DisplayName returns the profile name, falling back to the login.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}
