package model

import "time"

// Repository represents a public GitHub repository owned by the analyzed user.
type Repository struct {
	ID          int64     `json:"id" yaml:"id"`
	Owner       string    `json:"owner" yaml:"owner"`
	Name        string    `json:"name" yaml:"name"`
	FullName    string    `json:"fullName" yaml:"fullName"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Stars       int       `json:"stars" yaml:"stars"`
	Forks       int       `json:"forks" yaml:"forks"`
	Watchers    int       `json:"watchers" yaml:"watchers"`
	Fork        bool      `json:"fork" yaml:"fork"`
	Language    string    `json:"language,omitempty" yaml:"language,omitempty"`
	HTMLURL     string    `json:"htmlUrl" yaml:"htmlUrl"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Ref returns the lightweight reference for the repository.
func (r Repository) Ref() RepoRef {
	return RepoRef{Owner: r.Owner, Name: r.Name}
}

// RepoRef is a lightweight reference to a repository.
type RepoRef struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// FullName returns the full repository name in owner/repo format.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoRef parses a full name like "owner/repo" into a RepoRef.
func ParseRepoRef(fullName string) RepoRef {
	for i := 0; i < len(fullName); i++ {
		if fullName[i] == '/' {
			return RepoRef{
				Owner: fullName[:i],
				Name:  fullName[i+1:],
			}
		}
	}
	return RepoRef{Name: fullName}
}
