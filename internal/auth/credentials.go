package auth

import (
	model "task-board.com/task-board/internal/models"
)

// CredentialStore is the administrator set loaded at startup. It is never
// mutated afterwards and is safe for concurrent use.
type CredentialStore struct {
	admins    []model.AdminCredential
	usernames map[string]struct{}
}

func NewCredentialStore(admins []model.AdminCredential) *CredentialStore {
	s := &CredentialStore{
		admins:    append([]model.AdminCredential(nil), admins...),
		usernames: make(map[string]struct{}, len(admins)),
	}
	for _, a := range admins {
		s.usernames[a.Username] = struct{}{}
	}
	return s
}

// FindAdmin matches username and password exactly (case-sensitive).
func (s *CredentialStore) FindAdmin(username, password string) (model.AdminCredential, bool) {
	for _, a := range s.admins {
		if a.Username == username && a.Password == password {
			return a, true
		}
	}
	return model.AdminCredential{}, false
}

func (s *CredentialStore) IsAdmin(username string) bool {
	_, ok := s.usernames[username]
	return ok
}

func (s *CredentialStore) Len() int {
	return len(s.admins)
}
