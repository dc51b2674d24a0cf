package user

import "fmt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]User, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	return users, nil
}

func (s *Service) GetByID(id string) (User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return User{}, err
		}
		return User{}, fmt.Errorf("error fetching user by ID: %w", err)
	}
	return user, nil
}

func (s *Service) Create(user User) (User, error) {
	created, err := s.repo.Create(user)
	if err != nil {
		return User{}, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

func (s *Service) Update(id string, patch Patch) (User, error) {
	updated, err := s.repo.Update(id, patch)
	if err != nil {
		if err == ErrNotFound {
			return User{}, err
		}
		return User{}, fmt.Errorf("error updating user: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(id string) (User, error) {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		if err == ErrNotFound {
			return User{}, err
		}
		return User{}, fmt.Errorf("error deleting user: %w", err)
	}
	return deleted, nil
}
