// Typed accessors over the fixed key space. Collections are JSON-encoded on
// write and decoded on read; list getters return empty slices for missing
// keys, never nil-means-absent.
package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/atlaseng/fieldbook/pkg/types"
)

// bootstrapAdminID identifies the administrator created on first run. The ID
// is fixed so repeated bootstraps stay byte-identical.
const bootstrapAdminID = "user-admin"

// Projects returns the stored project collection. A missing key yields an
// empty slice.
func (s *Store) Projects() ([]types.Project, error) {
	var projects []types.Project
	if err := s.getJSON(KeyProjects, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []types.Project{}
	}
	return projects, nil
}

// SetProjects overwrites the stored project collection.
func (s *Store) SetProjects(projects []types.Project) error {
	return s.setJSON(KeyProjects, projects)
}

// Users returns the stored user collection. A missing key yields an empty slice.
func (s *Store) Users() ([]types.User, error) {
	var users []types.User
	if err := s.getJSON(KeyUsers, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []types.User{}
	}
	return users, nil
}

// SetUsers overwrites the stored user collection.
func (s *Store) SetUsers(users []types.User) error {
	return s.setJSON(KeyUsers, users)
}

// Messages returns the stored message collection. A missing key yields an
// empty slice.
func (s *Store) Messages() ([]types.Message, error) {
	var messages []types.Message
	if err := s.getJSON(KeyMessages, &messages); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []types.Message{}
	}
	return messages, nil
}

// SetMessages overwrites the stored message collection.
func (s *Store) SetMessages(messages []types.Message) error {
	return s.setJSON(KeyMessages, messages)
}

// Settings returns the stored application settings, or the defaults when
// none have been saved yet.
func (s *Store) Settings() (types.Settings, error) {
	raw, ok := s.Get(KeySettings)
	if !ok {
		return types.DefaultSettings(), nil
	}
	var settings types.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return types.Settings{}, fmt.Errorf("%w: decoding %s: %v", types.ErrSerialization, KeySettings, err)
	}
	return settings, nil
}

// SetSettings overwrites the stored application settings.
func (s *Store) SetSettings(settings types.Settings) error {
	return s.setJSON(KeySettings, settings)
}

// InitializeEmptyData bootstraps the key space on first run. Each key is
// written only if currently absent, so calling this on every process start
// is safe: projects and messages default to empty collections, users to a
// single administrator account.
func (s *Store) InitializeEmptyData() error {
	if _, ok := s.Get(KeyProjects); !ok {
		if err := s.SetProjects([]types.Project{}); err != nil {
			return err
		}
	}
	if _, ok := s.Get(KeyMessages); !ok {
		if err := s.SetMessages([]types.Message{}); err != nil {
			return err
		}
	}
	if _, ok := s.Get(KeyUsers); !ok {
		admin := types.User{
			ID:    bootstrapAdminID,
			Name:  "Administrator",
			Email: "admin@fieldbook.local",
			Role:  types.RoleAdmin,
		}
		if err := s.SetUsers([]types.User{admin}); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll removes the four entity keys unconditionally. The engine snapshot
// key is deliberately untouched; a hard reset must not destroy the engine's
// durable image.
func (s *Store) ClearAll() error {
	for _, key := range []string{KeyProjects, KeyUsers, KeyMessages, KeySettings} {
		if err := s.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// getJSON decodes the value under key into out. A missing key leaves out
// untouched.
func (s *Store) getJSON(key string, out any) error {
	raw, ok := s.Get(key)
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", types.ErrSerialization, key, err)
	}
	return nil
}

// setJSON encodes v and stores it under key.
func (s *Store) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", types.ErrSerialization, key, err)
	}
	return s.Set(key, string(raw))
}
