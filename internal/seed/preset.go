// Package seed fills a database with demo users, posts and activity. Data is
// written through the services so seeded rows obey the same rules as real
// traffic.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset sizes a seeding run.
type Preset struct {
	Users           int `yaml:"users"`
	PostsPerUser    int `yaml:"posts_per_user"`
	ViewsPerPost    int `yaml:"views_per_post"`
	LikesPerPost    int `yaml:"likes_per_post"`
	CommentsPerPost int `yaml:"comments_per_post"`
	// RandomSeed makes generated content reproducible; 0 picks one at random.
	RandomSeed int64 `yaml:"random_seed"`
}

// DefaultPreset is a small data set suitable for local development.
func DefaultPreset() Preset {
	return Preset{
		Users:           12,
		PostsPerUser:    3,
		ViewsPerPost:    5,
		LikesPerPost:    3,
		CommentsPerPost: 2,
	}
}

// LoadPreset reads a YAML preset. Keys left out keep their DefaultPreset value.
func LoadPreset(path string) (Preset, error) {
	p := DefaultPreset()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Preset{}, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return p, p.Validate()
}

// Validate rejects sizes that cannot be honoured. Views, likes and comments
// come from users other than the author, so they are bounded by Users-1.
func (p Preset) Validate() error {
	switch {
	case p.Users < 1:
		return fmt.Errorf("preset: users must be at least 1")
	case p.PostsPerUser < 0 || p.ViewsPerPost < 0 || p.LikesPerPost < 0 || p.CommentsPerPost < 0:
		return fmt.Errorf("preset: counts must not be negative")
	case p.ViewsPerPost > p.Users-1 || p.LikesPerPost > p.Users-1:
		return fmt.Errorf("preset: views_per_post and likes_per_post must be below users (%d)", p.Users)
	}
	return nil
}
