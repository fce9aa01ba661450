// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
)

// SeedFile is the YAML layout accepted by Seed:
//
//	polls:
//	  - title: Favorite Programming Language?
//	    description: Vote for your favorite language!
//	    options: [JavaScript, Python, Go, Rust]
//	groups:
//	  - title: Gophers
type SeedFile struct {
	Polls  []SeedPoll  `yaml:"polls"`
	Groups []SeedGroup `yaml:"groups"`
}

type SeedPoll struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Options     []string `yaml:"options"`
}

type SeedGroup struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// Seed fills each list from the seed file, but only while that list is
// still empty. Invalid entries fail the whole seed.
func Seed(ctx context.Context, seed *SeedFile, polls *PollService, groups *GroupService) error {
	for i, p := range seed.Polls {
		if err := ValidatePoll(models.CreatePollRequest{Title: p.Title, Options: p.Options}); err != nil {
			return fmt.Errorf("seed poll %d: %w", i, err)
		}
	}
	for i, g := range seed.Groups {
		if err := ValidateGroup(models.CreateGroupRequest{Title: g.Title}); err != nil {
			return fmt.Errorf("seed group %d: %w", i, err)
		}
	}

	err := polls.polls.Update(ctx, func(cur []models.Poll) ([]models.Poll, error) {
		if len(cur) > 0 || len(seed.Polls) == 0 {
			return nil, store.ErrSkipWrite
		}
		for _, p := range seed.Polls {
			cur = append(cur, models.Poll{
				ID:          polls.ids.Next(),
				Title:       p.Title,
				Description: p.Description,
				Options:     models.BuildOptions(p.Options),
			})
		}
		slog.Info("seeded polls", "count", len(seed.Polls))
		return cur, nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed polls: %w", err)
	}

	err = groups.groups.Update(ctx, func(cur []models.Group) ([]models.Group, error) {
		if len(cur) > 0 || len(seed.Groups) == 0 {
			return nil, store.ErrSkipWrite
		}
		for _, g := range seed.Groups {
			cur = append(cur, models.Group{
				ID:          groups.ids.Next(),
				Title:       g.Title,
				Description: g.Description,
			})
		}
		slog.Info("seeded groups", "count", len(seed.Groups))
		return cur, nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	return nil
}
