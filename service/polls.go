// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/pollboard/ids"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/store"
)

const (
	MsgPollFieldsRequired = "Please fill in all fields and options."
	MsgSelectOption       = "Please select an option before voting."
)

type PollService struct {
	polls *store.Accessor[[]models.Poll]
	ids   *ids.Generator
}

func NewPollService(reg *store.Registry, gen *ids.Generator) (*PollService, error) {
	polls, err := store.Bind(reg, models.PollsKey, []models.Poll{})
	if err != nil {
		return nil, err
	}
	// Ids written through any path, including a Reload, stay ahead of the generator
	polls.Watch(func(list []models.Poll) {
		for _, p := range list {
			gen.Observe(p.ID)
		}
		slog.Debug("polls changed", "count", len(list))
	})
	return &PollService{polls: polls, ids: gen}, nil
}

// List returns every poll in creation order.
func (s *PollService) List(ctx context.Context) ([]models.Poll, error) {
	polls, err := s.polls.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load polls: %w", err)
	}
	return polls, nil
}

// Get returns ErrNotFound when no poll has the id.
func (s *PollService) Get(ctx context.Context, id int64) (models.Poll, error) {
	polls, err := s.List(ctx)
	if err != nil {
		return models.Poll{}, err
	}
	i := models.FindPoll(polls, id)
	if i < 0 {
		return models.Poll{}, ErrNotFound
	}
	return polls[i], nil
}

// ValidatePoll checks a submission without touching storage.
func ValidatePoll(req models.CreatePollRequest) error {
	if strings.TrimSpace(req.Title) == "" || len(req.Options) == 0 {
		return invalid(MsgPollFieldsRequired)
	}
	for _, label := range req.Options {
		if strings.TrimSpace(label) == "" {
			return invalid(MsgPollFieldsRequired)
		}
	}
	return nil
}

// Create appends a new poll with zero-count options and persists the list.
func (s *PollService) Create(ctx context.Context, req models.CreatePollRequest) (models.Poll, error) {
	if err := ValidatePoll(req); err != nil {
		return models.Poll{}, err
	}

	poll := models.Poll{
		ID:          s.ids.Next(),
		Title:       req.Title,
		Description: req.Description,
		Options:     models.BuildOptions(req.Options),
	}

	err := s.polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		return append(polls, poll), nil
	})
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to save polls: %w", err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "options", len(poll.Options))
	return poll, nil
}

// Vote adds one to the count of the option with the given value.
func (s *PollService) Vote(ctx context.Context, id int64, value string) (models.Poll, error) {
	if strings.TrimSpace(value) == "" {
		return models.Poll{}, invalid(MsgSelectOption)
	}

	var voted models.Poll
	err := s.polls.Update(ctx, func(polls []models.Poll) ([]models.Poll, error) {
		i := models.FindPoll(polls, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		o := polls[i].FindOption(value)
		if o < 0 {
			return nil, invalid(MsgSelectOption)
		}
		polls[i].Options[o].Count++
		voted = polls[i].Clone()
		return polls, nil
	})
	if err != nil {
		return models.Poll{}, err
	}

	slog.Info("vote recorded", "poll_id", id, "option", value)
	return voted, nil
}

// Prime makes the id generator aware of persisted polls.
func (s *PollService) Prime(ctx context.Context) error {
	polls, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range polls {
		s.ids.Observe(p.ID)
	}
	return nil
}
