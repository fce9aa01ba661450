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

const MsgGroupFieldsRequired = "Please fill in all fields."

type GroupService struct {
	groups *store.Accessor[[]models.Group]
	ids    *ids.Generator
}

func NewGroupService(reg *store.Registry, gen *ids.Generator) (*GroupService, error) {
	groups, err := store.Bind(reg, models.GroupsKey, []models.Group{})
	if err != nil {
		return nil, err
	}
	groups.Watch(func(list []models.Group) {
		for _, g := range list {
			gen.Observe(g.ID)
		}
		slog.Debug("groups changed", "count", len(list))
	})
	return &GroupService{groups: groups, ids: gen}, nil
}

func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groups.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	return groups, nil
}

func ValidateGroup(req models.CreateGroupRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return invalid(MsgGroupFieldsRequired)
	}
	return nil
}

func (s *GroupService) Create(ctx context.Context, req models.CreateGroupRequest) (models.Group, error) {
	if err := ValidateGroup(req); err != nil {
		return models.Group{}, err
	}

	group := models.Group{
		ID:          s.ids.Next(),
		Title:       req.Title,
		Description: req.Description,
	}

	err := s.groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		return append(groups, group), nil
	})
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to save groups: %w", err)
	}

	slog.Info("group created", "group_id", group.ID)
	return group, nil
}

// Join marks the group as joined. Joining twice does not write again.
func (s *GroupService) Join(ctx context.Context, id int64) (models.Group, error) {
	var joined models.Group
	err := s.groups.Update(ctx, func(groups []models.Group) ([]models.Group, error) {
		i := models.FindGroup(groups, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		joined = groups[i]
		if groups[i].Joined {
			return nil, store.ErrSkipWrite
		}
		groups[i].Joined = true
		joined.Joined = true
		return groups, nil
	})
	if err != nil {
		return models.Group{}, err
	}

	slog.Info("group joined", "group_id", id)
	return joined, nil
}

func (s *GroupService) Prime(ctx context.Context) error {
	groups, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		s.ids.Observe(g.ID)
	}
	return nil
}
