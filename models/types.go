// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strconv"
	"strings"
)

// Storage keys for the two record lists
const (
	PollsKey  = "polls"
	GroupsKey = "groups"
)

// Request types

type CreatePollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
}

type VoteRequest struct {
	Option string `json:"option"`
}

type CreateGroupRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Domain types

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Poll struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Options     []Option `json:"options"`
}

type Group struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Joined      bool   `json:"joined"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NormalizeValue turns a human-readable label into the machine-readable
// option value: trimmed, lowercased, whitespace runs joined with "-".
func NormalizeValue(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

// BuildOptions creates zero-count options for the given labels.
// Values that collide after normalization get a numeric suffix.
func BuildOptions(labels []string) []Option {
	options := make([]Option, 0, len(labels))
	used := make(map[string]bool, len(labels))
	for _, label := range labels {
		base := NormalizeValue(label)
		value := base
		for n := 2; used[value]; n++ {
			value = base + "-" + strconv.Itoa(n)
		}
		used[value] = true
		options = append(options, Option{Value: value, Label: label})
	}
	return options
}

// FindPoll returns the index of the poll with the given id, or -1.
func FindPoll(polls []Poll, id int64) int {
	for i := range polls {
		if polls[i].ID == id {
			return i
		}
	}
	return -1
}

// FindGroup returns the index of the group with the given id, or -1.
func FindGroup(groups []Group, id int64) int {
	for i := range groups {
		if groups[i].ID == id {
			return i
		}
	}
	return -1
}

// FindOption returns the index of the option with the given value, or -1.
func (p Poll) FindOption(value string) int {
	for i := range p.Options {
		if p.Options[i].Value == value {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate options freely.
func (p Poll) Clone() Poll {
	c := p
	c.Options = append([]Option(nil), p.Options...)
	return c
}
