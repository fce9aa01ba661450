// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the records and request types shared by the store,
service and handler packages.

# Records

A Poll owns an ordered list of Options; each option has a machine-readable
value, a human-readable label and a vote count:

	{"id": 1700000000000, "title": "Colors", "description": "",
	 "options": [{"value": "red", "label": "Red", "count": 0}]}

A Group is a title, description and a joined flag.

Both lists are persisted whole under PollsKey and GroupsKey.

# Option Values

NormalizeValue lowercases a label and joins its words with "-". BuildOptions
applies it to a list of labels and suffixes duplicates ("red", "red-2") so a
vote can name its option by value.
*/
package models
