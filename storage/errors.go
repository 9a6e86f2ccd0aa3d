package storage

import "errors"

var ErrScoreboardNotFound = errors.New("scoreboard not found in storage")
var ErrSettingsNotFound = errors.New("settings not found in storage")
var ErrEmptyCollection = errors.New("refusing to store an empty scoreboard collection")
var ErrUnprocessedItems = errors.New("dynamodb left batch write requests unprocessed")
