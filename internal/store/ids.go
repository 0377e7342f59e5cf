package store

import (
	"github.com/google/uuid"

	"github.com/mrz1836/assetrack/internal/constants"
)

func newProjectID() string {
	return constants.ProjectIDPrefix + uuid.NewString()
}

func newItemID() string {
	return constants.ItemIDPrefix + uuid.NewString()
}

func newHistoryID() string {
	return constants.HistoryIDPrefix + uuid.NewString()
}
