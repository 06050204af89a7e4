package repository

import (
	"encoding/json"
	"fmt"

	"github.com/fastygo/studyplanner/domain"
)

// EncodeSnapshot serializes the collection as a JSON array. A nil slice is
// written as [] so an emptied list is distinguishable from a missing key.
func EncodeSnapshot(activities []domain.Activity) ([]byte, error) {
	if activities == nil {
		activities = []domain.Activity{}
	}
	payload, err := json.Marshal(activities)
	if err != nil {
		return nil, fmt.Errorf("encode activities: %w", err)
	}
	return payload, nil
}

// DecodeSnapshot parses a stored JSON array.
func DecodeSnapshot(payload []byte) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := json.Unmarshal(payload, &activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, nil
}
