package enum

import "encoding/json"

// GoalStatus represents the lifecycle state of a goal
type GoalStatus int

const (
	GoalStatusActive       GoalStatus = 0
	GoalStatusAccomplished GoalStatus = 1
	GoalStatusTrashed      GoalStatus = 2
)

func (s GoalStatus) String() string {
	return [...]string{"active", "accomplished", "trashed"}[s]
}

func (s GoalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *GoalStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = GoalStatus(i)
		return nil
	}
	switch str {
	case "active":
		*s = GoalStatusActive
	case "accomplished":
		*s = GoalStatusAccomplished
	case "trashed":
		*s = GoalStatusTrashed
	}
	return nil
}
