package types

import (
	"encoding/json"
	"fmt"
)

// ParsedType is the category a sentence of chat input was classified into.
type ParsedType string

const (
	ParsedGPA      ParsedType = "gpa"
	ParsedSAT      ParsedType = "sat"
	ParsedACT      ParsedType = "act"
	ParsedActivity ParsedType = "activity"
	ParsedAward    ParsedType = "award"
	ParsedSchool   ParsedType = "school"
	ParsedGoal     ParsedType = "goal"
	ParsedUnknown  ParsedType = "unknown"
)

// ParsedData is the result of classifying one sentence.
// Data holds one of the *Data payload types below, selected by Type.
type ParsedData struct {
	Type       ParsedType `json:"type"`
	Data       any        `json:"data"`
	Confidence Confidence `json:"confidence"`
	Original   string     `json:"original"`
}

// GPAData is the payload for ParsedGPA.
type GPAData struct {
	Value      float64 `json:"value"`
	IsWeighted bool    `json:"isWeighted"`
}

// ScoreData is the payload for ParsedSAT and ParsedACT.
type ScoreData struct {
	Value int `json:"value"`
}

// ActivityData is the payload for ParsedActivity.
type ActivityData struct {
	Title        string `json:"title"`
	IsLeadership bool   `json:"isLeadership"`
}

// AwardData is the payload for ParsedAward.
type AwardData struct {
	Title string     `json:"title"`
	Level AwardLevel `json:"level"`
}

// SchoolData is the payload for ParsedSchool.
type SchoolData struct {
	Name string `json:"name"`
}

// GoalData is the payload for ParsedGoal.
type GoalData struct {
	Title    string       `json:"title"`
	Category GoalCategory `json:"category"`
}

// UnknownData is the payload for ParsedUnknown.
type UnknownData struct {
	Text string `json:"text"`
}

// UnmarshalJSON decodes Data into the concrete payload type named by Type.
func (p *ParsedData) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type       ParsedType      `json:"type"`
		Data       json.RawMessage `json:"data"`
		Confidence Confidence      `json:"confidence"`
		Original   string          `json:"original"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var data any
	switch raw.Type {
	case ParsedGPA:
		data = &GPAData{}
	case ParsedSAT, ParsedACT:
		data = &ScoreData{}
	case ParsedActivity:
		data = &ActivityData{}
	case ParsedAward:
		data = &AwardData{}
	case ParsedSchool:
		data = &SchoolData{}
	case ParsedGoal:
		data = &GoalData{}
	case ParsedUnknown:
		data = &UnknownData{}
	default:
		return fmt.Errorf("unknown parsed type %q", raw.Type)
	}

	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", raw.Type, err)
		}
	}

	p.Type = raw.Type
	p.Confidence = raw.Confidence
	p.Original = raw.Original
	// Store values, not pointers, so decoded results compare equal to fresh ones.
	switch d := data.(type) {
	case *GPAData:
		p.Data = *d
	case *ScoreData:
		p.Data = *d
	case *ActivityData:
		p.Data = *d
	case *AwardData:
		p.Data = *d
	case *SchoolData:
		p.Data = *d
	case *GoalData:
		p.Data = *d
	case *UnknownData:
		p.Data = *d
	}
	return nil
}
