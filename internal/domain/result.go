package domain

import "time"

// ScoreDelta es la diferencia por polo contra el resultado anterior.
type ScoreDelta map[string]int

type TestResult struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	PersonalityType    PersonalityType `json:"personality_type"`
	Scores             ScoreVector     `json:"scores"`
	Description        string          `json:"description"`
	Notes              string          `json:"notes"`
	ChangeFromPrevious ScoreDelta      `json:"change_from_previous"`
	// Seq lo asigna el store al insertar; desempata CreatedAt iguales.
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
