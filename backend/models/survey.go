package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SurveyResult stores one completed self-diagnosis: the raw answers plus the
// derived per-area and overall scores, so history can be shown without
// recomputing against an old question set.
type SurveyResult struct {
	gorm.Model
	UserID     uint           `gorm:"index;not null"`
	Answers    datatypes.JSON // ordered answer values as submitted
	AreaScores datatypes.JSON // area name -> average score
	Overall    int            // 0..100
	Level      string         // low, moderate, high
}
