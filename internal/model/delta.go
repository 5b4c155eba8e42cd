package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcceptanceDelta is the row shape shared by the Accepted, AcceptedRemoved
// and AcceptedChanged tables of each question family. UserID is the
// question owner; rows scoped to created_at >= checkpoint are what the
// external trainer reads as "changed since the last pull".
type AcceptanceDelta struct {
	ID         string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestionID string    `gorm:"type:uuid;not null;index" json:"question_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *AcceptanceDelta) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// QuestionKind parameterizes the acceptance state machine over the phone
// and company question families.
type QuestionKind struct {
	Name                 string
	QuestionTable        string
	AnswerTable          string
	AcceptedTable        string
	AcceptedRemovedTable string
	AcceptedChangedTable string
	PointsPerAccept      int
}

// QuestionKinds returns the question-kind registry wired to the configured
// accept point value. Keys are the area names.
func QuestionKinds(acceptPts int) map[string]QuestionKind {
	return map[string]QuestionKind{
		AreaPhone: {
			Name:                 "phone_question",
			QuestionTable:        "phone_questions",
			AnswerTable:          "phone_answers",
			AcceptedTable:        "phone_question_accepted",
			AcceptedRemovedTable: "phone_question_accepted_removed",
			AcceptedChangedTable: "phone_question_accepted_changed",
			PointsPerAccept:      acceptPts,
		},
		AreaCompany: {
			Name:                 "company_question",
			QuestionTable:        "company_questions",
			AnswerTable:          "company_answers",
			AcceptedTable:        "company_question_accepted",
			AcceptedRemovedTable: "company_question_accepted_removed",
			AcceptedChangedTable: "company_question_accepted_changed",
			PointsPerAccept:      acceptPts,
		},
	}
}
