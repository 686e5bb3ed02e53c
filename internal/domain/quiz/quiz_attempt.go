package quiz

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// QuestionsPerQuiz is fixed; every stored attempt carries exactly this many.
const QuestionsPerQuiz = 10

// OptionsPerQuestion is the number of answer choices per question.
const OptionsPerQuestion = 4

// Question is one multiple-choice item. Field names are the wire and storage
// format shared with the UI.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type QuizAttempt struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string         `gorm:"column:user_id;not null;index:idx_quiz_attempts_user_created,priority:1" json:"user_id"`
	Topic          string         `gorm:"column:topic;not null" json:"topic"`
	Questions      datatypes.JSON `gorm:"column:questions;not null" json:"questions"`
	Score          int            `gorm:"column:score;not null;default:0" json:"score"`
	TotalQuestions int            `gorm:"column:total_questions;not null;default:10" json:"total_questions"`
	CreatedAt      time.Time      `gorm:"column:created_at;not null;autoCreateTime;index:idx_quiz_attempts_user_created,priority:2" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempts" }

// QuestionList decodes the stored questions column.
func (a *QuizAttempt) QuestionList() ([]Question, error) {
	if a == nil || len(a.Questions) == 0 {
		return nil, nil
	}
	var out []Question
	if err := json.Unmarshal(a.Questions, &out); err != nil {
		return nil, fmt.Errorf("decode questions for attempt %d: %w", a.ID, err)
	}
	return out, nil
}

// EncodeQuestions builds the JSON column value for qs.
func EncodeQuestions(qs []Question) (datatypes.JSON, error) {
	b, err := json.Marshal(qs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
