package model

import "time"

type (
	ActivityType string
	SubjectType  string
)

const (
	ActivityTypeCreatedIssue ActivityType = "created_issue"
	ActivityTypeCreatedReply ActivityType = "created_reply"
)

const (
	SubjectTypeIssue SubjectType = "issue"
	SubjectTypeReply SubjectType = "reply"
)

type Activity struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	SubjectType SubjectType  `json:"subject_type"`
	SubjectID   int64        `json:"subject_id"`
	Type        ActivityType `json:"type"`
	CreatedAt   time.Time    `json:"created_at"`
}
