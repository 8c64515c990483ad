package dto

import (
	"time"

	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/service"
)

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ActivityResponse struct {
	ID          int64     `json:"id,string"`
	Type        string    `json:"type"`
	SubjectType string    `json:"subject_type"`
	SubjectID   int64     `json:"subject_id,string"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User       UserResponse       `json:"user"`
	Activities []ActivityResponse `json:"activities"`
}

func ToProfileResponse(p *service.Profile) ProfileResponse {
	activities := make([]ActivityResponse, len(p.Activities))
	for i, a := range p.Activities {
		activities[i] = toActivityResponse(a)
	}
	return ProfileResponse{
		User: UserResponse{
			ID:        p.User.ID,
			Name:      p.User.Name,
			CreatedAt: p.User.CreatedAt,
		},
		Activities: activities,
	}
}

func toActivityResponse(a model.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Type:        string(a.Type),
		SubjectType: string(a.SubjectType),
		SubjectID:   a.SubjectID,
		CreatedAt:   a.CreatedAt,
	}
}
