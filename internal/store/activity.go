package store

import (
	"context"

	"basegraph.app/forum/core/db/sqlc"
	"basegraph.app/forum/internal/model"
)

type activityStore struct {
	queries *sqlc.Queries
}

func newActivityStore(queries *sqlc.Queries) ActivityStore {
	return &activityStore{queries: queries}
}

func (s *activityStore) Create(ctx context.Context, activity *model.Activity) error {
	row, err := s.queries.CreateActivity(ctx, sqlc.CreateActivityParams{
		ID:          activity.ID,
		UserID:      activity.UserID,
		SubjectType: string(activity.SubjectType),
		SubjectID:   activity.SubjectID,
		Type:        string(activity.Type),
	})
	if err != nil {
		return err
	}
	*activity = toActivityModel(row)
	return nil
}

func (s *activityStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.Activity, error) {
	rows, err := s.queries.ListActivitiesByUser(ctx, sqlc.ListActivitiesByUserParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	activities := make([]model.Activity, len(rows))
	for i, row := range rows {
		activities[i] = toActivityModel(row)
	}
	return activities, nil
}

func (s *activityStore) DeleteBySubject(ctx context.Context, subjectType model.SubjectType, subjectID int64) error {
	return s.queries.DeleteActivitiesBySubject(ctx, sqlc.DeleteActivitiesBySubjectParams{
		SubjectType: string(subjectType),
		SubjectID:   subjectID,
	})
}

func toActivityModel(row sqlc.Activity) model.Activity {
	return model.Activity{
		ID:          row.ID,
		UserID:      row.UserID,
		SubjectType: model.SubjectType(row.SubjectType),
		SubjectID:   row.SubjectID,
		Type:        model.ActivityType(row.Type),
		CreatedAt:   row.CreatedAt.Time,
	}
}
