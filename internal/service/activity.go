package service

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/forum/common/id"
	"basegraph.app/forum/internal/model"
	"basegraph.app/forum/internal/store"
)

const profileActivityLimit = 50

// ActivityRecorder writes feed entries. Bind it to a transaction's ActivityStore
// so the entry commits or rolls back with its subject.
type ActivityRecorder struct {
	activities store.ActivityStore
}

func NewActivityRecorder(activities store.ActivityStore) *ActivityRecorder {
	return &ActivityRecorder{activities: activities}
}

func (r *ActivityRecorder) Record(ctx context.Context, userID int64, subjectType model.SubjectType, subjectID int64, typ model.ActivityType) error {
	activity := &model.Activity{
		ID:          id.New(),
		UserID:      userID,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Type:        typ,
	}
	if err := r.activities.Create(ctx, activity); err != nil {
		return fmt.Errorf("recording %s activity: %w", typ, err)
	}
	return nil
}

// Forget removes every entry about a subject.
func (r *ActivityRecorder) Forget(ctx context.Context, subjectType model.SubjectType, subjectID int64) error {
	if err := r.activities.DeleteBySubject(ctx, subjectType, subjectID); err != nil {
		return fmt.Errorf("deleting %s activities: %w", subjectType, err)
	}
	return nil
}

type Profile struct {
	User       *model.User
	Activities []model.Activity
}

type ProfileService interface {
	Get(ctx context.Context, name string) (*Profile, error)
}

type profileService struct {
	users      store.UserStore
	activities store.ActivityStore
}

func NewProfileService(users store.UserStore, activities store.ActivityStore) ProfileService {
	return &profileService{users: users, activities: activities}
}

// Get returns the user and their latest activities, newest first.
func (s *profileService) Get(ctx context.Context, name string) (*Profile, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	activities, err := s.activities.ListByUser(ctx, user.ID, profileActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	return &Profile{User: user, Activities: activities}, nil
}
