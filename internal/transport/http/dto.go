package httpapi

import (
	"time"

	"github.com/google/uuid"

	"standup-tracker/internal/domain/entity"
)

type standupDTO struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	RepoFullName  string          `json:"repoFullName"`
	Date          string          `json:"date"`
	WorkCompleted string          `json:"workCompleted"`
	WorkPlanned   string          `json:"workPlanned"`
	Blockers      string          `json:"blockers"`
	TaskIDs       []string        `json:"taskIds"`
	Commits       []entity.Commit `json:"commits"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func toStandupDTO(s *entity.StandupEntry) standupDTO {
	taskIDs := s.TaskIDs
	if taskIDs == nil {
		taskIDs = []string{}
	}
	commits := s.Commits
	if commits == nil {
		commits = []entity.Commit{}
	}
	return standupDTO{
		ID:            s.ID.String(),
		UserID:        s.UserID,
		RepoFullName:  s.RepoFullName,
		Date:          s.Date,
		WorkCompleted: s.WorkCompleted,
		WorkPlanned:   s.WorkPlanned,
		Blockers:      s.Blockers,
		TaskIDs:       taskIDs,
		Commits:       commits,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toStandupDTOs(entries []*entity.StandupEntry) []standupDTO {
	out := make([]standupDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toStandupDTO(e))
	}
	return out
}

type milestoneDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetDate  *string   `json:"targetDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMilestoneDTO(m *entity.Milestone) milestoneDTO {
	return milestoneDTO{
		ID:          m.ID.String(),
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		TargetDate:  m.TargetDate,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type sprintDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	MilestoneID  *string   `json:"milestoneId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Status       string    `json:"status"`
	TargetPoints *int32    `json:"targetPoints"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toSprintDTO(s *entity.Sprint) sprintDTO {
	dto := sprintDTO{
		ID:           s.ID.String(),
		UserID:       s.UserID,
		Title:        s.Title,
		Description:  s.Description,
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		Status:       string(s.Status),
		TargetPoints: s.TargetPoints,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.MilestoneID != nil {
		id := s.MilestoneID.String()
		dto.MilestoneID = &id
	}
	return dto
}

type taskDTO struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	SprintID         *string    `json:"sprintId"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	StoryPoints      *int32     `json:"storyPoints"`
	StoryPointSystem *string    `json:"storyPointSystem"`
	ExternalID       *string    `json:"externalId"`
	ExternalSource   *string    `json:"externalSource"`
	ExternalURL      *string    `json:"externalUrl"`
	TargetDate       *string    `json:"targetDate"`
	CompletedAt      *time.Time `json:"completedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toTaskDTO(t *entity.Task) taskDTO {
	dto := taskDTO{
		ID:               t.ID.String(),
		UserID:           t.UserID,
		Title:            t.Title,
		Description:      t.Description,
		Status:           string(t.Status),
		StoryPoints:      t.StoryPoints,
		StoryPointSystem: t.StoryPointSystem,
		ExternalID:       t.ExternalID,
		ExternalSource:   t.ExternalSource,
		ExternalURL:      t.ExternalURL,
		TargetDate:       t.TargetDate,
		CompletedAt:      t.CompletedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.SprintID != nil {
		id := t.SprintID.String()
		dto.SprintID = &id
	}
	return dto
}

type userDTO struct {
	ID               string  `json:"id"`
	Login            string  `json:"login"`
	Name             string  `json:"name"`
	AvatarURL        string  `json:"avatarUrl"`
	Email            *string `json:"email"`
	RemindersEnabled bool    `json:"remindersEnabled"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		ID:               u.ID,
		Login:            u.Login,
		Name:             u.Name,
		AvatarURL:        u.AvatarURL,
		Email:            u.Email,
		RemindersEnabled: u.RemindersEnabled,
	}
}

// parseOptionalUUID parses a UUID query parameter, returning nil for "".
func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
