package service

import (
	"context"
	"time"
	"unicode/utf8"

	"taskhub/internal/db"
	"taskhub/internal/domain"
	"taskhub/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateTaskParams are the caller-supplied fields of a new task. Optional
// fields default server-side: completed false, priority "medium".
type CreateTaskParams struct {
	Title       string
	Description *string
	Completed   bool
	DueDate     *time.Time
	Priority    *string
}

// TaskService runs every task operation behind the ownership checks:
// the path owner is verified before any fetch, and single-resource
// operations re-verify the loaded row's owner. Mutations run in one
// transaction that rolls back on any failure.
type TaskService struct {
	pool *pgxpool.Pool
}

func NewTaskService(pool *pgxpool.Pool) *TaskService {
	return &TaskService{pool: pool}
}

func (s *TaskService) List(ctx context.Context, session *domain.Account, pathUserID string, f domain.TaskFilter) ([]*domain.Task, int64, error) {
	if err := AuthorizePathOwner(session, pathUserID); err != nil {
		return nil, 0, err
	}
	return repository.NewTaskRepository(s.pool).List(ctx, session.ID, f)
}

func (s *TaskService) Create(ctx context.Context, session *domain.Account, pathUserID string, p CreateTaskParams) (*domain.Task, error) {
	if err := AuthorizePathOwner(session, pathUserID); err != nil {
		return nil, err
	}
	if err := validateTitle(p.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(p.Description); err != nil {
		return nil, err
	}

	t := &domain.Task{
		UserID:      session.ID,
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		DueDate:     p.DueDate,
		Priority:    domain.DefaultPriority,
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}

	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return repository.NewTaskRepository(tx).Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Get(ctx context.Context, session *domain.Account, pathUserID string, taskID int64) (*domain.Task, error) {
	if err := AuthorizePathOwner(session, pathUserID); err != nil {
		return nil, err
	}
	t, err := repository.NewTaskRepository(s.pool).GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeResourceOwner(session, t.UserID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, session *domain.Account, pathUserID string, taskID int64, u domain.TaskUpdate) (*domain.Task, error) {
	if err := AuthorizePathOwner(session, pathUserID); err != nil {
		return nil, err
	}
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return nil, err
		}
	}
	if err := validateDescription(u.Description); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		repo := repository.NewTaskRepository(tx)
		cur, err := repo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := AuthorizeResourceOwner(session, cur.UserID); err != nil {
			return err
		}
		updated, err = repo.Update(ctx, session.ID, taskID, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetCompleted sets the completion flag to the supplied value; it never
// flips the stored one.
func (s *TaskService) SetCompleted(ctx context.Context, session *domain.Account, pathUserID string, taskID int64, completed bool) (*domain.Task, error) {
	if err := AuthorizePathOwner(session, pathUserID); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		repo := repository.NewTaskRepository(tx)
		cur, err := repo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := AuthorizeResourceOwner(session, cur.UserID); err != nil {
			return err
		}
		updated, err = repo.SetCompleted(ctx, session.ID, taskID, completed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, session *domain.Account, pathUserID string, taskID int64) error {
	if err := AuthorizePathOwner(session, pathUserID); err != nil {
		return err
	}

	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		repo := repository.NewTaskRepository(tx)
		cur, err := repo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if err := AuthorizeResourceOwner(session, cur.UserID); err != nil {
			return err
		}
		return repo.Delete(ctx, session.ID, taskID)
	})
}

func validateTitle(title string) error {
	if title == "" {
		return domain.Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLen {
		return domain.Validationf("title must be %d characters or less", domain.MaxTitleLen)
	}
	return nil
}

func validateDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > domain.MaxDescriptionLen {
		return domain.Validationf("description must be %d characters or less", domain.MaxDescriptionLen)
	}
	return nil
}
