package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/go-complaints/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Submission is the validated input of a new complaint.
type Submission struct {
	Title       string
	Description string
	Category    string
}

// Filter narrows the admin listing. Empty fields are ignored; set fields combine with AND.
type Filter struct {
	Status   models.ComplaintStatus
	Category string
	Search   string // case-insensitive substring of the title
}

// StatusCount is one row of the admin summary.
type StatusCount struct {
	Status models.ComplaintStatus `json:"status"`
	Count  int64                  `json:"count"`
}

type ComplaintService struct {
	db  *gorm.DB
	now Clock
}

func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db, now: time.Now}
}

// WithClock replaces the time source.
func (s *ComplaintService) WithClock(c Clock) *ComplaintService {
	s.now = c
	return s
}

// newestFirst orders listings; id breaks ties between equal timestamps.
var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "created_at"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}}

// Submit files a complaint for userID with status open.
func (s *ComplaintService) Submit(ctx context.Context, userID uint, sub Submission) (*models.Complaint, error) {
	now := s.now().UTC()
	c := &models.Complaint{
		UserID:      userID,
		Title:       sub.Title,
		Description: sub.Description,
		Category:    sub.Category,
		Status:      models.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	return c, nil
}

// ListByOwner returns a student's complaints, newest first.
func (s *ComplaintService) ListByOwner(ctx context.Context, userID uint) ([]models.Complaint, error) {
	var out []models.Complaint
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Clauses(newestFirst).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list complaints for user %d: %w", userID, err)
	}
	return out, nil
}

// List returns every complaint matching f, newest first, with submitters preloaded.
func (s *ComplaintService) List(ctx context.Context, f Filter) ([]models.Complaint, error) {
	q := s.db.WithContext(ctx).Model(&models.Complaint{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		// both sides fold in SQL; the sqlite connection registers a Unicode lower()
		q = q.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, "%"+escapeLike(f.Search)+"%")
	}
	var out []models.Complaint
	if err := q.Preload("User").Clauses(newestFirst).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return out, nil
}

// escapeLike neutralizes LIKE wildcards so the search is a literal substring match.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Categories returns the distinct categories in use, sorted.
func (s *ComplaintService) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// CountByStatus returns one entry per known status, including zeros.
func (s *ComplaintService) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := s.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count complaints: %w", err)
	}
	counts := make(map[models.ComplaintStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	out := make([]StatusCount, 0, len(models.Statuses))
	for _, st := range models.Statuses {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}
	return out, nil
}

// Get loads a complaint with its submitter.
func (s *ComplaintService) Get(ctx context.Context, id uint) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.WithContext(ctx).Preload("User").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load complaint %d: %w", id, err)
	}
	return &c, nil
}

// UpdateStatus sets status, remarks and updated_at together.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id uint, status models.ComplaintStatus, remarks string) (*models.Complaint, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	var c models.Complaint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrComplaintNotFound
			}
			return err
		}
		// a map keeps the explicit updated_at instead of gorm's own timestamp
		return tx.Model(&c).Updates(map[string]any{
			"status":        status,
			"admin_remarks": remarks,
			"updated_at":    s.now().UTC(),
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrComplaintNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update complaint %d: %w", id, err)
	}
	return s.Get(ctx, id)
}
