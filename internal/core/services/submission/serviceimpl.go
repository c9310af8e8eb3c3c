package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
	"gitlab.com/hirecode-2025.net/internal/static/errs"
)

const (
	unknownValue  = "unknown"
	notifyTimeout = 10 * time.Second

	timestampLayout = "2006-01-02T15:04:05.000Z"
	dayLayout       = "2006-01-02"
)

var _ ISubmissionService = (*SubmissionService)(nil)

// SubmissionService implements the ISubmissionService interface
type SubmissionService struct {
	store         secondary.ObjectStore
	index         secondary.SubmissionRepository
	notifiers     []secondary.Notifier
	reviewBaseURL string
	logger        primary.Logger

	now   func() time.Time
	newID func() uuid.UUID

	pending sync.WaitGroup
}

type SubmissionServiceOption func(*SubmissionService)

// WithIndex keeps a postgres index of every stored submission
func WithIndex(index secondary.SubmissionRepository) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.index = index
	}
}

// WithNotifiers announces every new submission on each notifier
func WithNotifiers(notifiers ...secondary.Notifier) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.notifiers = append(s.notifiers, notifiers...)
	}
}

func WithClock(now func() time.Time) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.newID = newID
	}
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	store secondary.ObjectStore,
	reviewBaseURL string,
	logger primary.Logger,
	options ...SubmissionServiceOption,
) *SubmissionService {
	s := &SubmissionService{
		store:         store,
		reviewBaseURL: strings.TrimRight(reviewBaseURL, "/"),
		logger:        logger,
		now:           time.Now,
		newID:         uuid.New,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *SubmissionService) Submit(ctx context.Context, req *domain.SubmissionRequest) (*domain.SubmissionReceipt, error) {
	if req == nil || req.Code == "" || req.Language == "" {
		return nil, errs.CodeAndLanguageRequired
	}

	id := s.newID()
	now := s.now().UTC()
	key := objectKey(now, id)

	sub := domain.Submission{
		Code:       req.Code,
		Language:   req.Language,
		Output:     req.Output,
		AccessCode: orUnknown(req.AccessCode),
		Timestamp:  now.Format(timestampLayout),
		IP:         orUnknown(req.IP),
		UserAgent:  orUnknown(req.UserAgent),
	}
	body, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	loc, err := s.store.Upload(ctx, &domain.StoredObject{
		Key:         key,
		Body:        string(body),
		ContentType: "application/json",
		Metadata: map[string]string{
			"access-code": sub.AccessCode,
			"language":    sub.Language,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	s.logger.Info("Submission stored", "submissionId", id, "key", key, "url", loc.URL, "language", sub.Language)

	if s.index != nil {
		err = s.index.SaveSubmission(ctx, &domain.SubmissionIndex{
			ID:          id,
			ObjectKey:   key,
			Language:    sub.Language,
			AccessCode:  sub.AccessCode,
			ClientIP:    sub.IP,
			SubmittedAt: now,
		})
		if err != nil {
			s.logger.Error("Failed to index submission", "submissionId", id, "error", err)
		}
	}

	s.announce(id, &sub)

	return &domain.SubmissionReceipt{
		SubmissionID: id,
		Key:          key,
		Timestamp:    sub.Timestamp,
	}, nil
}

func (s *SubmissionService) Get(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	key, err := s.locate(ctx, id)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}

	body, err := s.store.Fetch(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission %s: %w", id, err)
	}
	if body == nil {
		return nil, nil
	}

	var sub domain.Submission
	if err := json.Unmarshal([]byte(*body), &sub); err != nil {
		s.logger.Error("Stored submission is not valid JSON", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", errs.MalformedSubmission, err)
	}
	sub.ID = id.String()
	sub.Key = key
	return &sub, nil
}

// Wait blocks until every notification in flight is done
func (s *SubmissionService) Wait() {
	s.pending.Wait()
}

// locate finds the object key of id, from the index when possible
func (s *SubmissionService) locate(ctx context.Context, id uuid.UUID) (string, error) {
	if s.index != nil {
		idx, err := s.index.GetSubmission(ctx, id)
		if err != nil {
			s.logger.Warn("Submission index lookup failed, scanning store", "submissionId", id, "error", err)
		} else if idx != nil {
			return idx.ObjectKey, nil
		}
	}

	keys, err := s.store.ListKeys(ctx, domain.SubmissionKeyPrefix)
	if err != nil {
		return "", fmt.Errorf("failed to list submissions: %w", err)
	}
	needle := id.String()
	for _, key := range keys {
		if strings.Contains(key, needle) {
			return key, nil
		}
	}
	return "", nil
}

func (s *SubmissionService) announce(id uuid.UUID, sub *domain.Submission) {
	if len(s.notifiers) == 0 {
		return
	}

	msg := &domain.Notification{
		SubmissionID: id,
		Subject:      fmt.Sprintf("New %s submission", sub.Language),
		Message: fmt.Sprintf("Language: %s\nAccess code: %s\nSubmitted at: %s\nReview: %s/review/%s",
			sub.Language, sub.AccessCode, sub.Timestamp, s.reviewBaseURL, id),
	}

	for _, n := range s.notifiers {
		s.pending.Add(1)
		go func(n secondary.Notifier) {
			defer s.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()

			if err := n.Notify(ctx, msg); err != nil {
				s.logger.Error("Failed to notify recruiter", "notifier", n.Name(), "submissionId", id, "error", err)
				return
			}
			s.logger.Info("Recruiter notified", "notifier", n.Name(), "submissionId", id)
		}(n)
	}
}

func objectKey(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("%s%s/%s.json", domain.SubmissionKeyPrefix, at.Format(dayLayout), id)
}

func orUnknown(v string) string {
	if v == "" {
		return unknownValue
	}
	return v
}
