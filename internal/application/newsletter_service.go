package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/khalilbouhlel1/threadly-api/config"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/repository"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
	"github.com/khalilbouhlel1/threadly-api/pkg/mailer"
)

var (
	ErrAlreadySubscribed = errors.New("this email is already subscribed")
	ErrNoSubscribers     = errors.New("no active subscribers found")
	ErrUnknownToken      = errors.New("unknown unsubscribe token")
	ErrQueueUnavailable  = errors.New("email queue unavailable")
)

type NewsletterService struct {
	Repo   repository.SubscriberRepository
	Pub    Publisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewNewsletterService(repo repository.SubscriberRepository, pub Publisher, logger *logrus.Logger, cfg *config.Config) *NewsletterService {
	return &NewsletterService{Repo: repo, Pub: pub, Logger: logger, Cfg: cfg}
}

// Subscribe adds an email to the mailing list with a fresh unsubscribe
// token. Duplicates surface as ErrAlreadySubscribed.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*entity.Subscriber, error) {
	token, err := helpers.GenToken(32)
	if err != nil {
		return nil, err
	}
	sub := &entity.Subscriber{
		Email:            email,
		SubscribedAt:     time.Now(),
		IsActive:         true,
		UnsubscribeToken: token,
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return sub, nil
}

// Broadcast collects the active subscriber emails and enqueues a single
// blind-copied send. Returns the recipient count.
func (s *NewsletterService) Broadcast(ctx context.Context, subject, content string) (int, error) {
	subs, err := s.Repo.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	if len(subs) == 0 {
		return 0, ErrNoSubscribers
	}
	if s.Pub == nil {
		return 0, ErrQueueUnavailable
	}

	emails := make([]string, 0, len(subs))
	for _, sub := range subs {
		emails = append(emails, sub.Email)
	}

	unsubscribeURL := ""
	if s.Cfg != nil {
		unsubscribeURL = s.Cfg.UnsubscribeURL
	}
	job := mailer.EmailJob{
		Bcc:      emails,
		Subject:  subject,
		Template: "newsletter",
		Data: map[string]any{
			"Content":        content,
			"UnsubscribeURL": unsubscribeURL,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("failed to enqueue newsletter broadcast")
		}
		return 0, err
	}
	return len(emails), nil
}

// Unsubscribe flips the active flag for the subscriber owning the token.
// The record itself is never deleted.
func (s *NewsletterService) Unsubscribe(ctx context.Context, token string) error {
	sub, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownToken
		}
		return err
	}
	if !sub.IsActive {
		return nil
	}
	sub.IsActive = false
	return s.Repo.Update(ctx, sub)
}
