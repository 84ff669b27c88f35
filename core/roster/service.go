package roster

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/lophoc/roster/core"
)

type (
	// Repository persists processed batches and supplies the identifiers
	// already taken in the backing store.
	Repository interface {
		QueryUsedUsernames(ctx context.Context) ([]string, error)
		QueryUsedDisplayNames(ctx context.Context) ([]string, error)
		SaveBatch(ctx context.Context, batch Batch) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) *Service {
	return &Service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		logger:  logger,
	}
}

func (svc *Service) processor(schoolPrefix string) *Processor {
	if schoolPrefix == "" {
		schoolPrefix = svc.conf.SchoolPrefix
	}
	return &Processor{
		SchoolPrefix: schoolPrefix,
		ClassYear:    svc.conf.ClassYear,
	}
}

// Process runs the batch pipeline, seeding conflict resolution with the
// identifiers already present in the backing store plus any extra sets the
// caller supplies (e.g. accounts living only in the remote system).
func (svc *Service) Process(ctx context.Context, rows []Row, schoolPrefix string, extraUsernames, extraDisplayNames []string) (Batch, error) {
	usernames, err := svc.repo.QueryUsedUsernames(ctx)
	if err != nil {
		return Batch{}, err
	}
	displayNames, err := svc.repo.QueryUsedDisplayNames(ctx)
	if err != nil {
		return Batch{}, err
	}
	usernames = append(usernames, extraUsernames...)
	displayNames = append(displayNames, extraDisplayNames...)

	batch := svc.processor(schoolPrefix).Process(rows, usernames, displayNames)
	svc.logger.Info(fmt.Sprintf(
		"batch %s: %d students, %d teachers, %d row errors",
		batch.ID, len(batch.Students), len(batch.Teachers), len(batch.Errors),
	))
	return batch, nil
}

// ProcessAndSave processes rows and persists the resulting records.
func (svc *Service) ProcessAndSave(ctx context.Context, rows []Row, schoolPrefix string, extraUsernames, extraDisplayNames []string) (Batch, error) {
	batch, err := svc.Process(ctx, rows, schoolPrefix, extraUsernames, extraDisplayNames)
	if err != nil {
		return Batch{}, err
	}
	if err := svc.repo.SaveBatch(ctx, batch); err != nil {
		return Batch{}, err
	}
	return batch, nil
}

// EmailReport sends the batch summary with CSV attachments to the
// configured recipient (or an explicit one).
func (svc *Service) EmailReport(batch Batch, recipient string) error {
	if recipient == "" {
		recipient = svc.conf.ReportRecipient
	}
	if recipient == "" {
		return nil // nothing configured, nothing to send
	}
	msg, err := ReportMessage(batch, mail.Address{Address: recipient})
	if err != nil {
		return err
	}
	svc.mailSvc.SendMessages(msg)
	return nil
}
