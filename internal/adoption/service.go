package adoption

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"varal/internal/domain"
	"varal/internal/infra"
	"varal/internal/mailer"
)

// Subject is the fixed subject line of the confirmation e-mail.
const Subject = "Confirmação de adoção - Varal dos Sonhos"

// Notifier is the slice of the mailer the workflow needs.
type Notifier interface {
	Send(ctx context.Context, msg mailer.Message) mailer.SendResult
}

// Options wires the workflow's collaborators.
type Options struct {
	Letters      domain.LetterRepository
	Donations    domain.DonationRepository
	Notifier     Notifier
	Logger       *infra.Logger
	Status       domain.DonationStatus
	DeliveryDays int
	Points       int
	Now          func() time.Time
}

// Service runs the adoption workflow: validate, persist the pledge,
// mark the letter taken, notify the donor. Only the pledge write is
// fatal; the other steps fail open and surface as warnings.
type Service struct {
	letters      domain.LetterRepository
	donations    domain.DonationRepository
	notifier     Notifier
	logger       *infra.Logger
	status       domain.DonationStatus
	deliveryDays int
	points       int
	now          func() time.Time
}

// Request is one single-letter adoption.
type Request struct {
	Donor           string
	Email           string
	LetterRef       string
	CollectionPoint string
}

// BatchRequest is the cart form: several letters, one drop-off point.
type BatchRequest struct {
	Donor           string
	Email           string
	LetterRefs      []string
	CollectionPoint string
}

// Warning records a non-fatal sub-step failure.
type Warning struct {
	Step   string
	Detail string
}

// Result reports a successful adoption. Warnings list the best-effort
// steps that did not complete.
type Result struct {
	DonationID  string
	Message     string
	EmailStatus mailer.Status
	Warnings    []Warning
}

// BatchItem is the per-letter outcome of a batch adoption.
type BatchItem struct {
	LetterRef  string
	DonationID string
	Error      string
	Warnings   []Warning
}

// BatchResult aggregates the per-letter outcomes.
type BatchResult struct {
	Items   []BatchItem
	Adopted int
}

// NewService constructs the workflow with defaults matching the site's
// deployment: pledges start awaiting drop-off, due in ten days, and
// each adoption awards ten gamification points.
func NewService(opts Options) *Service {
	status := opts.Status
	if status == "" {
		status = domain.DonationAwaitingDropoff
	}
	deliveryDays := opts.DeliveryDays
	if deliveryDays <= 0 {
		deliveryDays = 10
	}
	points := opts.Points
	if points < 0 {
		points = 0
	} else if points == 0 {
		points = 10
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.Nop()
		l := infra.Logger(discard)
		logger = &l
	}
	return &Service{
		letters:      opts.Letters,
		donations:    opts.Donations,
		notifier:     opts.Notifier,
		logger:       logger,
		status:       status,
		deliveryDays: deliveryDays,
		points:       points,
		now:          now,
	}
}

// Adopt runs the workflow for one letter.
//
// The pledge is durably created before success is reported. The letter
// lookup and status update are best-effort: an unresolvable reference
// still records the pledge (better to record than to block on a
// mismatch), and update failures never roll it back. A letter that
// resolves and is already taken fails the whole request before
// anything is written.
func (s *Service) Adopt(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var warnings []Warning
	letter, err := s.letters.Resolve(ctx, strings.TrimSpace(req.LetterRef))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log().Warn().Err(err).Str("cartinha", req.LetterRef).Msg("adoção: falha ao localizar cartinha")
		}
		warnings = append(warnings, Warning{Step: "cartinha", Detail: fmt.Sprintf("cartinha %q não localizada", req.LetterRef)})
		letter = nil
	}
	if letter != nil && !letter.Available() {
		return nil, domain.ErrLetterAdopted
	}

	createdAt := s.now()
	deliverBy := createdAt.AddDate(0, 0, s.deliveryDays)
	letterLabel := strings.TrimSpace(req.LetterRef)
	letterRef := letterLabel
	if letter != nil {
		letterLabel = letter.Name
		letterRef = letter.ID
	}
	message := fmt.Sprintf(
		"Olá, %s! Sua adoção da cartinha %s foi registrada. Leve o presente ao ponto de coleta %s até %s.",
		strings.TrimSpace(req.Donor), letterLabel, req.CollectionPoint, deliverBy.Format("02/01/2006"),
	)

	donationID, err := s.donations.Create(ctx, &domain.Donation{
		Donor:           strings.TrimSpace(req.Donor),
		Email:           strings.TrimSpace(req.Email),
		LetterRef:       letterRef,
		CollectionPoint: req.CollectionPoint,
		Status:          s.status,
		Message:         message,
		CreatedAt:       createdAt,
		DeliverBy:       deliverBy,
	})
	if err != nil {
		return nil, fmt.Errorf("registrar doação: %w", err)
	}

	if letter != nil {
		if err := s.letters.MarkAdopted(ctx, letter.ID); err != nil {
			s.log().Warn().Err(err).Str("cartinha", letter.ID).Msg("adoção: falha ao atualizar status da cartinha")
			warnings = append(warnings, Warning{Step: "status_cartinha", Detail: err.Error()})
		}
	}

	result := &Result{DonationID: donationID, Message: message, Warnings: warnings}
	if email := strings.TrimSpace(req.Email); email != "" {
		sendResult := s.notifier.Send(ctx, mailer.Message{
			To:      email,
			Subject: Subject,
			Body:    message,
			Points:  s.points,
		})
		result.EmailStatus = sendResult.Status
		if sendResult.Status == mailer.StatusFailed {
			s.log().Warn().Str("destinatario", email).Str("motivo", sendResult.Reason).Msg("adoção: confirmação por e-mail falhou")
			result.Warnings = append(result.Warnings, Warning{Step: "email", Detail: sendResult.Reason})
		}
	} else {
		result.Warnings = append(result.Warnings, Warning{Step: "email", Detail: "doador sem e-mail, confirmação não enviada"})
	}

	return result, nil
}

// AdoptBatch runs the single workflow per letter of the cart. A letter
// that fails does not abort the rest of the cart.
func (s *Service) AdoptBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.LetterRefs) == 0 {
		return nil, fmt.Errorf("%w: carrinho vazio", domain.ErrInvalidRequest)
	}
	batch := &BatchResult{Items: make([]BatchItem, 0, len(req.LetterRefs))}
	for _, ref := range req.LetterRefs {
		result, err := s.Adopt(ctx, Request{
			Donor:           req.Donor,
			Email:           req.Email,
			LetterRef:       ref,
			CollectionPoint: req.CollectionPoint,
		})
		item := BatchItem{LetterRef: ref}
		if err != nil {
			item.Error = err.Error()
		} else {
			item.DonationID = result.DonationID
			item.Warnings = result.Warnings
			batch.Adopted++
		}
		batch.Items = append(batch.Items, item)
	}
	return batch, nil
}

func validate(req Request) error {
	if strings.TrimSpace(req.Donor) == "" {
		return fmt.Errorf("%w: doador é obrigatório", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.LetterRef) == "" {
		return fmt.Errorf("%w: cartinha é obrigatória", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.CollectionPoint) == "" {
		return fmt.Errorf("%w: ponto de coleta é obrigatório", domain.ErrInvalidRequest)
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: e-mail inválido", domain.ErrInvalidRequest)
		}
	}
	return nil
}

func (s *Service) log() *infra.Logger {
	return s.logger
}
