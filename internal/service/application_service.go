package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/domain"
	"github.com/spec-kit/supply-portal/internal/events"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/session"
	apperrors "github.com/spec-kit/supply-portal/pkg/util/errorutil"
)

// ApplicationService coordinates application workflows.
type ApplicationService struct {
	applications repository.ApplicationRepository
	products     repository.ProductRepository
	history      repository.ApplicationHistoryRepository
	transactor   repository.ApplicationTransactor
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	ProductRepo     repository.ProductRepository
	HistoryRepo     repository.ApplicationHistoryRepository
	Transactor      repository.ApplicationTransactor
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// ApplicationInput describes the writable fields of an application.
type ApplicationInput struct {
	ProductID   *string
	Title       string
	Description string
	Quantity    int
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		products:     deps.ProductRepo,
		history:      deps.HistoryRepo,
		transactor:   deps.Transactor,
		dispatcher:   deps.Dispatcher,
		logger:       logger,
	}
}

// Create files a new application for a user account.
func (s *ApplicationService) Create(ctx context.Context, owner session.Owner, in ApplicationInput) (*domain.Application, error) {
	if owner.Kind != session.OwnerUser {
		return nil, apperrors.NewForbidden("only user accounts may file applications")
	}
	if err := s.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	app := &domain.Application{
		AccountID:   owner.ID,
		ProductID:   in.ProductID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Quantity:    quantityOrDefault(in.Quantity),
		Status:      domain.ApplicationStatusNew,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationCreated,
		ApplicationID: app.ID,
		Actor:         events.ActorFromOwner(owner),
		Payload: events.ApplicationCreatedPayload{
			AccountID: app.AccountID,
			ProductID: app.ProductID,
			Title:     app.Title,
			Quantity:  app.Quantity,
		},
	})
	return app, nil
}

// List returns the caller's applications, or every application for admins.
func (s *ApplicationService) List(ctx context.Context, owner session.Owner, status *domain.ApplicationStatus) ([]domain.Application, error) {
	filter := domain.ApplicationFilter{Status: status}
	if !owner.IsAdmin() {
		id := owner.ID
		filter.AccountID = &id
	}
	return s.applications.List(ctx, filter)
}

// Get fetches an application visible to owner.
func (s *ApplicationService) Get(ctx context.Context, owner session.Owner, id string) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application", id)
	}
	if !canModify(owner, &app.AccountID) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return app, nil
}

// Update rewrites the content of an application. Owners may only edit while
// it is still NEW.
func (s *ApplicationService) Update(ctx context.Context, owner session.Owner, id string, in ApplicationInput) (*domain.Application, error) {
	app, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !owner.IsAdmin() && app.Status != domain.ApplicationStatusNew {
		return nil, apperrors.NewConflict("application can no longer be edited", map[string]any{"status": app.Status})
	}
	if err := s.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	before := contentSnapshot(app)
	app.ProductID = in.ProductID
	app.Title = strings.TrimSpace(in.Title)
	app.Description = strings.TrimSpace(in.Description)
	app.Quantity = quantityOrDefault(in.Quantity)

	var requireStatus *domain.ApplicationStatus
	if !owner.IsAdmin() {
		status := domain.ApplicationStatusNew
		requireStatus = &status
	}
	err = s.withinTx(ctx, func(tx repository.ApplicationTx) error {
		if err := tx.Applications.UpdateContent(ctx, app, requireStatus); err != nil {
			return err
		}
		return record(ctx, tx.History, owner, app.ID, domain.ChangeTypeContent, before, contentSnapshot(app))
	})
	if err != nil {
		return nil, s.staleWrite(ctx, err, id)
	}
	return app, nil
}

// UpdateStatus moves an application through its lifecycle.
func (s *ApplicationService) UpdateStatus(ctx context.Context, owner session.Owner, id string, next domain.ApplicationStatus) (*domain.Application, error) {
	if !owner.IsAdmin() {
		return nil, apperrors.NewForbidden("only administrators may change application status")
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("unknown application status", map[string]any{"status": next})
	}
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "application", id)
	}
	if app.Status == next {
		return app, nil
	}
	if !isValidTransition(app.Status, next) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": app.Status,
			"to":   next,
		})
	}

	oldStatus := app.Status
	err = s.withinTx(ctx, func(tx repository.ApplicationTx) error {
		updated, err := tx.Applications.UpdateStatus(ctx, id, oldStatus, next)
		if err != nil {
			return err
		}
		app = updated
		return record(ctx, tx.History, owner, app.ID, domain.ChangeTypeStatus,
			map[string]any{"status": oldStatus},
			map[string]any{"status": next},
		)
	})
	if err != nil {
		return nil, s.staleWrite(ctx, err, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationStatusChanged,
		ApplicationID: app.ID,
		Actor:         events.ActorFromOwner(owner),
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return app, nil
}

// Delete removes an application visible to owner.
func (s *ApplicationService) Delete(ctx context.Context, owner session.Owner, id string) error {
	app, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.applications.Delete(ctx, id); err != nil {
		return notFoundOr(err, "application", id)
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventApplicationDeleted,
		ApplicationID: app.ID,
		Actor:         events.ActorFromOwner(owner),
		Payload: events.ApplicationDeletedPayload{
			AccountID: app.AccountID,
			Status:    app.Status,
		},
	})
	return nil
}

// History returns the audit trail of an application visible to owner.
func (s *ApplicationService) History(ctx context.Context, owner session.Owner, id string) ([]domain.ApplicationHistory, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.ApplicationHistory{}, nil
	}
	return s.history.ListByApplication(ctx, id)
}

func (s *ApplicationService) withinTx(ctx context.Context, fn func(tx repository.ApplicationTx) error) error {
	if s.transactor == nil {
		return fn(repository.ApplicationTx{Applications: s.applications, History: s.history})
	}
	return s.transactor.WithinTx(ctx, fn)
}

// staleWrite turns a guarded write that matched no row into 404 when the
// application is gone and 409 when its status moved underneath us.
func (s *ApplicationService) staleWrite(ctx context.Context, err error, id string) error {
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	current, getErr := s.applications.GetByID(ctx, id)
	if getErr != nil {
		return notFoundOr(getErr, "application", id)
	}
	return apperrors.NewConflict("application was changed concurrently", map[string]any{"status": current.Status})
}

func record(ctx context.Context, history repository.ApplicationHistoryRepository, owner session.Owner, applicationID string, change domain.ApplicationChangeType, oldValue, newValue map[string]any) error {
	if history == nil {
		return nil
	}
	return history.Create(ctx, &domain.ApplicationHistory{
		ApplicationID: applicationID,
		ChangedByKind: string(owner.Kind),
		ChangedByID:   owner.ID,
		ChangeType:    change,
		OldValue:      oldValue,
		NewValue:      newValue,
	})
}

func contentSnapshot(app *domain.Application) map[string]any {
	return map[string]any{
		"product_id":  app.ProductID,
		"title":       app.Title,
		"description": app.Description,
		"quantity":    app.Quantity,
	}
}

func (s *ApplicationService) checkProduct(ctx context.Context, productID *string) error {
	if productID == nil || s.products == nil {
		return nil
	}
	if _, err := s.products.GetByID(ctx, *productID); err != nil {
		return notFoundOr(err, "product", *productID)
	}
	return nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func quantityOrDefault(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

var allowedTransitions = map[domain.ApplicationStatus][]domain.ApplicationStatus{
	domain.ApplicationStatusNew:        {domain.ApplicationStatusInProgress, domain.ApplicationStatusCancelled},
	domain.ApplicationStatusInProgress: {domain.ApplicationStatusDone, domain.ApplicationStatusCancelled},
	domain.ApplicationStatusDone:       {},
	domain.ApplicationStatusCancelled:  {},
}

func isValidTransition(current, next domain.ApplicationStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
