package seller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
	"github.com/venta/backend/internal/infrastructure/logger"
	"github.com/venta/backend/internal/infrastructure/telemetry"
)

// SellerService orchestrates seller registration, editing and status changes.
// Every successful write publishes its lifecycle events after the
// transaction has committed; a failed write publishes nothing.
type SellerService struct {
	sellers        seller.SellerRepository
	branches       seller.BranchRepository
	directory      seller.EmployeeDirectory
	transactor     Transactor
	editStrategy   seller.EditStrategy
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewSellerService creates a new SellerService
func NewSellerService(
	sellers seller.SellerRepository,
	branches seller.BranchRepository,
	directory seller.EmployeeDirectory,
	transactor Transactor,
	logger *zap.Logger,
) *SellerService {
	if transactor == nil {
		transactor = NewNoOpTransactor(sellers)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellerService{
		sellers:      sellers,
		branches:     branches,
		directory:    directory,
		transactor:   transactor,
		editStrategy: seller.NewExternalEdit(),
		logger:       logger,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for lifecycle events
func (s *SellerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetEditStrategy replaces the edit strategy
func (s *SellerService) SetEditStrategy(strategy seller.EditStrategy) {
	if strategy != nil {
		s.editStrategy = strategy
	}
}

// SetClock overrides the clock used for registration dates
func (s *SellerService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Register onboards a new seller with the strategy matching its category
func (s *SellerService) Register(ctx context.Context, req RegisterSellerRequest) (_ *SellerResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "seller", "register",
		telemetry.SpanAttrCategory, req.Category,
		telemetry.SpanAttrBranchID, req.BranchID,
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	category, err := seller.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	registration, err := seller.SelectRegistration(category, s.sellers, s.directory, seller.WithClock(s.now))
	if err != nil {
		return nil, err
	}

	domainReq := req.toDomain(category)
	if err := registration.Validate(ctx, domainReq); err != nil {
		return nil, err
	}

	branch, err := s.assignableBranch(ctx, domainReq.BranchID)
	if err != nil {
		return nil, err
	}

	newSeller, err := registration.BuildSeller(ctx, domainReq)
	if err != nil {
		return nil, err
	}
	if err := newSeller.ReassignBranch(branch); err != nil {
		return nil, err
	}
	if err := newSeller.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, sellers seller.SellerRepository) error {
		return sellers.Save(ctx, newSeller)
	}); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("seller registered",
		zap.Int64("seller_id", newSeller.ID),
		zap.String("category", string(newSeller.Category)),
		zap.Int64("branch_id", branch.ID),
	)
	s.publish(ctx, seller.NewSellerCreatedEvent(newSeller))

	return ToSellerResponse(newSeller), nil
}

// Edit applies a partial update to a seller.
// It publishes MODIFIED for plain attribute changes, BRANCH_CHANGED when the
// branch moved and DEACTIVATED or REACTIVATED when the status flipped.
func (s *SellerService) Edit(ctx context.Context, id int64, req UpdateSellerRequest) (_ *SellerResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "seller", "edit", telemetry.SpanAttrSellerID, id)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	editReq, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := editReq.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if editReq.IsEmpty() {
		return ToSellerResponse(existing), nil
	}

	if editReq.Email != nil && !strings.EqualFold(*editReq.Email, existing.Email) {
		taken, err := s.sellers.ExistsByEmail(ctx, *editReq.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			return nil, seller.NewDuplicateSellerError("email", *editReq.Email)
		}
	}

	var newBranch *seller.Branch
	if editReq.BranchID != nil && *editReq.BranchID != existing.BranchID() {
		newBranch, err = s.assignableBranch(ctx, *editReq.BranchID)
		if err != nil {
			return nil, err
		}
	}

	oldBranchName := existing.BranchName()
	changed := s.editStrategy.ApplyChanges(existing, editReq, newBranch)
	if len(changed) == 0 {
		return ToSellerResponse(existing), nil
	}
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, sellers seller.SellerRepository) error {
		return sellers.Save(ctx, existing)
	}); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("seller updated",
		zap.Int64("seller_id", existing.ID),
		zap.Strings("changed_fields", changed),
	)
	s.publish(ctx, editEvents(existing, changed, oldBranchName)...)

	return ToSellerResponse(existing), nil
}

// Deactivate marks a seller inactive
func (s *SellerService) Deactivate(ctx context.Context, id int64) (*SellerResponse, error) {
	return s.changeStatus(ctx, id, seller.StatusInactive)
}

// Reactivate marks an inactive seller active again
func (s *SellerService) Reactivate(ctx context.Context, id int64) (*SellerResponse, error) {
	return s.changeStatus(ctx, id, seller.StatusActive)
}

func (s *SellerService) changeStatus(ctx context.Context, id int64, status seller.Status) (_ *SellerResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "seller", "change_status",
		telemetry.SpanAttrSellerID, id,
		"seller.status", string(status),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	existing, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == status {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("Seller is already %s", strings.ToLower(string(status))))
	}
	if err := existing.ChangeStatus(status); err != nil {
		return nil, err
	}

	if err := s.transactor.WithinTransaction(ctx, func(ctx context.Context, sellers seller.SellerRepository) error {
		return sellers.Save(ctx, existing)
	}); err != nil {
		return nil, err
	}

	logger.L(ctx, s.logger).Info("seller status changed",
		zap.Int64("seller_id", existing.ID),
		zap.String("status", string(status)),
	)
	s.publish(ctx, seller.StatusEvent(existing))

	return ToSellerResponse(existing), nil
}

// GetByID returns a seller by id
func (s *SellerService) GetByID(ctx context.Context, id int64) (*SellerResponse, error) {
	found, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSellerResponse(found), nil
}

// List returns the sellers matching the filter
func (s *SellerService) List(ctx context.Context, filter SellerListFilter) ([]SellerResponse, error) {
	domainFilter, err := filter.toDomain()
	if err != nil {
		return nil, err
	}
	sellers, err := s.sellers.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToSellerResponses(sellers), nil
}

// CreateBranch creates a new branch
func (s *SellerService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	branch, err := seller.NewBranch(req.Name, req.Address, seller.BranchType(req.Type), req.Capacity)
	if err != nil {
		return nil, err
	}
	if req.WarehouseRef != "" {
		branch.LinkWarehouse(req.WarehouseRef)
	}

	exists, err := s.branches.ExistsByName(ctx, branch.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check branch name: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_BRANCH", "A branch with this name already exists")
	}

	if err := s.branches.Save(ctx, branch); err != nil {
		return nil, err
	}
	logger.L(ctx, s.logger).Info("branch created", zap.Int64("branch_id", branch.ID), zap.String("name", branch.Name))
	return ToBranchResponse(branch), nil
}

// ListBranches returns every branch
func (s *SellerService) ListBranches(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.branches.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]BranchResponse, len(branches))
	for i := range branches {
		responses[i] = *ToBranchResponse(&branches[i])
	}
	return responses, nil
}

// GetBranch returns a branch by id
func (s *SellerService) GetBranch(ctx context.Context, id int64) (*BranchResponse, error) {
	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBranchResponse(branch), nil
}

// DeactivateBranch closes a branch for new seller assignments.
// Sellers already assigned to it keep their branch.
func (s *SellerService) DeactivateBranch(ctx context.Context, id int64) (*BranchResponse, error) {
	return s.setBranchActive(ctx, id, false)
}

// ActivateBranch reopens a branch for seller assignments
func (s *SellerService) ActivateBranch(ctx context.Context, id int64) (*BranchResponse, error) {
	return s.setBranchActive(ctx, id, true)
}

func (s *SellerService) setBranchActive(ctx context.Context, id int64, active bool) (*BranchResponse, error) {
	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch.Active == active {
		state := "inactive"
		if active {
			state = "active"
		}
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("Branch %s is already %s", branch.Name, state))
	}

	if active {
		branch.Activate()
	} else {
		branch.Deactivate()
	}
	if err := s.branches.Save(ctx, branch); err != nil {
		return nil, err
	}
	logger.L(ctx, s.logger).Info("branch status changed",
		zap.Int64("branch_id", branch.ID),
		zap.Bool("active", branch.Active),
	)
	return ToBranchResponse(branch), nil
}

// assignableBranch loads a branch that can receive sellers
func (s *SellerService) assignableBranch(ctx context.Context, id int64) (*seller.Branch, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Seller must belong to a branch")
	}
	branch, err := s.branches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !branch.Active {
		return nil, shared.NewDomainError(seller.CodeInactiveBranch,
			fmt.Sprintf("Branch %s is inactive and cannot receive sellers", branch.Name))
	}
	return branch, nil
}

// publish hands events to the bus. Delivery problems are logged and never
// change the outcome of an already committed write.
func (s *SellerService) publish(ctx context.Context, events ...seller.LifecycleEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	domainEvents := make([]shared.DomainEvent, len(events))
	for i, e := range events {
		domainEvents[i] = e
	}
	if err := s.eventPublisher.Publish(ctx, domainEvents...); err != nil {
		logger.L(ctx, s.logger).Error("failed to publish seller events", zap.Error(err))
	}
}

// editEvents maps the changed fields of an edit to lifecycle events
func editEvents(s *seller.Seller, changed []string, oldBranchName string) []seller.LifecycleEvent {
	var (
		events      []seller.LifecycleEvent
		plain       []string
		branchMoved bool
		statusFlip  bool
	)
	for _, field := range changed {
		switch field {
		case seller.FieldBranch:
			branchMoved = true
		case seller.FieldStatus:
			statusFlip = true
		default:
			plain = append(plain, field)
		}
	}

	if len(plain) > 0 {
		events = append(events, seller.NewSellerModifiedEvent(s, plain))
	}
	if branchMoved {
		events = append(events, seller.NewSellerBranchChangedEvent(s, oldBranchName))
	}
	if statusFlip {
		events = append(events, seller.StatusEvent(s))
	}
	return events
}
