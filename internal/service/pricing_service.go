package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/pricing"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/logger"
)

type PricingService interface {
	// Quote prices items at current tier prices.
	Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error)
	// QuoteReservation prices a reservation at the unit prices frozen when it was created.
	QuoteReservation(ctx context.Context, event *model.Event, reservation *model.Reservation, opts model.PricingOptions) (*model.Quote, error)
}

type PricingServiceImpl struct {
	events     repository.EventRepository
	promos     repository.PromoRepository
	orders     repository.OrderRepository
	calculator *pricing.Calculator
	clock      Clock
	logger     *zap.Logger
}

func NewPricingService(
	events repository.EventRepository,
	promos repository.PromoRepository,
	orders repository.OrderRepository,
	calculator *pricing.Calculator,
	opts ...Option,
) PricingService {
	s := newSettings(opts)
	return &PricingServiceImpl{
		events:     events,
		promos:     promos,
		orders:     orders,
		calculator: calculator,
		clock:      s.clock,
		logger:     logger.WithComponent("pricing"),
	}
}

func (s *PricingServiceImpl) Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	event, err := s.events.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	var verrs apperrors.ValidationErrors
	lines := make([]pricing.Line, 0, len(req.Items))
	for _, item := range req.Items {
		tier, ok := event.Tier(item.TierID)
		if !ok {
			verrs = append(verrs, apperrors.FieldError{TierID: item.TierID, Field: "tier_id", Message: "tier not found"})
			continue
		}
		if item.Quantity <= 0 {
			verrs = append(verrs, apperrors.FieldError{TierID: item.TierID, Field: "quantity", Message: "must be positive"})
			continue
		}
		resolved := pricing.Resolve(tier, now)
		lines = append(lines, pricing.Line{
			TierID:        tier.ID,
			Name:          tier.Name,
			Quantity:      item.Quantity,
			UnitPrice:     resolved.UnitPrice,
			ScheduleLabel: resolved.ScheduleLabel,
		})
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	return s.price(ctx, event, lines, req.PricingOptions)
}

func (s *PricingServiceImpl) QuoteReservation(ctx context.Context, event *model.Event, reservation *model.Reservation, opts model.PricingOptions) (*model.Quote, error) {
	lines := make([]pricing.Line, 0, len(reservation.Items))
	for _, item := range reservation.Items {
		lines = append(lines, pricing.Line{
			TierID:        item.TierID,
			Name:          item.TierName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			ScheduleLabel: item.ScheduleLabel,
		})
	}
	return s.price(ctx, event, lines, opts)
}

func (s *PricingServiceImpl) price(ctx context.Context, event *model.Event, lines []pricing.Line, opts model.PricingOptions) (*model.Quote, error) {
	in := pricing.Input{
		EventID: event.ID,
		Paid:    !event.IsRSVP(),
		Lines:   lines,
	}

	if in.Paid {
		promoter, err := s.resolvePromoter(ctx, event.ID, opts.PromoterCode)
		if err != nil {
			return nil, err
		}
		in.Promoter = promoter

		promo, reason, err := s.resolvePromo(ctx, event.ID, lines, opts)
		if err != nil {
			return nil, err
		}
		in.Promo = promo
		in.PromoError = reason
	}

	return s.calculator.Calculate(in), nil
}

// resolvePromoter ignores unknown or inactive links.
func (s *PricingServiceImpl) resolvePromoter(ctx context.Context, eventID, code string) (*model.PromoterLink, error) {
	if code == "" {
		return nil, nil
	}
	link, err := s.promos.FindPromoterLink(ctx, eventID, code)
	if errors.Is(err, apperrors.ErrPromoCodeNotFound) {
		s.logger.Warn("unknown promoter code", zap.String("event_id", eventID), zap.String("code", code))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !link.Active {
		return nil, nil
	}
	return link, nil
}

// resolvePromo returns the usable promo, or the reason it was dropped.
// Only store failures come back as errors.
func (s *PricingServiceImpl) resolvePromo(ctx context.Context, eventID string, lines []pricing.Line, opts model.PricingOptions) (*model.PromoCode, string, error) {
	if opts.PromoCode == "" {
		return nil, "", nil
	}

	promo, err := s.promos.FindPromoCode(ctx, eventID, opts.PromoCode)
	if errors.Is(err, apperrors.ErrPromoCodeNotFound) {
		return nil, apperrors.ErrPromoCodeNotFound.Error(), nil
	}
	if err != nil {
		return nil, "", err
	}

	if !promo.Active || !promo.InWindow(s.clock()) {
		return nil, apperrors.ErrPromoCodeInactive.Error(), nil
	}
	if promo.MaxRedemptions > 0 && promo.Redemptions >= promo.MaxRedemptions {
		return nil, apperrors.ErrPromoCodeExhausted.Error(), nil
	}
	if promo.MaxPerUser > 0 && opts.BuyerID != "" {
		used, err := s.orders.CountPromoRedemptions(ctx, promo.ID, opts.BuyerID, "")
		if err != nil {
			return nil, "", err
		}
		if used >= promo.MaxPerUser {
			return nil, apperrors.ErrPromoCodeExhausted.Error(), nil
		}
	}

	eligible := false
	for _, line := range lines {
		if promo.AppliesTo(line.TierID) {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, apperrors.ErrPromoCodeNotValid.Error(), nil
	}

	return promo, "", nil
}
