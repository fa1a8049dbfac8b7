package services

import (
	"context"
	"errors"
	"fmt"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/utils"

	"github.com/shopspring/decimal"
)

type AlertServiceI interface {
	Subscribe(ctx context.Context, userID int, req *schemas.AlertRequest) (*schemas.AlertResponse, error)
	Deactivate(ctx context.Context, userID, alertID int) (*schemas.AlertResponse, error)
	ListSubscriptions(ctx context.Context, userID int) ([]schemas.AlertResponse, error)
	CheckPriceAlerts(ctx context.Context) (int, error)
}

// AlertService owns alert subscriptions and the matching pass that turns
// price observations into notifications.
type AlertService struct {
	alerts repositories.AlertRepository
	prices repositories.PriceRepository
	outbox repositories.NotificationRepository
	band   decimal.Decimal
}

// NewAlertService builds the service with the given match band, e.g. 0.10
// for a 10% tolerance around the target price.
func NewAlertService(
	alerts repositories.AlertRepository,
	prices repositories.PriceRepository,
	outbox repositories.NotificationRepository,
	matchBand float64,
) *AlertService {
	return &AlertService{
		alerts: alerts,
		prices: prices,
		outbox: outbox,
		band:   decimal.NewFromFloat(matchBand),
	}
}

func (s *AlertService) Subscribe(ctx context.Context, userID int, req *schemas.AlertRequest) (*schemas.AlertResponse, error) {
	sub := &models.AlertSubscription{
		UserID:  userID,
		AssetID: req.AssetID,
	}
	target := &models.PriceAlertTarget{
		TargetPrice:         req.TargetPrice,
		ThresholdPercentage: req.ThresholdPercentage,
	}
	if err := s.alerts.Create(ctx, sub, target); err != nil {
		return nil, err
	}
	return alertResponse(sub), nil
}

// Deactivate soft-deletes the subscription after checking it belongs to the
// caller. Unknown and foreign subscriptions are indistinguishable.
func (s *AlertService) Deactivate(ctx context.Context, userID, alertID int) (*schemas.AlertResponse, error) {
	existing, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	sub, err := s.alerts.Deactivate(ctx, alertID)
	if err != nil {
		return nil, err
	}
	return alertResponse(sub), nil
}

func (s *AlertService) ListSubscriptions(ctx context.Context, userID int) ([]schemas.AlertResponse, error) {
	subs, err := s.alerts.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]schemas.AlertResponse, 0, len(subs))
	for i := range subs {
		responses = append(responses, *alertResponse(&subs[i]))
	}
	return responses, nil
}

// CheckPriceAlerts runs one matching pass over every active subscription
// joined with the latest known price for its asset, and emits one
// notification per match. Each subscription is processed independently: a
// missing price or a failed write skips that subscription only, and the
// collected errors are returned after the full pass. Returns the number of
// notifications emitted.
func (s *AlertService) CheckPriceAlerts(ctx context.Context) (int, error) {
	logger := utils.LoggerFromContext(ctx)

	active, err := s.alerts.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active alerts: %w", err)
	}
	latest, err := s.prices.ListLatest(ctx)
	if err != nil {
		return 0, fmt.Errorf("list latest prices: %w", err)
	}

	matched := 0
	var errs []error
	for i := range active {
		alert := &active[i]

		price, ok := latest[alert.AssetID]
		if !ok {
			errs = append(errs, fmt.Errorf("alert %d: no price observation for asset %q", alert.ID, alert.AssetID))
			continue
		}

		if !PriceWithinBand(price.CurrentPrice, alert.Target.TargetPrice, s.band) {
			continue
		}

		alertID := alert.ID
		notification := &models.Notification{
			UserID:  alert.UserID,
			AlertID: &alertID,
			Kind:    models.NotificationKindPriceAlert,
			Body: fmt.Sprintf("%s is at %s, within %s%% of your target %s",
				alert.AssetID, price.CurrentPrice,
				s.band.Mul(decimal.NewFromInt(100)), alert.Target.TargetPrice),
		}
		if err := s.outbox.Append(ctx, notification, nil); err != nil {
			errs = append(errs, fmt.Errorf("alert %d: append notification: %w", alert.ID, err))
			continue
		}
		matched++

		logger.WithFields(map[string]interface{}{
			"alert_id": alert.ID,
			"user_id":  alert.UserID,
			"asset":    alert.AssetID,
			"price":    price.CurrentPrice.String(),
			"target":   alert.Target.TargetPrice.String(),
		}).Info("price alert matched")
	}

	return matched, errors.Join(errs...)
}

// PriceWithinBand reports whether current is within band (a fraction, e.g.
// 0.10) of target, boundary inclusive. A non-positive target never matches;
// such targets are rejected at subscription time, this guards data that
// predates that check.
func PriceWithinBand(current, target, band decimal.Decimal) bool {
	if target.Sign() <= 0 {
		return false
	}
	distance := current.Sub(target).Abs().Div(target)
	return distance.Cmp(band) <= 0
}

func alertResponse(sub *models.AlertSubscription) *schemas.AlertResponse {
	return &schemas.AlertResponse{
		ID:        sub.ID,
		UserID:    sub.UserID,
		AssetID:   sub.AssetID,
		Active:    sub.Active,
		CreatedAt: sub.CreatedAt,
	}
}
