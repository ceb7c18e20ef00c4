package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"gorm.io/gorm"
)

type TargetKind string

const (
	TargetSpace   TargetKind = "space"
	TargetRoom    TargetKind = "room"
	TargetService TargetKind = "service"
)

// OfferTarget is the entity a discount window applies to.
type OfferTarget struct {
	Kind TargetKind
	ID   uint
}

func (t OfferTarget) lockKey() string {
	return fmt.Sprintf("offer:%s:%d", t.Kind, t.ID)
}

// OfferService guards the invariant that accepted offers on one target
// never overlap. The check-then-insert is serialized per target through a
// keyed lock so two concurrent proposals cannot both pass the overlap scan.
type OfferService struct {
	DB            *gorm.DB
	Notifications *NotificationService
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{DB: db, Notifications: NewNotificationService(db)}
}

type ProposeOfferInput struct {
	Target     OfferTarget
	Percentage float64
	StartDate  time.Time
	EndDate    time.Time
}

// Propose validates the window, rejects overlaps against accepted offers on
// the same target (boundaries touching count as overlap), and on acceptance
// stores the offer together with its rendered notification.
func (s *OfferService) Propose(ctx context.Context, input ProposeOfferInput) (*models.Offer, error) {
	if input.Percentage <= 0 || input.Percentage >= 100 {
		return nil, fmt.Errorf("%w: percentage must be greater than 0 and less than 100", models.ErrInvalidInput)
	}
	if !input.StartDate.Before(input.EndDate) {
		return nil, fmt.Errorf("%w: start date must be before end date", models.ErrInvalidInput)
	}

	offer, err := s.buildOffer(ctx, input)
	if err != nil {
		return nil, err
	}

	release, err := storage.AcquireTargetLock(ctx, input.Target.lockKey())
	if err != nil {
		return nil, err
	}
	defer release()

	overlapping, err := s.countOverlapping(ctx, offer, input.Target)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, models.ErrOfferOverlap
	}

	if err := s.DB.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}

	if err := s.Notifications.CreateForOffer(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// buildOffer resolves the target into an offer row, walking room/service
// targets up to their owning space.
func (s *OfferService) buildOffer(ctx context.Context, input ProposeOfferInput) (*models.Offer, error) {
	offer := &models.Offer{
		Percentage: input.Percentage,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	switch input.Target.Kind {
	case TargetSpace:
		var space models.Space
		if err := s.DB.WithContext(ctx).First(&space, input.Target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrInvalidTarget
			}
			return nil, err
		}
		offer.Type = models.OfferTypeSpace
		offer.SpaceID = space.ID
	case TargetRoom:
		var room models.Room
		if err := s.DB.WithContext(ctx).First(&room, input.Target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrInvalidTarget
			}
			return nil, err
		}
		offer.Type = models.OfferTypeRoom
		offer.SpaceID = room.SpaceID
		offer.RoomID = &room.ID
	case TargetService:
		var service models.Service
		if err := s.DB.WithContext(ctx).First(&service, input.Target.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrInvalidTarget
			}
			return nil, err
		}
		offer.Type = models.OfferTypeService
		offer.SpaceID = service.SpaceID
		offer.ServiceID = &service.ID
	default:
		return nil, fmt.Errorf("%w: unknown offer target kind %q", models.ErrInvalidInput, input.Target.Kind)
	}
	return offer, nil
}

func (s *OfferService) countOverlapping(ctx context.Context, offer *models.Offer, target OfferTarget) (int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Offer{}).
		Where("type = ?", offer.Type).
		// Inclusive comparison on both ends: an offer ending the day
		// another starts still conflicts.
		Where("start_date <= ? AND end_date >= ?", offer.EndDate, offer.StartDate)

	switch target.Kind {
	case TargetSpace:
		q = q.Where("space_id = ?", offer.SpaceID)
	case TargetRoom:
		q = q.Where("room_id = ?", *offer.RoomID)
	case TargetService:
		q = q.Where("service_id = ?", *offer.ServiceID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes an offer and its notification.
func (s *OfferService) Delete(ctx context.Context, offerID uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Offer{}, offerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return s.DB.WithContext(ctx).Where("offer_id = ?", offerID).Delete(&models.Notification{}).Error
}
