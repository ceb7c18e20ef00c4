package services

import (
	"context"
	"fmt"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"gorm.io/gorm"
)

// NotificationService turns accepted offers into human-readable messages.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// RenderOfferMessage formats the announcement for an offer. Pure: no reads,
// no writes.
func (ns *NotificationService) RenderOfferMessage(offer *models.Offer, space *models.Space, service *models.Service) string {
	switch offer.Type {
	case models.OfferTypeService:
		name := ""
		if service != nil {
			name = service.Name
		}
		return fmt.Sprintf("%g%% off on service %s in %s", offer.Percentage, name, space.Name)
	case models.OfferTypeRoom:
		return fmt.Sprintf("%g%% off on room reservations in %s", offer.Percentage, space.Name)
	default:
		return fmt.Sprintf("%g%% off on all services in %s", offer.Percentage, space.Name)
	}
}

// CreateForOffer renders and stores the notification for a freshly accepted
// offer. The message is a cached projection of the space/service names at
// this moment.
func (ns *NotificationService) CreateForOffer(ctx context.Context, offer *models.Offer) error {
	var space models.Space
	if err := ns.DB.WithContext(ctx).First(&space, offer.SpaceID).Error; err != nil {
		return err
	}

	var service *models.Service
	if offer.ServiceID != nil {
		var svc models.Service
		if err := ns.DB.WithContext(ctx).First(&svc, *offer.ServiceID).Error; err == nil {
			service = &svc
		}
	}

	notification := models.Notification{
		OfferID: offer.ID,
		Message: ns.RenderOfferMessage(offer, &space, service),
	}
	return ns.DB.WithContext(ctx).Create(&notification).Error
}
