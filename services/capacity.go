package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"gorm.io/gorm"
)

// CapacityService owns the denormalized occupancy counters on Space and
// Room. Counters are only ever moved through a single conditional UPDATE
// (reserved = reserved + delta guarded by the capacity bound), so two
// concurrent reservations that together exceed capacity cannot both win.
type CapacityService struct {
	DB *gorm.DB
}

func NewCapacityService(db *gorm.DB) *CapacityService {
	return &CapacityService{DB: db}
}

type ReserveInput struct {
	Type      string
	RoomID    uint
	ServiceID uint
	UserID    *uint
	Quantity  int
}

// Reserve books capacity on a room (Desk/Room types) or records a service
// reservation (Daily/Monthly/Annually). The counter is incremented before
// the reservation row is written; if the row write fails the increment is
// compensated, never the other way around, so the counter can transiently
// over-report but never under-report.
func (s *CapacityService) Reserve(ctx context.Context, input ReserveInput) (*models.Reservation, error) {
	switch input.Type {
	case models.ReservationTypeDesk:
		return s.reserveDesks(ctx, input)
	case models.ReservationTypeRoom:
		return s.reserveRoom(ctx, input)
	case models.ReservationTypeDaily, models.ReservationTypeMonthly, models.ReservationTypeAnnually:
		return s.reserveService(ctx, input)
	default:
		return nil, fmt.Errorf("%w: unknown reservation type %q", models.ErrInvalidInput, input.Type)
	}
}

func (s *CapacityService) reserveDesks(ctx context.Context, input ReserveInput) (*models.Reservation, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidInput)
	}

	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidTarget
		}
		return nil, err
	}

	// One round-trip conditional increment: succeeds only while
	// reserved + quantity <= desk_number.
	res := s.DB.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND reserved_desk_number + ? <= desk_number", room.ID, input.Quantity).
		UpdateColumn("reserved_desk_number", gorm.Expr("reserved_desk_number + ?", input.Quantity))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrCapacityExceeded
	}

	reservation := models.Reservation{
		Type:     models.ReservationTypeDesk,
		Price:    room.DeskPrice * float64(input.Quantity),
		Quantity: input.Quantity,
		RoomID:   &room.ID,
		UserID:   input.UserID,
	}
	if err := s.DB.WithContext(ctx).Create(&reservation).Error; err != nil {
		s.DB.WithContext(ctx).Model(&models.Room{}).
			Where("id = ? AND reserved_desk_number - ? >= 0", room.ID, input.Quantity).
			UpdateColumn("reserved_desk_number", gorm.Expr("reserved_desk_number - ?", input.Quantity))
		return nil, err
	}
	return &reservation, nil
}

func (s *CapacityService) reserveRoom(ctx context.Context, input ReserveInput) (*models.Reservation, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidTarget
		}
		return nil, err
	}

	// A whole-room reservation consumes one slot of the parent space's
	// room pool.
	res := s.DB.WithContext(ctx).Model(&models.Space{}).
		Where("id = ? AND reserved_room_number + 1 <= room_number", room.SpaceID).
		UpdateColumn("reserved_room_number", gorm.Expr("reserved_room_number + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrCapacityExceeded
	}

	reservation := models.Reservation{
		Type:     models.ReservationTypeRoom,
		Price:    room.Price,
		Quantity: 1,
		RoomID:   &room.ID,
		UserID:   input.UserID,
	}
	if err := s.DB.WithContext(ctx).Create(&reservation).Error; err != nil {
		s.DB.WithContext(ctx).Model(&models.Space{}).
			Where("id = ? AND reserved_room_number - 1 >= 0", room.SpaceID).
			UpdateColumn("reserved_room_number", gorm.Expr("reserved_room_number - 1"))
		return nil, err
	}
	return &reservation, nil
}

func (s *CapacityService) reserveService(ctx context.Context, input ReserveInput) (*models.Reservation, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", models.ErrInvalidInput)
	}

	var service models.Service
	if err := s.DB.WithContext(ctx).First(&service, input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrInvalidTarget
		}
		return nil, err
	}

	var unit float64
	switch input.Type {
	case models.ReservationTypeDaily:
		unit = service.DailyPrice
	case models.ReservationTypeMonthly:
		if service.MonthlyPrice == nil {
			return nil, fmt.Errorf("%w: service has no monthly price", models.ErrInvalidInput)
		}
		unit = *service.MonthlyPrice
	case models.ReservationTypeAnnually:
		if service.AnnuallyPrice == nil {
			return nil, fmt.Errorf("%w: service has no annual price", models.ErrInvalidInput)
		}
		unit = *service.AnnuallyPrice
	}

	// Services carry no occupancy counter; a service reservation is a
	// priced booking record only.
	reservation := models.Reservation{
		Type:      input.Type,
		Price:     unit * float64(input.Quantity),
		Quantity:  input.Quantity,
		ServiceID: &service.ID,
		UserID:    input.UserID,
	}
	if err := s.DB.WithContext(ctx).Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Release returns the reserved capacity and removes the reservation. The
// decrement runs first; the row is deleted only once the counter moved (or
// the target itself is already gone, after a cascade), so capacity is never
// under-reported.
func (s *CapacityService) Release(ctx context.Context, reservationID uint) error {
	var reservation models.Reservation
	if err := s.DB.WithContext(ctx).First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return err
	}

	switch reservation.Type {
	case models.ReservationTypeDesk:
		if reservation.RoomID != nil {
			res := s.DB.WithContext(ctx).Model(&models.Room{}).
				Where("id = ? AND reserved_desk_number - ? >= 0", *reservation.RoomID, reservation.Quantity).
				UpdateColumn("reserved_desk_number", gorm.Expr("reserved_desk_number - ?", reservation.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if exists, err := s.roomExists(ctx, *reservation.RoomID); err != nil {
					return err
				} else if exists {
					return fmt.Errorf("%w: releasing reservation %d would drive the desk counter negative",
						models.ErrInvalidInput, reservationID)
				}
				// Room already cascaded away; the reservation is an orphan.
			}
		}
	case models.ReservationTypeRoom:
		if reservation.RoomID != nil {
			var room models.Room
			err := s.DB.WithContext(ctx).First(&room, *reservation.RoomID).Error
			if err == nil {
				res := s.DB.WithContext(ctx).Model(&models.Space{}).
					Where("id = ? AND reserved_room_number - 1 >= 0", room.SpaceID).
					UpdateColumn("reserved_room_number", gorm.Expr("reserved_room_number - 1"))
				if res.Error != nil {
					return res.Error
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
	}

	return s.DB.WithContext(ctx).Delete(&models.Reservation{}, reservationID).Error
}

func (s *CapacityService) roomExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
