package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"gorm.io/gorm"
)

// CascadeService walks the ownership graph leaf-first when a root entity is
// deleted: reservations and notifications go before their parents, parents
// before the space. There is no multi-table atomicity, so progress is
// recorded in a per-root CascadeLog and every step is written so that
// re-running the same delete finishes a partially cascaded state instead of
// failing on already-removed children.
type CascadeService struct {
	DB *gorm.DB
}

func NewCascadeService(db *gorm.DB) *CascadeService {
	return &CascadeService{DB: db}
}

// Summary reports how many rows each step removed. Complete is false when a
// step failed mid-sequence; the same call can then be retried.
type Summary struct {
	Deleted  map[string]int64 `json:"deleted"`
	Complete bool             `json:"complete"`
}

func emptySummary() *Summary {
	return &Summary{Deleted: map[string]int64{}, Complete: true}
}

type cascadeStep struct {
	name string
	run  func(ctx context.Context) (int64, error)
}

// DeleteSpace removes a space and everything it exclusively owns: rooms
// (with their reservations and images), services (with their reservations),
// offers (with their notifications), ratings, events, rules and space
// images. Deleting an unknown or already-deleted space id is a no-op.
func (s *CascadeService) DeleteSpace(ctx context.Context, spaceID uint) (*Summary, error) {
	var space models.Space
	err := s.DB.WithContext(ctx).First(&space, spaceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Resume only when a prior run is still marked running; otherwise
		// the id is simply gone and there is nothing to do.
		if !s.hasRunningLog(ctx, "space", spaceID) {
			return emptySummary(), nil
		}
	} else if err != nil {
		return nil, err
	}

	return s.runCascade(ctx, "space", spaceID, s.spaceSteps(spaceID))
}

func (s *CascadeService) spaceSteps(spaceID uint) []cascadeStep {
	roomIDs := func() *gorm.DB {
		return s.DB.Model(&models.Room{}).Select("id").Where("space_id = ?", spaceID)
	}
	serviceIDs := func() *gorm.DB {
		return s.DB.Model(&models.Service{}).Select("id").Where("space_id = ?", spaceID)
	}
	offerIDs := func() *gorm.DB {
		return s.DB.Model(&models.Offer{}).Select("id").Where("space_id = ?", spaceID)
	}

	return []cascadeStep{
		{"reservations", func(ctx context.Context) (int64, error) {
			n1, err := s.deleteWhere(ctx, &models.Reservation{}, "room_id IN (?)", roomIDs())
			if err != nil {
				return n1, err
			}
			n2, err := s.deleteWhere(ctx, &models.Reservation{}, "service_id IN (?)", serviceIDs())
			return n1 + n2, err
		}},
		{"roomImages", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.RoomImage{}, "room_id IN (?)", roomIDs())
		}},
		{"notifications", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Notification{}, "offer_id IN (?)", offerIDs())
		}},
		{"offers", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Offer{}, "space_id = ?", spaceID)
		}},
		{"rooms", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Room{}, "space_id = ?", spaceID)
		}},
		{"services", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Service{}, "space_id = ?", spaceID)
		}},
		{"ratings", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Rating{}, "space_id = ?", spaceID)
		}},
		{"events", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Event{}, "space_id = ?", spaceID)
		}},
		{"rules", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Rule{}, "space_id = ?", spaceID)
		}},
		{"spaceImages", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.SpaceImage{}, "space_id = ?", spaceID)
		}},
		{"spaces", func(ctx context.Context) (int64, error) {
			res := s.DB.WithContext(ctx).Delete(&models.Space{}, spaceID)
			return res.RowsAffected, res.Error
		}},
	}
}

// DeleteRoom removes one room with its reservations and images, and gives
// the slot back to the parent space's room pool.
func (s *CascadeService) DeleteRoom(ctx context.Context, roomID uint) (*Summary, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !s.hasRunningLog(ctx, "room", roomID) {
			return emptySummary(), nil
		}
	} else if err != nil {
		return nil, err
	}

	steps := []cascadeStep{
		{"reservations", func(ctx context.Context) (int64, error) {
			// Whole-room reservations each hold a slot of the parent
			// space's pool; give those back before the rows disappear.
			var wholeRoom int64
			if err := s.DB.WithContext(ctx).Model(&models.Reservation{}).
				Where("room_id = ? AND type = ?", roomID, models.ReservationTypeRoom).
				Count(&wholeRoom).Error; err != nil {
				return 0, err
			}

			n, err := s.deleteWhere(ctx, &models.Reservation{}, "room_id = ?", roomID)
			if err != nil {
				return n, err
			}

			if wholeRoom > 0 {
				res := s.DB.WithContext(ctx).Model(&models.Space{}).
					Where("id = ? AND reserved_room_number - ? >= 0", room.SpaceID, wholeRoom).
					UpdateColumn("reserved_room_number", gorm.Expr("reserved_room_number - ?", wholeRoom))
				if res.Error != nil {
					return n, res.Error
				}
			}
			return n, nil
		}},
		{"roomImages", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.RoomImage{}, "room_id = ?", roomID)
		}},
		{"rooms", func(ctx context.Context) (int64, error) {
			res := s.DB.WithContext(ctx).Delete(&models.Room{}, roomID)
			if res.Error != nil || res.RowsAffected == 0 {
				return res.RowsAffected, res.Error
			}
			s.DB.WithContext(ctx).Model(&models.Space{}).
				Where("id = ? AND room_number - 1 >= 0", room.SpaceID).
				UpdateColumn("room_number", gorm.Expr("room_number - 1"))
			return res.RowsAffected, nil
		}},
	}
	return s.runCascade(ctx, "room", roomID, steps)
}

// DeleteService removes one service with its reservations and offers,
// including the offers' notifications. Offers must go so the dead service
// stops blocking its target's overlap window.
func (s *CascadeService) DeleteService(ctx context.Context, serviceID uint) (*Summary, error) {
	var service models.Service
	err := s.DB.WithContext(ctx).First(&service, serviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !s.hasRunningLog(ctx, "service", serviceID) {
			return emptySummary(), nil
		}
	} else if err != nil {
		return nil, err
	}

	offerIDs := func() *gorm.DB {
		return s.DB.Model(&models.Offer{}).Select("id").Where("service_id = ?", serviceID)
	}

	steps := []cascadeStep{
		{"reservations", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Reservation{}, "service_id = ?", serviceID)
		}},
		{"notifications", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Notification{}, "offer_id IN (?)", offerIDs())
		}},
		{"offers", func(ctx context.Context) (int64, error) {
			return s.deleteWhere(ctx, &models.Offer{}, "service_id = ?", serviceID)
		}},
		{"services", func(ctx context.Context) (int64, error) {
			res := s.DB.WithContext(ctx).Delete(&models.Service{}, serviceID)
			return res.RowsAffected, res.Error
		}},
	}
	return s.runCascade(ctx, "service", serviceID, steps)
}

// DeleteUser removes the user and cascades through every space they own.
func (s *CascadeService) DeleteUser(ctx context.Context, userID uint) (*Summary, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !s.hasRunningLog(ctx, "user", userID) {
			return emptySummary(), nil
		}
	} else if err != nil {
		return nil, err
	}

	summary := emptySummary()

	var spaceIDs []uint
	if err := s.DB.WithContext(ctx).Model(&models.Space{}).
		Where("user_id = ?", userID).Pluck("id", &spaceIDs).Error; err != nil {
		return nil, err
	}

	log, err := s.openLog(ctx, "user", userID)
	if err != nil {
		return nil, err
	}

	for _, spaceID := range spaceIDs {
		spaceSummary, err := s.DeleteSpace(ctx, spaceID)
		if spaceSummary != nil {
			mergeCounts(summary.Deleted, spaceSummary.Deleted)
		}
		if err != nil {
			summary.Complete = false
			s.saveProgress(ctx, log, summary.Deleted)
			return summary, fmt.Errorf("%w: space %d: %v", models.ErrPartialCascade, spaceID, err)
		}
	}

	res := s.DB.WithContext(ctx).Delete(&models.User{}, userID)
	if res.Error != nil {
		summary.Complete = false
		s.saveProgress(ctx, log, summary.Deleted)
		return summary, fmt.Errorf("%w: user %d: %v", models.ErrPartialCascade, userID, res.Error)
	}
	summary.Deleted["users"] += res.RowsAffected

	s.closeLog(ctx, log, summary.Deleted)
	return summary, nil
}

func (s *CascadeService) runCascade(ctx context.Context, rootType string, rootID uint, steps []cascadeStep) (*Summary, error) {
	log, err := s.openLog(ctx, rootType, rootID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Deleted: log.DeletedCounts(), Complete: true}
	for _, step := range steps {
		n, err := step.run(ctx)
		summary.Deleted[step.name] += n
		if err != nil {
			summary.Complete = false
			s.saveProgress(ctx, log, summary.Deleted)
			return summary, fmt.Errorf("%w: step %q: %v", models.ErrPartialCascade, step.name, err)
		}
		s.saveProgress(ctx, log, summary.Deleted)
	}

	s.closeLog(ctx, log, summary.Deleted)
	return summary, nil
}

func (s *CascadeService) deleteWhere(ctx context.Context, model interface{}, query string, arg interface{}) (int64, error) {
	res := s.DB.WithContext(ctx).Where(query, arg).Delete(model)
	return res.RowsAffected, res.Error
}

func (s *CascadeService) hasRunningLog(ctx context.Context, rootType string, rootID uint) bool {
	var count int64
	s.DB.WithContext(ctx).Model(&models.CascadeLog{}).
		Where("root_type = ? AND root_id = ? AND status = ?", rootType, rootID, models.CascadeStatusRunning).
		Count(&count)
	return count > 0
}

// openLog reuses a still-running log for the root so a resumed cascade
// keeps accumulating into the same record.
func (s *CascadeService) openLog(ctx context.Context, rootType string, rootID uint) (*models.CascadeLog, error) {
	var log models.CascadeLog
	err := s.DB.WithContext(ctx).
		Where("root_type = ? AND root_id = ? AND status = ?", rootType, rootID, models.CascadeStatusRunning).
		First(&log).Error
	if err == nil {
		return &log, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	log = models.CascadeLog{RootType: rootType, RootID: rootID, Status: models.CascadeStatusRunning}
	log.SetDeleted(map[string]int64{})
	if err := s.DB.WithContext(ctx).Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *CascadeService) saveProgress(ctx context.Context, log *models.CascadeLog, counts map[string]int64) {
	log.SetDeleted(counts)
	s.DB.WithContext(ctx).Model(log).UpdateColumn("deleted", log.Deleted)
}

func (s *CascadeService) closeLog(ctx context.Context, log *models.CascadeLog, counts map[string]int64) {
	log.SetDeleted(counts)
	log.Status = models.CascadeStatusDone
	s.DB.WithContext(ctx).Model(log).UpdateColumns(map[string]interface{}{
		"deleted": log.Deleted,
		"status":  log.Status,
	})
}

func mergeCounts(dst, src map[string]int64) {
	for k, v := range src {
		dst[k] += v
	}
}
