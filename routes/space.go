package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/services"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

func CreateSpace(ctx iris.Context) {
	var input CreateSpaceInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var owner models.User
	ownerExists := storage.DB.Where("email = ?", strings.ToLower(input.Email)).Limit(1).Find(&owner)
	if ownerExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if ownerExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	// New spaces always start Pending; an admin accepts them later.
	space := models.Space{
		Status:      models.SpaceStatusPending,
		Name:        input.Name,
		CityID:      input.CityID,
		Address:     input.Address,
		Longitude:   input.Longitude,
		Latitude:    input.Latitude,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		UserID:      owner.ID,
	}

	if err := storage.DB.Create(&space).Error; err != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "A space with this name already exists.", ctx)
		return
	}

	ctx.JSON(space)
}

// UpdateSpaceStatus accepts or cancels a pending space and moves the owner
// in or out of the Manager role accordingly.
func UpdateSpaceStatus(ctx iris.Context) {
	var input SpaceStatusInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !slices.Contains([]string{models.SpaceStatusPending, models.SpaceStatusAccepted, models.SpaceStatusCanceled}, input.Status) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"Invalid status, status options are Pending, Accepted, Canceled", ctx)
		return
	}

	var space models.Space
	spaceExists := storage.DB.Find(&space, input.ID)
	if spaceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if spaceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	space.Status = input.Status
	if err := storage.DB.Model(&space).UpdateColumn("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := "User"
	if input.Status == models.SpaceStatusAccepted {
		role = "Manager"
	}

	var owner models.User
	if err := storage.DB.First(&owner, space.UserID).Error; err == nil {
		owner.Role = role
		storage.DB.Model(&owner).UpdateColumn("role", role)
	}

	ctx.JSON(iris.Map{"status": input.Status, "user": owner, "space": space})
}

func UpdateSpace(ctx iris.Context) {
	var input UpdateSpaceInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var space models.Space
	spaceExists := storage.DB.Find(&space, input.ID)
	if spaceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if spaceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	space.Name = input.Name
	space.CityID = input.CityID
	space.Address = input.Address
	space.Description = input.Description

	if err := storage.DB.Model(&space).Updates(space).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(space)
}

// DeleteSpace hands off to the cascade coordinator; the response carries
// the per-entity deletion counts.
func DeleteSpace(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	summary, err := services.NewCascadeService(storage.DB).DeleteSpace(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPartialCascade) {
			fmt.Printf("DeleteSpace %d partial: %v\n", id, err)
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{"error": "Partial Cascade", "message": "Retry the delete to finish.", "summary": summary})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Space and associated records deleted successfully", "summary": summary})
}

func GetSpaces(ctx iris.Context) {
	status := strings.TrimSpace(ctx.URLParam("status"))
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 0)

	q := storage.DB.Model(&models.Space{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if perPage > 0 {
		q = q.Offset((page - 1) * perPage).Limit(perPage)
	}

	var spaces []models.Space
	if err := q.Order("created_at DESC").Order("id DESC").Find(&spaces).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, spaces, page, perPage, total)
}

func GetSpacesByUserID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid user ID", ctx)
		return
	}

	var spaces []models.Space
	if err := storage.DB.Where("user_id = ?", id).Order("created_at DESC").Find(&spaces).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(spaces)
}

// AddAmenitiesToSpace unions amenity ids into the space's set.
func AddAmenitiesToSpace(ctx iris.Context) {
	var input SpaceAmenitiesInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var space models.Space
	spaceExists := storage.DB.Find(&space, input.SpaceID)
	if spaceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if spaceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ids := space.AmenityIDs()
	for _, amenityID := range input.Amenities {
		if !slices.Contains(ids, amenityID) {
			ids = append(ids, amenityID)
		}
	}

	saveAmenities(ctx, &space, ids)
}

func DeleteAmenitiesFromSpace(ctx iris.Context) {
	var input SpaceAmenitiesInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var space models.Space
	spaceExists := storage.DB.Find(&space, input.SpaceID)
	if spaceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if spaceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	var kept []uint
	for _, amenityID := range space.AmenityIDs() {
		if !slices.Contains(input.Amenities, amenityID) {
			kept = append(kept, amenityID)
		}
	}

	saveAmenities(ctx, &space, kept)
}

func saveAmenities(ctx iris.Context, space *models.Space, ids []uint) {
	if ids == nil {
		ids = []uint{}
	}
	raw, _ := json.Marshal(ids)
	space.Amenities = raw

	if err := storage.DB.Model(space).UpdateColumn("amenities", space.Amenities).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(space)
}

type CreateSpaceInput struct {
	Name        string  `json:"name" validate:"required,min=3,max=30"`
	CityID      uint    `json:"cityID" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Longitude   float64 `json:"longitude" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"required"`
	Description string  `json:"description" validate:"required"`
	CategoryID  uint    `json:"categoryID" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
}

type SpaceStatusInput struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

type UpdateSpaceInput struct {
	ID          uint   `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,min=3,max=30"`
	CityID      uint   `json:"cityID" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type SpaceAmenitiesInput struct {
	SpaceID   uint   `json:"spaceID" validate:"required"`
	Amenities []uint `json:"amenities" validate:"required"`
}
