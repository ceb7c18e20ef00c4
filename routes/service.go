package routes

import (
	"errors"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/services"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateService(ctx iris.Context) {
	var input CreateServiceInput
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

	var imageURL string
	if input.Image != "" {
		imageURL = storage.UploadBase64Image(input.Image, space.Name+"-"+input.Name)
	}

	service := models.Service{
		SpaceID:       input.SpaceID,
		Name:          input.Name,
		Description:   input.Description,
		DailyPrice:    input.DailyPrice,
		MonthlyPrice:  input.MonthlyPrice,
		AnnuallyPrice: input.AnnuallyPrice,
		Image:         imageURL,
	}

	if err := storage.DB.Create(&service).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(service)
}

func UpdateService(ctx iris.Context) {
	var input UpdateServiceInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var service models.Service
	serviceExists := storage.DB.Find(&service, input.ID)
	if serviceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if serviceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	service.Name = input.Name
	service.Description = input.Description
	service.DailyPrice = input.DailyPrice
	service.MonthlyPrice = input.MonthlyPrice
	service.AnnuallyPrice = input.AnnuallyPrice

	if err := storage.DB.Model(&service).Updates(service).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", err.Error(), ctx)
		return
	}

	ctx.JSON(service)
}

func DeleteService(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid service ID", ctx)
		return
	}

	var service models.Service
	serviceExists := storage.DB.Find(&service, id)
	if serviceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if serviceExists.RowsAffected > 0 && service.Image != "" {
		storage.DeleteImage(service.Image)
	}

	summary, err := services.NewCascadeService(storage.DB).DeleteService(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrPartialCascade) {
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.JSON(iris.Map{"error": "Partial Cascade", "message": "Retry the delete to finish.", "summary": summary})
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Service deleted successfully", "summary": summary})
}

func GetServicesBySpaceID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var services []models.Service
	if err := storage.DB.Where("space_id = ?", id).Order("created_at DESC").Find(&services).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(services)
}

func GetService(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid service ID", ctx)
		return
	}

	var service models.Service
	serviceExists := storage.DB.Find(&service, id)
	if serviceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if serviceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(service)
}

type CreateServiceInput struct {
	SpaceID       uint     `json:"spaceID" validate:"required"`
	Name          string   `json:"name" validate:"required,max=256"`
	Description   string   `json:"description" validate:"required"`
	DailyPrice    float64  `json:"dailyPrice" validate:"required,gte=0.1"`
	MonthlyPrice  *float64 `json:"monthlyPrice" validate:"omitempty,gte=0.1"`
	AnnuallyPrice *float64 `json:"annuallyPrice" validate:"omitempty,gte=0.1"`
	Image         string   `json:"image"`
}

type UpdateServiceInput struct {
	ID            uint     `json:"id" validate:"required"`
	Name          string   `json:"name" validate:"required,max=256"`
	Description   string   `json:"description" validate:"required"`
	DailyPrice    float64  `json:"dailyPrice" validate:"required,gte=0.1"`
	MonthlyPrice  *float64 `json:"monthlyPrice" validate:"omitempty,gte=0.1"`
	AnnuallyPrice *float64 `json:"annuallyPrice" validate:"omitempty,gte=0.1"`
}
