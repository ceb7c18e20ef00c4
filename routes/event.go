package routes

import (
	"time"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateEvent(ctx iris.Context) {
	var input CreateEventInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "date must be formatted as YYYY-MM-DD", ctx)
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
		imageURL = storage.UploadBase64Image(input.Image, space.Name+"-event-"+input.Name)
	}

	event := models.Event{
		SpaceID:     input.SpaceID,
		Name:        input.Name,
		Description: input.Description,
		Date:        date,
		Image:       imageURL,
	}

	if err := storage.DB.Create(&event).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(event)
}

func DeleteEvent(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid event ID", ctx)
		return
	}

	var event models.Event
	eventExists := storage.DB.Find(&event, id)
	if eventExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if eventExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if event.Image != "" {
		storage.DeleteImage(event.Image)
	}

	if err := storage.DB.Delete(&models.Event{}, id).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Event deleted successfully"})
}

func GetEventsBySpaceID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var events []models.Event
	if err := storage.DB.Where("space_id = ?", id).Order("date ASC").Find(&events).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(events)
}

type CreateEventInput struct {
	SpaceID     uint   `json:"spaceID" validate:"required"`
	Name        string `json:"name" validate:"required,max=256"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Image       string `json:"image"`
}
