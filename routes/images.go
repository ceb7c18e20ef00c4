package routes

import (
	"fmt"

	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func AddSpaceImages(ctx iris.Context) {
	var input AddImagesInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var space models.Space
	spaceExists := storage.DB.Find(&space, input.OwnerID)
	if spaceExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if spaceExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	images := make([]models.SpaceImage, 0, len(input.Images))
	for i, data := range input.Images {
		url := storage.UploadBase64Image(data, fmt.Sprintf("space/%d/%d", space.ID, i))
		if url == "" {
			continue
		}
		images = append(images, models.SpaceImage{SpaceID: space.ID, Image: url})
	}

	if len(images) > 0 {
		if err := storage.DB.Create(&images).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(images)
}

func DeleteSpaceImage(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid image ID", ctx)
		return
	}

	var image models.SpaceImage
	imageExists := storage.DB.Find(&image, id)
	if imageExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if imageExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	storage.DeleteImage(image.Image)

	if err := storage.DB.Delete(&models.SpaceImage{}, id).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Image deleted successfully"})
}

func AddRoomImages(ctx iris.Context) {
	var input AddImagesInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var room models.Room
	roomExists := storage.DB.Find(&room, input.OwnerID)
	if roomExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if roomExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	images := make([]models.RoomImage, 0, len(input.Images))
	for i, data := range input.Images {
		url := storage.UploadBase64Image(data, fmt.Sprintf("room/%d/%d", room.ID, i))
		if url == "" {
			continue
		}
		images = append(images, models.RoomImage{RoomID: room.ID, Image: url})
	}

	if len(images) > 0 {
		if err := storage.DB.Create(&images).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(images)
}

type AddImagesInput struct {
	OwnerID uint     `json:"ownerID" validate:"required"`
	Images  []string `json:"images" validate:"required,min=1,dive,required"`
}
