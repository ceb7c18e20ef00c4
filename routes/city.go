package routes

import (
	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateCity(ctx iris.Context) {
	var input NamedImageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var imageURL string
	if input.Image != "" {
		imageURL = storage.UploadBase64Image(input.Image, "city-"+input.Name)
	}

	city := models.City{Name: input.Name, Image: imageURL}
	if err := storage.DB.Create(&city).Error; err != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "City already exists.", ctx)
		return
	}

	ctx.JSON(city)
}

func DeleteCity(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid city ID", ctx)
		return
	}

	// Cities with listed spaces must keep their row; spaces join on it.
	var count int64
	if err := storage.DB.Model(&models.Space{}).Where("city_id = ?", id).Count(&count).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if count > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "City still has spaces.", ctx)
		return
	}

	res := storage.DB.Delete(&models.City{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "City deleted successfully"})
}

func GetCities(ctx iris.Context) {
	var cities []models.City
	if err := storage.DB.Order("name ASC").Find(&cities).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(cities)
}

type NamedImageInput struct {
	Name  string `json:"name" validate:"required,max=256"`
	Image string `json:"image"`
}
