package routes

import (
	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateAmenity(ctx iris.Context) {
	var input CreateAmenityInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenity := models.Amenity{Name: input.Name}
	if err := storage.DB.Create(&amenity).Error; err != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Amenity already exists.", ctx)
		return
	}

	ctx.JSON(amenity)
}

func DeleteAmenity(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid amenity ID", ctx)
		return
	}

	res := storage.DB.Delete(&models.Amenity{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Amenity deleted successfully"})
}

func GetAmenities(ctx iris.Context) {
	var amenities []models.Amenity
	if err := storage.DB.Order("name ASC").Find(&amenities).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(amenities)
}

type CreateAmenityInput struct {
	Name string `json:"name" validate:"required,max=256"`
}
