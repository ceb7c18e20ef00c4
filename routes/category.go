package routes

import (
	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateCategory(ctx iris.Context) {
	var input NamedImageInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var imageURL string
	if input.Image != "" {
		imageURL = storage.UploadBase64Image(input.Image, "category-"+input.Name)
	}

	category := models.Category{Name: input.Name, Image: imageURL}
	if err := storage.DB.Create(&category).Error; err != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "Category already exists.", ctx)
		return
	}

	ctx.JSON(category)
}

func DeleteCategory(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid category ID", ctx)
		return
	}

	var count int64
	if err := storage.DB.Model(&models.Space{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if count > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "Category still has spaces.", ctx)
		return
	}

	res := storage.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Category deleted successfully"})
}

func GetCategories(ctx iris.Context) {
	var categories []models.Category
	if err := storage.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(categories)
}
