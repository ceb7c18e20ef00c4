package routes

import (
	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func CreateRule(ctx iris.Context) {
	var input CreateRuleInput
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

	rule := models.Rule{
		SpaceID:     input.SpaceID,
		Description: input.Description,
	}

	if err := storage.DB.Create(&rule).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(rule)
}

func DeleteRule(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid rule ID", ctx)
		return
	}

	res := storage.DB.Delete(&models.Rule{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Rule deleted successfully"})
}

func GetRulesBySpaceID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var rules []models.Rule
	if err := storage.DB.Where("space_id = ?", id).Order("created_at ASC").Find(&rules).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(rules)
}

type CreateRuleInput struct {
	SpaceID     uint   `json:"spaceID" validate:"required"`
	Description string `json:"description" validate:"required"`
}
