package routes

import (
	"github.com/WouroudElKhaldi/CoSpace-Backend/models"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/kataras/iris/v12"
)

func GetNotifications(ctx iris.Context) {
	var notifications []models.Notification
	if err := storage.DB.Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(notifications)
}

func GetNotificationByOfferID(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid offer ID", ctx)
		return
	}

	var notification models.Notification
	notificationExists := storage.DB.Where("offer_id = ?", id).Find(&notification)
	if notificationExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if notificationExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(notification)
}
