package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/client"
	"go-tania/forms"
	"go-tania/intro"
	"go-tania/middleware"
	"go-tania/session"
	"go-tania/store"
	"go-tania/utils"
)

// MaxPhotoSize 上传图片的大小上限
const MaxPhotoSize = 10 << 20

// errPhotoTooLarge 上传图片超过上限
var errPhotoTooLarge = fmt.Errorf("photo exceeds %d bytes", MaxPhotoSize)

// bind 绑定表单或 JSON，失败时直接写出字段错误
func bind(ctx *gin.Context, dst any) bool {
	if err := ctx.ShouldBind(dst); err != nil {
		utils.ValidationFailed(ctx, forms.FieldErrors(err))
		return false
	}
	return true
}

// respondError 把错误转换成响应，后端错误原样透传
func respondError(ctx *gin.Context, logger *zap.Logger, err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		ctx.JSON(apiErr.StatusCode, utils.Response{
			Code:    apiErr.StatusCode,
			Message: apiErr.Error(),
			Data:    apiErr.Payload(),
		})
	case errors.Is(err, store.ErrNoCurrentFarm), errors.Is(err, store.ErrFarmNotFound):
		utils.NotFound(ctx, err.Error())
	case errors.Is(err, intro.ErrFarmNotCreated), errors.Is(err, intro.ErrReservoirNotCreated):
		utils.BadRequest(ctx, err.Error())
	case errors.Is(err, errPhotoTooLarge):
		utils.BadRequest(ctx, err.Error())
	case errors.Is(err, context.Canceled):
		ctx.Status(499)
	default:
		logger.Error("backend request failed",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		utils.BadGateway(ctx, "backend unavailable")
	}
	ctx.Abort()
}

// currentSession 当前请求的会话
func currentSession(ctx *gin.Context) *session.Session {
	return middleware.CurrentSession(ctx)
}

// currentFarmID 当前会话选中的农场
func currentFarmID(ctx *gin.Context, logger *zap.Logger) (string, bool) {
	id, err := currentSession(ctx).Store.Farm.CurrentID()
	if err != nil {
		respondError(ctx, logger, err)
		return "", false
	}
	return id, true
}

// readPhoto 读取可选的上传图片，没有上传时 ok 为 false
func readPhoto(ctx *gin.Context, field string) (name string, data []byte, ok bool, err error) {
	fh, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, err
	}
	if fh.Size > MaxPhotoSize {
		return "", nil, false, errPhotoTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, false, err
	}
	defer f.Close()
	data, err = io.ReadAll(io.LimitReader(f, MaxPhotoSize+1))
	if err != nil {
		return "", nil, false, err
	}
	if len(data) > MaxPhotoSize {
		return "", nil, false, errPhotoTooLarge
	}
	return fh.Filename, data, true, nil
}

// page 查询参数中的页码
func page(ctx *gin.Context) int {
	return utils.ParsePage(ctx.Query("page"))
}

// paginated 分页列表响应，空列表输出 []
func paginated[T any](ctx *gin.Context, items []T, total, current int) {
	if items == nil {
		items = []T{}
	}
	utils.SuccessWithPagination(ctx, items, total, current)
}
