package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通のJSONエンベロープ。
// 成功: {success:true, data:...}、失敗: {success:false, message:"..."}。

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"data":    data,
	})
}

// 一覧系は件数も返す
func respondList(c echo.Context, status int, count int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": msg,
	})
}

// usecaseのエラーをレスポンスへ変換する。
// HTTPError以外は内部情報を漏らさず一律500。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return fail(c, he.Status, he.Message)
	}

	//500
	return fail(c, http.StatusInternalServerError, "Server Error")
}
