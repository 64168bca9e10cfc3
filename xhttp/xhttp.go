package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/labelchain/LabelChain/errcode"
)

// Response 统一响应结构
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error 业务错误按错误码映射HTTP状态，其余按500处理
func Error(c *gin.Context, err error) {
	e := errcode.ParseErr(err)
	c.JSON(httpStatus(e.Code), Response{
		Code: e.Code,
		Msg:  e.Msg,
	})
}

func httpStatus(code int) int {
	switch code {
	case errcode.CodeOK:
		return http.StatusOK
	case errcode.CodeInvalidParams, errcode.CodeCustom:
		return http.StatusBadRequest
	case errcode.CodeNotFound:
		return http.StatusNotFound
	case errcode.CodeForbidden:
		return http.StatusForbidden
	case errcode.CodeAlreadyCompleted:
		return http.StatusConflict
	case errcode.CodeTimeout:
		return http.StatusAccepted
	default:
		return http.StatusInternalServerError
	}
}
