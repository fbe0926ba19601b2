package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NoticeHandler serves the client's transient notice.
type NoticeHandler struct{}

func NewNoticeHandler() *NoticeHandler {
	return &NoticeHandler{}
}

// Current returns the live notice, or null once it expired.
//
// @Summary      Current notice
// @Tags         notices
// @Produce      json
// @Param        X-Session-Token  header    string  false  "Client token"
// @Success      200              {object}  noticeResponse
// @Router       /aviso [get]
func (h *NoticeHandler) Current(c echo.Context) error {
	ws, err := clientWorkspace(c)
	if err != nil {
		return err
	}
	msg, ok := ws.Notices.Current()
	if !ok {
		return c.JSON(http.StatusOK, noticeResponse{})
	}
	return c.JSON(http.StatusOK, noticeResponse{Notice: &msg})
}
