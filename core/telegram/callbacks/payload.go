package callbacks

import (
	"strconv"

	tele "gopkg.in/telebot.v4"
)

// PayloadInt parses callback payload as int.
func PayloadInt(c tele.Context) (int, error) {
	p := CallbackPayload(c)
	return strconv.Atoi(p)
}
