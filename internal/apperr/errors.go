// Package apperr описывает доменные ошибки маркетплейса и их классификацию.
package apperr

import (
	"errors"
	"net/http"
)

// Kind: класс ошибки, определяющий HTTP-статус ответа.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
	KindInvalidArgument
)

// HTTPStatus возвращает HTTP-статус для класса ошибки.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error — доменная ошибка с машинным кодом и сообщением для клиента.
// Значения ниже используются как sentinel-ошибки: errors.Is сравнивает по указателю.
type Error struct {
	Code    string
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func newError(code string, kind Kind, msg string) *Error {
	return &Error{Code: code, Kind: kind, Message: msg}
}

var (
	ErrInvalidWriter = newError("INVALID_WRITER", KindUnauthorized, "작성자 정보가 일치하지 않습니다.")
	ErrLoginFailed   = newError("LOGIN_FAILED", KindUnauthorized, "로그인 실패")

	ErrNotFoundUser     = newError("NOT_FOUND_USER", KindNotFound, "존재하지 않는 회원입니다.")
	ErrNotFoundItem     = newError("NOT_FOUND_ITEM", KindNotFound, "존재하지 않는 아이템입니다.")
	ErrNotFoundComment  = newError("NOT_FOUND_COMMENT", KindNotFound, "존재하지 않는 댓글입니다.")
	ErrNotFoundBuy      = newError("NOT_FOUND_BUY", KindNotFound, "구매 내역이 존재하지 않습니다.")
	ErrNotFoundChatRoom = newError("NOT_FOUND_CHAT_ROOM", KindNotFound, "존재하지 않는 채팅방입니다.")

	ErrNotMatchItemAndComment = newError("NOT_MATCH_ITEM_AND_COMMENT", KindInvalidArgument, "아이템 번호와 댓글 번호가 일치하지 않습니다.")
	ErrNotMatchItemStatusSold = newError("NOT_MATCH_ITEM_STATUS_SOLD", KindInvalidArgument, "판매 완료된 상품이 아닙니다.")
	ErrNotFoundCoordinate     = newError("NOT_FOUND_COORDINATE", KindInvalidArgument, "좌표값이 제대로 입력되지 않았습니다.")

	ErrAlreadyUsername    = newError("ALREADY_USER_USERNAME", KindConflict, "이미 존재하는 회원입니다.")
	ErrAlreadyNegotiation = newError("ALREADY_USER_NEGOTIATION", KindConflict, "이미 제안을 요청했습니다.")
	ErrAlreadyItemSold    = newError("ALREADY_ITEM_SOLD", KindConflict, "이미 판매된 상품입니다.")
	ErrAlreadyReview      = newError("ALREADY_REVIEW", KindConflict, "이미 리뷰가 존재합니다.")

	ErrCannotNegotiateOwnItem = newError("CANNOT_NEGOTIATION_OWN_ITEM", KindForbidden, "본인 상품에는 제안을 할 수 없습니다.")
	ErrCannotChatOwnItem      = newError("CANNOT_CHAT_OWN_ITEM", KindForbidden, "본인 상품에는 채팅을 요청할 수 없습니다.")

	ErrServer = newError("SERVER_ERROR", KindInternal, "서버 에러가 발생했습니다.")
)

// From извлекает доменную ошибку из цепочки. Для прочих ошибок возвращает ErrServer и false.
func From(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return ErrServer, false
}
