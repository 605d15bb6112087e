package handlers

import (
	"context"
	"market/internal/config"
	"market/internal/middleware"
	"market/internal/model"
	"market/internal/service"
	"net/http"

	"go.uber.org/zap"
)

const msgImageRequired = "이미지 파일이 필요합니다."

// ItemHandler — объявления, их картинки и статусы.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, Config: cfg}
}

type ItemCreateRequest struct {
	Title          string           `json:"title" validate:"notblank" msg:"제목을 입력해주세요."`
	Description    string           `json:"description" validate:"notblank" msg:"내용을 입력해주세요."`
	MinPriceWanted int              `json:"minPriceWanted" validate:"gt=0" msg:"가격은 양수여야 합니다."`
	Status         model.ItemStatus `json:"status" validate:"omitempty,oneof=SALE RESERVATION SOLD" msg:"상품 판매상태가 올바르지 않습니다."`
}

type ItemUpdateRequest struct {
	Title          string `json:"title" validate:"notblank" msg:"제목을 입력해주세요."`
	Description    string `json:"description" validate:"notblank" msg:"내용을 입력해주세요."`
	MinPriceWanted int    `json:"minPriceWanted" validate:"gt=0" msg:"가격은 양수여야 합니다."`
}

type ItemStatusUpdateRequest struct {
	Status model.ItemStatus `json:"status" validate:"required,oneof=SALE RESERVATION SOLD" msg:"상품 판매상태는 필수입니다."`
}

type ItemResponse struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	MinPriceWanted int              `json:"minPriceWanted"`
	ImageURL       string           `json:"imageUrl"`
	Status         model.ItemStatus `json:"status"`
	StatusLabel    string           `json:"statusLabel"`
	UserID         int64            `json:"userId"`
	Username       string           `json:"username,omitempty"`
}

func toItemResponse(it model.Item) ItemResponse {
	res := ItemResponse{
		ID:             it.ID,
		Title:          it.Title,
		Description:    it.Description,
		MinPriceWanted: it.MinPriceWanted,
		ImageURL:       it.ImageURL,
		Status:         it.Status,
		StatusLabel:    it.Status.Label(),
		UserID:         it.UserID,
	}
	if it.User != nil {
		res.Username = it.User.Username
	}
	return res
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ItemCreateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.Create(r.Context(), service.ItemInput{
		Title:          req.Title,
		Description:    req.Description,
		MinPriceWanted: req.MinPriceWanted,
		Status:         req.Status,
	}, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toItemResponse(*it))
}

func (h *ItemHandler) ReadItemList(w http.ResponseWriter, r *http.Request) {
	page, limit, valid := pageParams(r, service.DefaultPageSize)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	p, err := h.ItemService.ReadItemList(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, service.MapPage(p, toItemResponse))
}

// ReadItemListByDistance объявления в радиусе поиска текущего пользователя
func (h *ItemHandler) ReadItemListByDistance(w http.ResponseWriter, r *http.Request) {
	page, limit, valid := pageParams(r, service.DefaultPageSize)
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	p, err := h.ItemService.ReadItemListByDistance(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, service.MapPage(p, toItemResponse))
}

func (h *ItemHandler) ReadItemOne(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	it, err := h.ItemService.ReadItemOne(r.Context(), itemID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toItemResponse(*it))
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req ItemUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.UpdateItem(r.Context(), itemID, service.ItemInput{
		Title:          req.Title,
		Description:    req.Description,
		MinPriceWanted: req.MinPriceWanted,
	}, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toItemResponse(*it))
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.DeleteItem(r.Context(), itemID, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toItemResponse(*it))
}

// UpdateItemImage принимает multipart-поле image
func (h *ItemHandler) UpdateItemImage(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	maxBytes := int64(h.Config.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		h.Logger.Warnw("UpdateItemImage: invalid multipart body", "item_id", itemID, "error", err)
		badRequest(w, msgImageRequired)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		badRequest(w, msgImageRequired)
		return
	}
	defer file.Close()

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.UpdateItemImage(r.Context(), itemID, service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toItemResponse(*it))
}

func (h *ItemHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	itemID, valid := pathID(r, "itemId")
	if !valid {
		badRequest(w, msgInvalidRequest)
		return
	}
	var req ItemStatusUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	it, err := h.ItemService.UpdateItemStatus(r.Context(), itemID, req.Status, userID)
	if err != nil {
		writeError(w, h.Logger, r, err)
		return
	}
	ok(w, toItemResponse(*it))
}

type userItemLister func(ctx context.Context, userID int64, page int) (service.Page[model.Item], error)

// ListMine отдаёт списки объявлений текущего пользователя
func (h *ItemHandler) ListMine(fetch userItemLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, valid := queryInt(r, "page", 0)
		if !valid {
			badRequest(w, msgInvalidRequest)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(r.Context())
		p, err := fetch(r.Context(), userID, page)
		if err != nil {
			writeError(w, h.Logger, r, err)
			return
		}
		ok(w, service.MapPage(p, toItemResponse))
	}
}

// ListOfUser отдаёт списки объявлений пользователя из пути
func (h *ItemHandler) ListOfUser(fetch userItemLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, validID := pathID(r, "userId")
		page, validPage := queryInt(r, "page", 0)
		if !validID || !validPage {
			badRequest(w, msgInvalidRequest)
			return
		}
		p, err := fetch(r.Context(), targetID, page)
		if err != nil {
			writeError(w, h.Logger, r, err)
			return
		}
		ok(w, service.MapPage(p, toItemResponse))
	}
}
