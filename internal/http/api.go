package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wtwr-api/internal/apperr"
	"wtwr-api/internal/auth"
	"wtwr-api/internal/domain"
	"wtwr-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	items     service.ItemService
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *logrus.Logger
}

func NewHandler(users service.UserService, items service.ItemService, jwtSecret string, tokenTTL time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		users:     users,
		items:     items,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/signup", h.signup)
	router.POST("/signin", h.signin)
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	users := router.Group("/users", h.requireAuth())
	{
		users.GET("/me", h.getCurrentUser)
		users.PATCH("/me", h.updateCurrentUser)
	}

	// checkItemID runs before requireAuth so a malformed identifier is
	// rejected first, before any auth or store work.
	items := router.Group("/items")
	{
		items.GET("", h.listItems)
		items.GET("/:itemId", h.checkItemID, h.getItem)
		items.GET("/:itemId/likes", h.checkItemID, h.getItemLikes)
		items.POST("", h.requireAuth(), h.createItem)
		items.PATCH("/:itemId", h.checkItemID, h.requireAuth(), h.updateItem)
		items.DELETE("/:itemId", h.checkItemID, h.requireAuth(), h.deleteItem)
		items.PUT("/:itemId/likes", h.checkItemID, h.requireAuth(), h.likeItem)
		items.DELETE("/:itemId/likes", h.checkItemID, h.requireAuth(), h.unlikeItem)
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	})
}

type signupRequest struct {
	Name     string `json:"name"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// createItemRequest deliberately has no owner field; the owner is always
// the authenticated caller.
type createItemRequest struct {
	Name     string `json:"name"`
	Weather  string `json:"weather"`
	ImageURL string `json:"imageUrl"`
}

type updateItemRequest struct {
	Name     *string `json:"name"`
	Weather  *string `json:"weather"`
	ImageURL *string `json:"imageUrl"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.BadRequest("Invalid data"))
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.BadRequest("Invalid data"))
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := auth.IssueToken(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) getCurrentUser(c *gin.Context) {
	userID := identityFromContext(c)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) updateCurrentUser(c *gin.Context) {
	userID := identityFromContext(c)

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.BadRequest("Invalid data"))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) listItems(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = itemToResponse(&items[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getItem(c *gin.Context) {
	itemID := c.Param("itemId")

	item, err := h.items.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *Handler) getItemLikes(c *gin.Context) {
	itemID := c.Param("itemId")

	item, err := h.items.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": item.Likes})
}

func (h *Handler) createItem(c *gin.Context) {
	userID := identityFromContext(c)

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.BadRequest("Invalid data"))
		return
	}

	item, err := h.items.Create(c.Request.Context(), userID, service.CreateItemInput{
		Name:     req.Name,
		Weather:  domain.Weather(req.Weather),
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, itemToResponse(item))
}

func (h *Handler) updateItem(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := identityFromContext(c)

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperr.BadRequest("Invalid data"))
		return
	}

	upd := service.ItemUpdate{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}
	if req.Weather != nil {
		weather := domain.Weather(*req.Weather)
		upd.Weather = &weather
	}

	item, err := h.items.Update(c.Request.Context(), userID, itemID, upd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *Handler) deleteItem(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := identityFromContext(c)

	item, err := h.items.Delete(c.Request.Context(), userID, itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *Handler) likeItem(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := identityFromContext(c)

	item, err := h.items.Like(c.Request.Context(), userID, itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

func (h *Handler) unlikeItem(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := identityFromContext(c)

	item, err := h.items.Unlike(c.Request.Context(), userID, itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

// respondError is the single funnel from internal failures to HTTP
// responses. Unclassified failures are logged and surfaced as a generic 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	status, message := apperr.Normalize(err)
	if status == http.StatusInternalServerError && h.logger != nil {
		h.logger.WithError(err).Error("unhandled error")
	}
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	About  string `json:"about,omitempty"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

type ItemResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Weather   string   `json:"weather"`
	ImageURL  string   `json:"imageUrl"`
	Owner     string   `json:"owner"`
	Likes     []string `json:"likes"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		About:  user.About,
		Avatar: user.Avatar,
		Email:  user.Email,
	}
}

func itemToResponse(item *domain.Item) ItemResponse {
	likes := item.Likes
	if likes == nil {
		likes = make([]string, 0)
	}
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Weather:   string(item.Weather),
		ImageURL:  item.ImageURL,
		Owner:     item.Owner,
		Likes:     likes,
		CreatedAt: item.CreatedAt.Format(time.RFC3339),
		UpdatedAt: item.UpdatedAt.Format(time.RFC3339),
	}
}
